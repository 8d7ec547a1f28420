package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/model"
)

// SaveCatalog replaces the stored catalog with c in one transaction.
func (s *DB) SaveCatalog(ctx context.Context, c *catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"models", "embedding_models", "web_search_tools", "providers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for _, p := range c.Providers {
		if _, err := tx.ExecContext(ctx, "INSERT INTO providers (id, name) VALUES (?, ?)", p.ID, p.Name); err != nil {
			return fmt.Errorf("inserting provider %d: %w", p.ID, err)
		}
	}

	for _, m := range c.Models {
		_, err := tx.ExecContext(ctx, `INSERT INTO models
			(id, provider_id, name, category, input_price, output_price,
			 cache_write_price, cache_read_price, max_context_length, is_legacy, long_context_surcharge)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.ProviderID, m.Name, string(m.Category), m.InputPrice, m.OutputPrice,
			nullFloat(m.CacheWritePrice), nullFloat(m.CacheReadPrice), nullInt(m.MaxContextLength),
			boolInt(m.IsLegacy), nullBool(m.LongContextSurcharge),
		)
		if err != nil {
			return fmt.Errorf("inserting model %d: %w", m.ID, err)
		}
	}

	for _, e := range c.EmbeddingModels {
		_, err := tx.ExecContext(ctx, `INSERT INTO embedding_models
			(id, provider_id, name, input_price, dimensions, pricing_tier)
			VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.ProviderID, e.Name, e.InputPrice, nullInt(e.Dimensions), string(e.PricingTier),
		)
		if err != nil {
			return fmt.Errorf("inserting embedding model %d: %w", e.ID, err)
		}
	}

	for _, w := range c.WebSearchTools {
		_, err := tx.ExecContext(ctx, `INSERT INTO web_search_tools
			(id, provider_id, name, price_per_k_calls, additional_pricing_notes)
			VALUES (?, ?, ?, ?, ?)`,
			w.ID, w.ProviderID, w.Name, w.PricePerKCalls, w.AdditionalPricingNotes,
		)
		if err != nil {
			return fmt.Errorf("inserting web search tool %d: %w", w.ID, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog reads the stored catalog. It returns ErrNotFound when no
// models have been saved.
func (s *DB) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	c := &catalog.Catalog{}

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM providers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("loading providers: %w", err)
	}
	for rows.Next() {
		var p model.Provider
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			_ = rows.Close()
			return nil, err
		}
		c.Providers = append(c.Providers, p)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, provider_id, name, category, input_price, output_price,
		cache_write_price, cache_read_price, max_context_length, is_legacy, long_context_surcharge
		FROM models ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading models: %w", err)
	}
	for rows.Next() {
		var (
			m         model.Model
			category  string
			cw, cr    sql.NullFloat64
			maxCtx    sql.NullInt64
			legacy    int
			surcharge sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.ProviderID, &m.Name, &category, &m.InputPrice, &m.OutputPrice,
			&cw, &cr, &maxCtx, &legacy, &surcharge); err != nil {
			_ = rows.Close()
			return nil, err
		}
		m.Category = model.Category(category)
		m.CacheWritePrice = floatPtr(cw)
		m.CacheReadPrice = floatPtr(cr)
		m.MaxContextLength = intPtr(maxCtx)
		m.IsLegacy = legacy != 0
		if surcharge.Valid {
			v := surcharge.Int64 != 0
			m.LongContextSurcharge = &v
		}
		c.Models = append(c.Models, m)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(c.Models) == 0 {
		return nil, fmt.Errorf("catalog: %w", ErrNotFound)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, provider_id, name, input_price, dimensions, pricing_tier
		FROM embedding_models ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading embedding models: %w", err)
	}
	for rows.Next() {
		var (
			e    model.EmbeddingModel
			dims sql.NullInt64
			tier string
		)
		if err := rows.Scan(&e.ID, &e.ProviderID, &e.Name, &e.InputPrice, &dims, &tier); err != nil {
			_ = rows.Close()
			return nil, err
		}
		e.Dimensions = intPtr(dims)
		e.PricingTier = model.PricingTier(tier)
		c.EmbeddingModels = append(c.EmbeddingModels, e)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT id, provider_id, name, price_per_k_calls, additional_pricing_notes
		FROM web_search_tools ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("loading web search tools: %w", err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var (
			w     model.WebSearchTool
			notes sql.NullString
		)
		if err := rows.Scan(&w.ID, &w.ProviderID, &w.Name, &w.PricePerKCalls, &notes); err != nil {
			return nil, err
		}
		w.AdditionalPricingNotes = notes.String
		c.WebSearchTools = append(c.WebSearchTools, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating stored catalog: %w", err)
	}
	return c, nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullBool(p *bool) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(boolInt(*p)), Valid: true}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
