package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/agentcost/internal/model"
)

// timeFormat is fixed-width so created_at sorts lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z"

// ErrDuplicateLabel is returned when saving an entry whose label is taken.
var ErrDuplicateLabel = errors.New("duplicate comparison label")

// SaveComparison inserts a new comparison entry.
func (s *DB) SaveComparison(ctx context.Context, e model.ComparisonEntry) error {
	data, err := json.Marshal(e.Result)
	if err != nil {
		return fmt.Errorf("encoding comparison: %w", err)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comparisons WHERE label = ?", e.Label).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking label: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%q: %w", e.Label, ErrDuplicateLabel)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO comparisons (id, label, created_at, result_json) VALUES (?, ?, ?, ?)",
		e.ID, e.Label, e.CreatedAt.UTC().Format(timeFormat), string(data),
	)
	if err != nil {
		return fmt.Errorf("saving comparison: %w", err)
	}
	return nil
}

// ListComparisons returns every entry, oldest first.
func (s *DB) ListComparisons(ctx context.Context) ([]model.ComparisonEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, label, created_at, result_json FROM comparisons ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("listing comparisons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.ComparisonEntry
	for rows.Next() {
		e, err := scanComparison(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetComparison returns the entry with the given id.
func (s *DB) GetComparison(ctx context.Context, id string) (model.ComparisonEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, label, created_at, result_json FROM comparisons WHERE id = ?", id)
	e, err := scanComparison(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ComparisonEntry{}, fmt.Errorf("comparison %s: %w", id, ErrNotFound)
	}
	return e, err
}

// FindComparisonByLabel returns the entry with the given label.
func (s *DB) FindComparisonByLabel(ctx context.Context, label string) (model.ComparisonEntry, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, label, created_at, result_json FROM comparisons WHERE label = ?", label)
	e, err := scanComparison(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ComparisonEntry{}, fmt.Errorf("comparison %q: %w", label, ErrNotFound)
	}
	return e, err
}

// DeleteComparison removes the entry with the given id.
func (s *DB) DeleteComparison(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM comparisons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comparison: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("comparison %s: %w", id, ErrNotFound)
	}
	return nil
}

// ClearComparisons removes every entry and returns how many were removed.
func (s *DB) ClearComparisons(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM comparisons")
	if err != nil {
		return 0, fmt.Errorf("clearing comparisons: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// PruneComparisons removes entries created before the cutoff.
func (s *DB) PruneComparisons(ctx context.Context, before time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM comparisons WHERE created_at < ?",
		before.UTC().Format(timeFormat))
	if err != nil {
		return 0, fmt.Errorf("pruning comparisons: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// ComparisonCount returns the number of stored entries.
func (s *DB) ComparisonCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comparisons").Scan(&count)
	return count, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComparison(sc scanner) (model.ComparisonEntry, error) {
	var (
		e       model.ComparisonEntry
		created string
		data    string
	)
	if err := sc.Scan(&e.ID, &e.Label, &created, &data); err != nil {
		return model.ComparisonEntry{}, err
	}
	t, err := time.Parse(timeFormat, created)
	if err != nil {
		return model.ComparisonEntry{}, fmt.Errorf("parsing created_at for %s: %w", e.ID, err)
	}
	e.CreatedAt = t
	if err := json.Unmarshal([]byte(data), &e.Result); err != nil {
		return model.ComparisonEntry{}, fmt.Errorf("decoding comparison %s: %w", e.ID, err)
	}
	return e, nil
}
