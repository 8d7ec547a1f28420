package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/model"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sub", "agentcost.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func entry(id, label string, created time.Time, monthly float64) model.ComparisonEntry {
	return model.ComparisonEntry{
		ID:        id,
		Label:     label,
		CreatedAt: created,
		Result: model.CostResult{
			CostPerRequest: 0.027,
			MonthlyCostUSD: monthly,
			Steps:          []model.StepCost{{Name: "Main agent", InputTokens: 4500, OutputTokens: 2250, CostUSD: 0.027}},
			Assumptions:    model.Assumptions{ModelName: "GPT-4.1", EnabledOptions: []string{}},
		},
	}
}

func TestComparisonLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)
	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	if err := db.SaveComparison(ctx, entry("b", "second", t0.Add(time.Hour), 20)); err != nil {
		t.Fatalf("SaveComparison: %v", err)
	}
	if err := db.SaveComparison(ctx, entry("a", "first", t0, 10)); err != nil {
		t.Fatalf("SaveComparison: %v", err)
	}

	err := db.SaveComparison(ctx, entry("c", "first", t0, 30))
	if !errors.Is(err, ErrDuplicateLabel) {
		t.Fatalf("duplicate label err = %v", err)
	}

	list, err := db.ListComparisons(ctx)
	if err != nil {
		t.Fatalf("ListComparisons: %v", err)
	}
	if len(list) != 2 || list[0].ID != "a" || list[1].ID != "b" {
		t.Fatalf("list order = %+v", list)
	}
	if !list[0].CreatedAt.Equal(t0) {
		t.Errorf("CreatedAt = %v, want %v", list[0].CreatedAt, t0)
	}
	if list[1].Result.MonthlyCostUSD != 20 || list[1].Result.Steps[0].InputTokens != 4500 {
		t.Errorf("result not restored: %+v", list[1].Result)
	}

	got, err := db.GetComparison(ctx, "b")
	if err != nil || got.Label != "second" {
		t.Fatalf("GetComparison = %+v, %v", got, err)
	}
	byLabel, err := db.FindComparisonByLabel(ctx, "first")
	if err != nil || byLabel.ID != "a" {
		t.Fatalf("FindComparisonByLabel = %+v, %v", byLabel, err)
	}

	if err := db.DeleteComparison(ctx, "a"); err != nil {
		t.Fatalf("DeleteComparison: %v", err)
	}
	if err := db.DeleteComparison(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if _, err := db.GetComparison(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get deleted err = %v, want ErrNotFound", err)
	}

	n, err := db.ClearComparisons(ctx)
	if err != nil || n != 1 {
		t.Fatalf("ClearComparisons = %d, %v", n, err)
	}
	if count, _ := db.ComparisonCount(ctx); count != 0 {
		t.Errorf("count after clear = %d", count)
	}
}

func TestPruneComparisons(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	for i, age := range []time.Duration{200 * 24 * time.Hour, 91 * 24 * time.Hour, 89 * 24 * time.Hour, time.Minute} {
		e := entry(string(rune('a'+i)), string(rune('A'+i)), now.Add(-age), 1)
		if err := db.SaveComparison(ctx, e); err != nil {
			t.Fatalf("SaveComparison: %v", err)
		}
	}

	n, err := db.PruneComparisons(ctx, now.Add(-90*24*time.Hour))
	if err != nil {
		t.Fatalf("PruneComparisons: %v", err)
	}
	if n != 2 {
		t.Errorf("pruned %d, want 2", n)
	}
	if count, _ := db.ComparisonCount(ctx); count != 2 {
		t.Errorf("remaining = %d, want 2", count)
	}
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	if _, err := db.LoadCatalog(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty LoadCatalog err = %v, want ErrNotFound", err)
	}

	seed := catalog.Seed()
	exempt := false
	seed.Models[0].LongContextSurcharge = &exempt
	if err := db.SaveCatalog(ctx, seed); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}

	got, err := db.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(got.Models) != len(seed.Models) || len(got.EmbeddingModels) != len(seed.EmbeddingModels) ||
		len(got.WebSearchTools) != len(seed.WebSearchTools) || len(got.Providers) != len(seed.Providers) {
		t.Fatalf("counts differ after round trip")
	}

	m := got.Models[0]
	if m.LongContextSurcharge == nil || *m.LongContextSurcharge {
		t.Errorf("surcharge override lost: %v", m.LongContextSurcharge)
	}
	if m.ProviderName != "OpenAI" {
		t.Errorf("provider name = %q", m.ProviderName)
	}
	for i, sm := range seed.Models {
		gm := got.Models[i]
		if gm.Name != sm.Name || gm.InputPrice != sm.InputPrice || gm.IsLegacy != sm.IsLegacy {
			t.Errorf("model %d: got %+v, want %+v", i, gm, sm)
		}
		if (gm.CacheReadPrice == nil) != (sm.CacheReadPrice == nil) {
			t.Errorf("model %q cache read nullability differs", sm.Name)
		}
	}
	if got.WebSearchTools[2].AdditionalPricingNotes != seed.WebSearchTools[2].AdditionalPricingNotes {
		t.Error("pricing notes lost")
	}

	smaller := catalog.Seed()
	smaller.Models = smaller.Models[:2]
	if err := db.SaveCatalog(ctx, smaller); err != nil {
		t.Fatalf("SaveCatalog replace: %v", err)
	}
	got, err = db.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(got.Models) != 2 {
		t.Errorf("models after replace = %d, want 2", len(got.Models))
	}
}
