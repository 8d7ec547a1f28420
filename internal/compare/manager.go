package compare

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/agentcost/internal/model"
	"github.com/theirongolddev/agentcost/internal/store"
)

// Store is the persistence the Manager needs. *store.DB satisfies it.
type Store interface {
	SaveComparison(ctx context.Context, e model.ComparisonEntry) error
	ListComparisons(ctx context.Context) ([]model.ComparisonEntry, error)
	GetComparison(ctx context.Context, id string) (model.ComparisonEntry, error)
	FindComparisonByLabel(ctx context.Context, label string) (model.ComparisonEntry, error)
	DeleteComparison(ctx context.Context, id string) error
	ClearComparisons(ctx context.Context) (int, error)
	PruneComparisons(ctx context.Context, before time.Time) (int, error)
}

// Manager adds, lists and removes comparison entries.
type Manager struct {
	store Store
	now   func() time.Time
	newID func() string
}

// NewManager returns a Manager over s.
func NewManager(s Store) *Manager {
	return &Manager{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Add stores r under its label. When an entry with the same label already
// exists it is returned unchanged with added == false.
func (m *Manager) Add(ctx context.Context, r model.CostResult) (entry model.ComparisonEntry, added bool, err error) {
	label := Label(r.Assumptions)

	existing, err := m.store.FindComparisonByLabel(ctx, label)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, store.ErrNotFound):
		return model.ComparisonEntry{}, false, fmt.Errorf("looking up %q: %w", label, err)
	}

	entry = model.ComparisonEntry{
		ID:        m.newID(),
		Label:     label,
		Result:    r.Clone(),
		CreatedAt: m.now(),
	}
	if err := m.store.SaveComparison(ctx, entry); err != nil {
		return model.ComparisonEntry{}, false, err
	}
	return entry, true, nil
}

// List returns every entry, oldest first.
func (m *Manager) List(ctx context.Context) ([]model.ComparisonEntry, error) {
	return m.store.ListComparisons(ctx)
}

// Get returns one entry. A missing id yields store.ErrNotFound.
func (m *Manager) Get(ctx context.Context, id string) (model.ComparisonEntry, error) {
	return m.store.GetComparison(ctx, id)
}

// Remove deletes one entry. A missing id yields store.ErrNotFound.
func (m *Manager) Remove(ctx context.Context, id string) error {
	return m.store.DeleteComparison(ctx, id)
}

// Clear deletes every entry.
func (m *Manager) Clear(ctx context.Context) (int, error) {
	return m.store.ClearComparisons(ctx)
}

// Prune deletes entries older than maxAge.
func (m *Manager) Prune(ctx context.Context, maxAge time.Duration) (int, error) {
	return m.store.PruneComparisons(ctx, m.now().Add(-maxAge))
}
