package catalog

import (
	"errors"
	"testing"

	"github.com/theirongolddev/agentcost/internal/model"
)

func TestSourceReload(t *testing.T) {
	calls := 0
	fail := false
	load := func() (*Catalog, string, error) {
		if fail {
			return nil, "", errors.New("boom")
		}
		calls++
		c := Seed()
		c.Models = c.Models[:calls]
		return c, "test", nil
	}

	s, err := NewSource(load)
	if err != nil {
		t.Fatalf("NewSource: %v", err)
	}
	first := s.Snapshot()
	if info := s.Info(); info.Version != 1 || info.Models != 1 || info.Origin != "test" {
		t.Errorf("initial info = %+v", info)
	}

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if info := s.Info(); info.Version != 2 || info.Models != 2 {
		t.Errorf("reloaded info = %+v", info)
	}
	if len(first.Models) != 1 {
		t.Error("earlier snapshot changed after reload")
	}

	fail = true
	if err := s.Reload(); err == nil {
		t.Fatal("failing reload returned nil")
	}
	if info := s.Info(); info.Version != 2 {
		t.Errorf("failed reload replaced the snapshot: %+v", info)
	}
}

func TestSourceRejectsInvalidCatalog(t *testing.T) {
	_, err := NewSource(func() (*Catalog, string, error) {
		return &Catalog{Models: []model.Model{{ID: 1, ProviderID: 9, Name: "x"}}}, "bad", nil
	})
	if err == nil {
		t.Fatal("invalid catalog published")
	}
}

func TestStaticSource(t *testing.T) {
	s := Static(Seed(), "seed")
	if s.Snapshot() == nil || s.Info().Origin != "seed" {
		t.Fatalf("static source = %+v", s.Info())
	}
}
