package catalog

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// LoadFunc produces a fresh catalog. Origin describes where it came from.
type LoadFunc func() (c *Catalog, origin string, err error)

// Info describes the snapshot a Source currently serves.
type Info struct {
	Version  int64     `json:"version"`
	Origin   string    `json:"origin"`
	LoadedAt time.Time `json:"loadedAt"`
	Models   int       `json:"models"`
}

type snapshot struct {
	cat  *Catalog
	info Info
}

// Source serves the current catalog snapshot and swaps it atomically on
// Reload. Readers never block; a calculation keeps the snapshot it started
// with even if a reload lands mid-flight.
type Source struct {
	load    LoadFunc
	reload  sync.Mutex
	current atomic.Pointer[snapshot]
}

// NewSource performs the initial load.
func NewSource(load LoadFunc) (*Source, error) {
	s := &Source{load: load}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Static returns a Source that always serves c.
func Static(c *Catalog, origin string) *Source {
	s := &Source{load: func() (*Catalog, string, error) { return c, origin, nil }}
	_ = s.Reload()
	return s
}

// FileLoader loads the YAML catalog at path.
func FileLoader(path string) LoadFunc {
	return func() (*Catalog, string, error) {
		c, err := LoadFile(path)
		return c, "file:" + path, err
	}
}

// SeedLoader serves the built-in catalog.
func SeedLoader() LoadFunc {
	return func() (*Catalog, string, error) { return Seed(), "seed", nil }
}

// Snapshot returns the current catalog.
func (s *Source) Snapshot() *Catalog {
	return s.current.Load().cat
}

// Info returns metadata about the current snapshot.
func (s *Source) Info() Info {
	return s.current.Load().info
}

// Reload loads a new catalog and publishes it. On failure the previous
// snapshot stays in place.
func (s *Source) Reload() error {
	s.reload.Lock()
	defer s.reload.Unlock()

	c, origin, err := s.load()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validating catalog: %w", err)
	}

	var version int64 = 1
	if prev := s.current.Load(); prev != nil {
		version = prev.info.Version + 1
	}
	s.current.Store(&snapshot{
		cat: c,
		info: Info{
			Version:  version,
			Origin:   origin,
			LoadedAt: time.Now().UTC(),
			Models:   len(c.Models),
		},
	})
	return nil
}
