package daemon

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/store"
)

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "agentcost.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return New(cfg, Deps{
		Source:      catalog.Static(catalog.Seed(), "seed"),
		Comparisons: compare.NewManager(db),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := newTestService(t, Config{EventsBuffer: 2})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestPublishAssignsIncreasingIDs(t *testing.T) {
	s := newTestService(t, Config{})

	s.publish(EventPruned, map[string]int{"deleted": 1})
	s.publish(EventCatalogReload, nil)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) != 2 || s.events[0].ID != 1 || s.events[1].ID != 2 {
		t.Fatalf("events = %+v", s.events)
	}
	if s.events[1].Type != EventCatalogReload {
		t.Errorf("type = %q", s.events[1].Type)
	}
}

func TestPrunedHook(t *testing.T) {
	s := newTestService(t, Config{})

	s.pruned(0, nil)
	s.pruned(3, nil)
	s.pruned(0, io.ErrUnexpectedEOF)

	st := s.snapshotStatus(context.Background())
	if st.EventCount != 1 {
		t.Errorf("events = %d, want 1 (only non-empty prunes publish)", st.EventCount)
	}
	if !strings.Contains(st.LastError, "pruning comparisons") {
		t.Errorf("last error = %q", st.LastError)
	}
}

func TestCatalogReloadedHook(t *testing.T) {
	s := newTestService(t, Config{})

	s.catalogReloaded(nil)
	s.catalogReloaded(io.ErrUnexpectedEOF)

	st := s.snapshotStatus(context.Background())
	if st.EventCount != 1 {
		t.Errorf("events = %d, want 1", st.EventCount)
	}
	if !strings.Contains(st.LastError, "catalog reload") {
		t.Errorf("last error = %q", st.LastError)
	}
}

func TestStreamSendsStatusThenEvents(t *testing.T) {
	s := newTestService(t, Config{})
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/v1/stream", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}

	rd := bufio.NewReader(resp.Body)
	readEvent := func() string {
		t.Helper()
		line, err := rd.ReadString('\n')
		if err != nil {
			t.Fatalf("reading stream: %v", err)
		}
		// Consume the data line and the blank separator.
		for i := 0; i < 2; i++ {
			if _, err := rd.ReadString('\n'); err != nil {
				t.Fatalf("reading stream: %v", err)
			}
		}
		return strings.TrimSpace(line)
	}

	if got := readEvent(); got != "event: status" {
		t.Fatalf("first event = %q", got)
	}

	s.publish(EventComparisonAdded, map[string]string{"id": "x"})
	if got := readEvent(); got != "event: "+EventComparisonAdded {
		t.Fatalf("second event = %q", got)
	}
}
