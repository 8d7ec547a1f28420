// Package daemon serves the estimate engine and saved comparisons over HTTP.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/agentcost/internal/calc"
	"github.com/theirongolddev/agentcost/internal/catalog"
	"github.com/theirongolddev/agentcost/internal/compare"
	"github.com/theirongolddev/agentcost/internal/metrics"
	"github.com/theirongolddev/agentcost/internal/model"
)

// Event types.
const (
	EventEstimate          = "estimate"
	EventCatalogReload     = "catalog_reload"
	EventComparisonAdded   = "comparison_added"
	EventComparisonRemoved = "comparison_removed"
	EventPruned            = "pruned"
)

// Config controls the daemon runtime behavior.
type Config struct {
	Addr          string
	EventsBuffer  int
	RetentionDays int
	PruneSchedule string
	CatalogPath   string
	WatchCatalog  bool
	Currency      model.Currency
	ExchangeRate  float64
}

// Deps are the collaborators a Service serves. Source and Comparisons are
// required; the rest default.
type Deps struct {
	Source      *catalog.Source
	Pairings    catalog.Pairings
	Presets     calc.Presets
	Comparisons *compare.Manager
	Metrics     *metrics.Metrics
	Logger      *slog.Logger
}

// Event is published on every state change worth streaming.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data,omitempty"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time    `json:"started_at"`
	RequestCount    int64        `json:"request_count"`
	EstimateCount   int64        `json:"estimate_count"`
	Catalog         catalog.Info `json:"catalog"`
	Comparisons     int          `json:"comparisons"`
	LastError       string       `json:"last_error,omitempty"`
	EventCount      int          `json:"event_count"`
	SubscriberCount int          `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg         Config
	source      *catalog.Source
	pairs       catalog.Pairings
	presets     calc.Presets
	comparisons *compare.Manager
	metrics     *metrics.Metrics
	logger      *slog.Logger

	mu            sync.RWMutex
	startedAt     time.Time
	requestCount  int64
	estimateCount int64
	lastError     string
	nextEventID   int64
	events        []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, deps Deps) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Currency == "" {
		cfg.Currency = model.CurrencyUSD
	}
	if deps.Pairings == nil {
		deps.Pairings = catalog.DefaultPairings()
	}
	if deps.Presets.UseCases == nil {
		deps.Presets = calc.DefaultPresets()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Service{
		cfg:         cfg,
		source:      deps.Source,
		pairs:       deps.Pairings,
		presets:     deps.Presets,
		comparisons: deps.Comparisons,
		metrics:     deps.Metrics,
		logger:      deps.Logger.With("component", "daemon"),
		startedAt:   time.Now(),
		subs:        make(map[int]chan Event),
	}
}

// Run serves HTTP, and the catalog watcher and retention scheduler when
// configured, until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("daemon http server: %w", err)
		}
	}()

	if s.cfg.WatchCatalog && s.cfg.CatalogPath != "" {
		w := &catalog.Watcher{
			Path:     s.cfg.CatalogPath,
			Source:   s.source,
			Logger:   s.logger,
			OnReload: s.catalogReloaded,
		}
		go func() {
			if err := w.Watch(ctx); err != nil {
				errCh <- fmt.Errorf("catalog watcher: %w", err)
			}
		}()
	}

	retention := NewRetentionScheduler(s.comparisons, s.cfg.PruneSchedule, s.cfg.RetentionDays, s.logger, s.pruned)
	if err := retention.Start(ctx); err != nil {
		shutdown(server)
		return err
	}

	s.logger.Info("daemon listening", "addr", s.cfg.Addr, "catalog", s.source.Info().Origin)

	select {
	case <-ctx.Done():
		return shutdown(server)
	case err := <-errCh:
		retention.Stop()
		shutdown(server)
		return err
	}
}

func shutdown(server *http.Server) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Handler returns the HTTP API with request metrics applied.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/catalog", s.handleCatalog)
	mux.HandleFunc("POST /v1/estimate", s.handleEstimate)
	mux.HandleFunc("POST /v1/estimate/simple", s.handleEstimateSimple)
	mux.HandleFunc("POST /v1/growth", s.handleGrowth)
	mux.HandleFunc("POST /v1/prompt-estimate", s.handlePromptEstimate)
	mux.HandleFunc("GET /v1/comparisons", s.handleListComparisons)
	mux.HandleFunc("POST /v1/comparisons", s.handleAddComparison)
	mux.HandleFunc("DELETE /v1/comparisons", s.handleClearComparisons)
	mux.HandleFunc("GET /v1/comparisons/{id}", s.handleGetComparison)
	mux.HandleFunc("DELETE /v1/comparisons/{id}", s.handleRemoveComparison)
	mux.HandleFunc("GET /v1/report", s.handleReport)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	mux.Handle("GET /metrics", s.metrics.Handler())
	return s.instrument(mux)
}

// statusRecorder captures the response code. It forwards Flush so the SSE
// stream keeps working behind the middleware.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (s *Service) instrument(next *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestCount++
		s.mu.Unlock()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.RecordHTTPRequest(route, rec.code)
	})
}

func (s *Service) catalogReloaded(err error) {
	s.metrics.RecordCatalogReload(err)
	if err != nil {
		s.setLastError(fmt.Errorf("catalog reload: %w", err))
		return
	}
	s.publish(EventCatalogReload, s.source.Info())
}

func (s *Service) pruned(n int, err error) {
	if err != nil {
		s.setLastError(fmt.Errorf("pruning comparisons: %w", err))
		return
	}
	s.metrics.RecordPruned(n)
	if n > 0 {
		s.publish(EventPruned, map[string]int{"deleted": n})
	}
}

func (s *Service) setLastError(err error) {
	s.logger.Error("daemon error", "error", err)
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

func (s *Service) publish(typ string, data any) {
	s.mu.Lock()
	s.nextEventID++
	ev := Event{
		ID:        s.nextEventID,
		Type:      typ,
		Timestamp: time.Now(),
		Data:      data,
	}
	s.mu.Unlock()
	s.publishEvent(ev)
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus(ctx context.Context) Status {
	comparisons := 0
	if entries, err := s.comparisons.List(ctx); err == nil {
		comparisons = len(entries)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		RequestCount:    s.requestCount,
		EstimateCount:   s.estimateCount,
		Catalog:         s.source.Info(),
		Comparisons:     comparisons,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus(r.Context()))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current status immediately.
	writeSSE(w, Event{
		Type:      "status",
		Timestamp: time.Now(),
		Data:      s.snapshotStatus(r.Context()),
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
