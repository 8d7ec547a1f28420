package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes comparison entries older than maxAge.
type Pruner interface {
	Prune(ctx context.Context, maxAge time.Duration) (int, error)
}

// RetentionScheduler prunes old comparison entries on a cron schedule.
type RetentionScheduler struct {
	pruner   Pruner
	schedule string
	maxAge   time.Duration
	logger   *slog.Logger
	onPrune  func(n int, err error)

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
	lastRun time.Time
}

// NewRetentionScheduler returns a scheduler that keeps retentionDays of
// entries. onPrune, if set, observes every run.
func NewRetentionScheduler(p Pruner, schedule string, retentionDays int, logger *slog.Logger, onPrune func(n int, err error)) *RetentionScheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetentionScheduler{
		pruner:   p,
		schedule: schedule,
		maxAge:   time.Duration(retentionDays) * 24 * time.Hour,
		logger:   logger.With("component", "retention"),
		onPrune:  onPrune,
		cron:     cron.New(),
	}
}

// Start validates the schedule and begins pruning. An empty schedule or a
// non-positive retention disables the scheduler. It stops when ctx ends.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
func (s *RetentionScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" || s.maxAge <= 0 {
		s.logger.Info("retention disabled", "schedule", s.schedule, "max_age", s.maxAge)
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}
	if _, err := s.cron.AddFunc(s.schedule, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("scheduling pruning: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("retention scheduler started", "schedule", s.schedule, "retention_days", int(s.maxAge.Hours()/24))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// RunOnce runs one pruning cycle and returns how many entries were removed.
func (s *RetentionScheduler) RunOnce(ctx context.Context) int {
	n, err := s.pruner.Prune(ctx, s.maxAge)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled pruning failed", "error", err)
	} else if n > 0 {
		s.logger.Info("scheduled pruning completed", "deleted_count", n)
	} else {
		s.logger.Debug("scheduled pruning completed, nothing to delete")
	}
	if s.onPrune != nil {
		s.onPrune(n, err)
	}
	return n
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *RetentionScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	c := s.cron
	s.mu.Unlock()

	<-c.Stop().Done()
	s.logger.Info("retention scheduler stopped")
}

// NextRun returns the next scheduled run, or nil when not running.
func (s *RetentionScheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

// LastRun returns when pruning last ran, or the zero time.
func (s *RetentionScheduler) LastRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun
}
