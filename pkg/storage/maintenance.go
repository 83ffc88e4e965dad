package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// Checkpointer is implemented by backends with periodic maintenance work.
// SQLiteStore truncates the WAL and refreshes query planner statistics.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// Maintainer runs periodic SQLite maintenance (WAL checkpoint and query
// planner statistics) on a cron schedule so the database file stays compact
// under long uptimes.
type Maintainer struct {
	store    Checkpointer
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewMaintainer creates a maintainer for the given store.
//
// Common cron expressions:
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 */6 * * *"  - Every 6 hours
//
// An empty schedule disables maintenance.
func NewMaintainer(store Checkpointer, schedule string) *Maintainer {
	return &Maintainer{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "storage.maintenance"),
	}
}

// Start begins scheduled maintenance. It returns immediately; jobs run on
// the cron's own goroutine until the context is cancelled or Stop is called.
func (m *Maintainer) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.schedule == "" {
		m.logger.Info("maintenance schedule not configured, skipping")
		return nil
	}

	if _, err := cron.ParseStandard(m.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", m.schedule, err)
	}

	if _, err := m.cron.AddFunc(m.schedule, func() {
		m.runMaintenance(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule maintenance: %w", err)
	}

	m.cron.Start()
	m.running = true

	m.logger.Info("maintenance scheduler started", "schedule", m.schedule)

	go func() {
		<-ctx.Done()
		m.Stop()
	}()

	return nil
}

// runMaintenance executes one maintenance cycle.
func (m *Maintainer) runMaintenance(ctx context.Context) {
	m.logger.Debug("starting scheduled database maintenance")

	if err := m.store.Checkpoint(ctx); err != nil {
		m.logger.Error("scheduled maintenance failed", "error", err)
		return
	}

	m.logger.Info("scheduled database maintenance completed")
}

// Stop stops the scheduler and waits for any running job to complete.
func (m *Maintainer) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cron != nil && m.running {
		ctx := m.cron.Stop()
		<-ctx.Done() // wait for running jobs to finish
		m.running = false
		m.logger.Info("maintenance scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (m *Maintainer) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}
