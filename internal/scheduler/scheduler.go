// Package scheduler runs the background jobs: market cache sweeps and
// reference table reloads.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper removes expired cache entries and reports how many were dropped.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Reloader refreshes reference data.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Config holds the cron specs. An empty spec disables the job.
type Config struct {
	CacheSweep      string
	ReferenceReload string
	ReloadTimeout   time.Duration
}

// Scheduler wraps a cron instance with the application's jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
	now    func() time.Time
	jobs   []cron.EntryID
}

// New registers the jobs described by cfg. Jobs do not run until Start.
func New(cfg Config, sweeper Sweeper, reloader Reloader, logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scheduler")
	if cfg.ReloadTimeout <= 0 {
		cfg.ReloadTimeout = 30 * time.Second
	}

	s := &Scheduler{
		cron:   cron.New(cron.WithLogger(cronLogger{logger}), cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger}))),
		logger: logger,
		now:    time.Now,
	}

	if cfg.CacheSweep != "" && sweeper != nil {
		if err := s.add(cfg.CacheSweep, func() { s.sweep(sweeper) }); err != nil {
			return nil, fmt.Errorf("invalid cache sweep schedule: %w", err)
		}
	}
	if cfg.ReferenceReload != "" && reloader != nil {
		if err := s.add(cfg.ReferenceReload, func() { s.reload(reloader, cfg.ReloadTimeout) }); err != nil {
			return nil, fmt.Errorf("invalid reference reload schedule: %w", err)
		}
	}
	return s, nil
}

func (s *Scheduler) add(spec string, job func()) error {
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return err
	}
	s.jobs = append(s.jobs, id)
	return nil
}

// Jobs is the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.jobs)
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.jobs))
}

// Stop stops scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) sweep(sweeper Sweeper) {
	if removed := sweeper.Sweep(s.now()); removed > 0 {
		s.logger.Debug("market cache swept", "removed", removed)
	}
}

func (s *Scheduler) reload(reloader Reloader, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := reloader.Reload(ctx); err != nil {
		s.logger.Warn("scheduled reference reload failed", "error", err)
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
