// Package scheduler runs the periodic maintenance jobs on a cron schedule.
// When a Locker is configured each tick runs on at most one instance.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/iho/budgetledger/internal/infrastructure/metrics"
)

// Job is a unit of scheduled work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Locker grants cluster-wide mutual exclusion. WithLock returns an error
// without calling fn when the lock is held elsewhere.
type Locker interface {
	WithLock(ctx context.Context, name string, ttl time.Duration, fn func(ctx context.Context) error) error
}

// Scheduler manages background jobs.
type Scheduler struct {
	cron    *cron.Cron
	locker  Locker
	lockTTL time.Duration
	timeout time.Duration
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLocker guards every run with locker.
func WithLocker(locker Locker, ttl time.Duration) Option {
	return func(s *Scheduler) {
		s.locker = locker
		s.lockTTL = ttl
	}
}

// WithMetrics records job outcomes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Scheduler) { s.metrics = m }
}

// WithTimeout bounds a single job run.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) { s.timeout = d }
}

// New creates a scheduler whose specs include a seconds field.
func New(log zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		lockTTL: time.Minute,
		timeout: 5 * time.Minute,
		log:     log.With().Str("component", "scheduler").Logger(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// AddJob registers job under a cron schedule, e.g. "0 */5 * * * *" or "@every 30s".
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		_ = s.RunNow(context.Background(), job)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("schedule", schedule).Str("job", job.Name()).Msg("job registered")
	return nil
}

// RunNow executes a job once, under the lock when one is configured.
// A run skipped because another instance holds the lock is not an error.
func (s *Scheduler) RunNow(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := s.log.With().Str("job", job.Name()).Logger()
	if s.locker == nil {
		return s.finish(log, job.Name(), job.Run(ctx))
	}

	ran := false
	err := s.locker.WithLock(ctx, "job:"+job.Name(), s.lockTTL, func(ctx context.Context) error {
		ran = true
		return job.Run(ctx)
	})
	if !ran {
		log.Debug().Err(err).Msg("job skipped, lock not acquired")
		s.record(job.Name(), "skipped")
		return nil
	}
	return s.finish(log, job.Name(), err)
}

func (s *Scheduler) finish(log zerolog.Logger, name string, err error) error {
	if err != nil {
		log.Error().Err(err).Msg("job failed")
		s.record(name, "error")
		return err
	}
	log.Debug().Msg("job completed")
	s.record(name, "ok")
	return nil
}

func (s *Scheduler) record(name, result string) {
	if s.metrics != nil {
		s.metrics.JobRuns.WithLabelValues(name, result).Inc()
	}
}
