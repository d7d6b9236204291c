// Package scheduler runs periodic background jobs with a start/stop
// lifecycle.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when submitting work to a stopped
// scheduler
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Job is one unit of periodic background work
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Config holds scheduler settings
type Config struct {
	Interval   time.Duration
	JobTimeout time.Duration
}

// Scheduler runs its jobs sequentially on a fixed interval. Each run gets a
// per-job timeout; a failing job is logged and does not block the others.
type Scheduler struct {
	config Config
	jobs   []Job
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRunAt *time.Time
}

// NewScheduler creates a scheduler over the given jobs
func NewScheduler(config Config, jobs []Job, logger *zap.Logger) *Scheduler {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = 5 * time.Minute
	}
	return &Scheduler{
		config: config,
		jobs:   jobs,
		logger: logger,
	}
}

// Start launches the ticker loop. Jobs also run once immediately so a
// restart does not delay overdue work by a full interval.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Background scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop cancels the loop and waits for in-flight jobs to finish
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Background scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Background scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerNow runs all jobs once, outside the ticker cadence
func (s *Scheduler) TriggerNow(ctx context.Context) error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()
	if !running {
		return ErrSchedulerNotRunning
	}
	s.runJobs(ctx)
	return nil
}

// LastRunAt returns when the jobs last ran
func (s *Scheduler) LastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	s.runJobs(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runJobs(ctx)
		}
	}
}

func (s *Scheduler) runJobs(ctx context.Context) {
	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	for _, job := range s.jobs {
		if ctx.Err() != nil {
			return
		}

		jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
		start := time.Now()
		err := job.Run(jobCtx)
		cancel()

		if err != nil {
			s.logger.Error("Background job failed",
				zap.String("job", job.Name()),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			continue
		}
		s.logger.Debug("Background job completed",
			zap.String("job", job.Name()),
			zap.Duration("duration", time.Since(start)))
	}
}
