package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"blog/utils/logger"
)

// Job defines a periodic background job. When Trigger is set, a receive
// on it runs the job ahead of the next tick.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Trigger  <-chan struct{}
	Fn       func(ctx context.Context) error
}

// JobScheduler runs periodic jobs until its context is cancelled.
type JobScheduler struct {
	jobs      []Job
	wg        sync.WaitGroup
	logger    *slog.Logger
	ctxLogger *logger.ContextLogger
}

func NewJobScheduler(log *slog.Logger) *JobScheduler {
	return &JobScheduler{logger: log, ctxLogger: logger.NewContextLogger(log)}
}

// Add registers a job to be run when Start is called.
func (s *JobScheduler) Add(j Job) {
	s.jobs = append(s.jobs, j)
}

// Start launches every registered job. Each job runs once immediately,
// then on its interval.
func (s *JobScheduler) Start(ctx context.Context) {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runJob(ctx, j)
	}
}

func (s *JobScheduler) runJob(ctx context.Context, j Job) {
	defer s.wg.Done()

	s.executeJob(ctx, j)

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "job stopping", "job", j.Name)
			return
		case <-ticker.C:
			s.executeJob(ctx, j)
		case <-j.Trigger:
			s.executeJob(ctx, j)
			ticker.Reset(j.Interval)
		}
	}
}

func (s *JobScheduler) executeJob(ctx context.Context, j Job) {
	if ctx.Err() != nil {
		return
	}

	jobCtx, cancel := context.WithTimeout(logger.WithOperation(ctx, j.Name), j.Timeout)
	defer cancel()

	if err := j.Fn(jobCtx); err != nil {
		s.ctxLogger.LogError(jobCtx, j.Name, err)
	}
}

// Shutdown blocks until all running jobs return.
func (s *JobScheduler) Shutdown() {
	s.wg.Wait()
}

// Waker coalesces wake-up requests into a single pending signal.
type Waker struct {
	ch chan struct{}
}

func NewWaker() *Waker {
	return &Waker{ch: make(chan struct{}, 1)}
}

// Wake never blocks.
func (w *Waker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func (w *Waker) C() <-chan struct{} {
	return w.ch
}
