package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Interval is how often a job is submitted
type Interval struct {
	Job   string
	Every time.Duration
	// RunOnStart submits the job once right after Start
	RunOnStart bool
}

// IntervalTrigger submits jobs to the scheduler on fixed intervals
type IntervalTrigger struct {
	scheduler *Scheduler
	intervals []Interval
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewIntervalTrigger creates a trigger. Intervals of zero or less are skipped.
func NewIntervalTrigger(scheduler *Scheduler, logger *zap.Logger, intervals ...Interval) *IntervalTrigger {
	if logger == nil {
		logger = zap.NewNop()
	}
	valid := make([]Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Every > 0 {
			valid = append(valid, iv)
		}
	}
	return &IntervalTrigger{
		scheduler: scheduler,
		intervals: valid,
		logger:    logger.Named("interval_trigger"),
	}
}

// Start starts one ticker loop per interval
func (t *IntervalTrigger) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = true
	ctx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()

	for _, iv := range t.intervals {
		t.wg.Add(1)
		go t.runLoop(ctx, iv)
		t.logger.Info("Job trigger started",
			zap.String("job", iv.Job),
			zap.Duration("every", iv.Every),
		)
	}
	return nil
}

// Stop stops the ticker loops
func (t *IntervalTrigger) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.isRunning {
		t.mu.Unlock()
		return nil
	}
	t.isRunning = false
	cancel := t.cancel
	t.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		t.logger.Info("Interval trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *IntervalTrigger) runLoop(ctx context.Context, iv Interval) {
	defer t.wg.Done()

	if iv.RunOnStart {
		t.fire(iv.Job)
	}

	ticker := time.NewTicker(iv.Every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.fire(iv.Job)
		}
	}
}

func (t *IntervalTrigger) fire(job string) {
	err := t.scheduler.Submit(job)
	switch {
	case err == nil:
	case errors.Is(err, ErrJobAlreadyRunning):
		t.logger.Debug("Skipping tick, previous run still active", zap.String("job", job))
	default:
		t.logger.Warn("Failed to submit job", zap.String("job", job), zap.Error(err))
	}
}
