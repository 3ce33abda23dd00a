package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/syncworks/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	Enabled           bool
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
	QueueSize         int
}

// DefaultSchedulerConfig returns default scheduler configuration
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Enabled:           true,
		MaxConcurrentJobs: 2,
		JobTimeout:        5 * time.Minute,
		RetryAttempts:     3,
		RetryDelay:        30 * time.Second,
		QueueSize:         32,
	}
}

// ConfigFromApp maps the application config section
func ConfigFromApp(cfg config.SchedulerConfig) SchedulerConfig {
	out := DefaultSchedulerConfig()
	out.Enabled = cfg.Enabled
	if cfg.MaxConcurrentJobs > 0 {
		out.MaxConcurrentJobs = cfg.MaxConcurrentJobs
	}
	if cfg.JobTimeout > 0 {
		out.JobTimeout = cfg.JobTimeout
	}
	if cfg.RetryAttempts >= 0 {
		out.RetryAttempts = cfg.RetryAttempts
	}
	if cfg.RetryDelay > 0 {
		out.RetryDelay = cfg.RetryDelay
	}
	return out
}

// Validate checks the configuration
func (c SchedulerConfig) Validate() error {
	if c.MaxConcurrentJobs < 1 {
		return fmt.Errorf("%w: max_concurrent_jobs must be at least 1", ErrInvalidConfig)
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("%w: job_timeout must be positive", ErrInvalidConfig)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry_attempts cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// Scheduler runs registered jobs on a bounded worker pool with a per-run
// timeout and delayed retries. Two runs of the same job never overlap.
type Scheduler struct {
	config SchedulerConfig
	logger *zap.Logger

	jobs    chan *Job
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	running bool

	funcs  map[string]JobFunc
	active map[string]bool
	stats  map[string]*JobStats
}

// NewScheduler creates a new scheduler instance
func NewScheduler(config SchedulerConfig, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultSchedulerConfig().QueueSize
	}
	return &Scheduler{
		config: config,
		logger: logger.Named("scheduler"),
		jobs:   make(chan *Job, config.QueueSize),
		funcs:  make(map[string]JobFunc),
		active: make(map[string]bool),
		stats:  make(map[string]*JobStats),
	}
}

// Register adds a job body under name, replacing any previous one
func (s *Scheduler) Register(name string, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.funcs[name] = fn
	if _, ok := s.stats[name]; !ok {
		s.stats[name] = &JobStats{Name: name}
	}
}

// Start starts the worker pool
func (s *Scheduler) Start(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	for i := 0; i < s.config.MaxConcurrentJobs; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Scheduler started",
		zap.Int("workers", s.config.MaxConcurrentJobs),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)
	return nil
}

// Stop cancels in-flight runs and waits for the workers
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the worker pool is up
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Submit queues a run of a registered job
func (s *Scheduler) Submit(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return ErrSchedulerNotRunning
	}
	if _, ok := s.funcs[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	if s.active[name] {
		return ErrJobAlreadyRunning
	}
	return s.enqueueLocked(NewJob(name, s.config.RetryAttempts))
}

func (s *Scheduler) enqueueLocked(job *Job) error {
	select {
	case s.jobs <- job:
		s.active[job.Name] = true
		s.logger.Debug("Job queued",
			zap.String("job_id", job.ID.String()),
			zap.String("job", job.Name),
			zap.Int("retry", job.RetryCount),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// Stats returns per-job statistics sorted by name
func (s *Scheduler) Stats() []JobStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]JobStats, 0, len(s.stats))
	for name, st := range s.stats {
		cp := *st
		cp.Running = s.active[name]
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *Scheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case job := <-s.jobs:
			s.processJob(ctx, job, workerID)
		}
	}
}

func (s *Scheduler) processJob(ctx context.Context, job *Job, workerID int) {
	s.mu.Lock()
	fn := s.funcs[job.Name]
	s.mu.Unlock()

	job.Start()
	log := s.logger.With(
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("job", job.Name),
	)
	log.Debug("Processing job")

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	err := runSafely(jobCtx, fn)
	cancel()

	if err == nil {
		job.Complete()
		s.record(job)
		s.release(job.Name)
		log.Info("Job completed", zap.Duration("took", job.CompletedAt.Sub(*job.StartedAt)))
		return
	}

	job.Fail(err.Error())
	s.record(job)
	log.Error("Job failed", zap.Int("retry_count", job.RetryCount), zap.Error(err))

	if !job.ShouldRetry() || ctx.Err() != nil {
		s.release(job.Name)
		return
	}

	job.ScheduleRetry()
	s.wg.Add(1)
	go s.retryLater(ctx, job)
}

// retryLater re-queues the job after the retry delay. The job stays marked
// active meanwhile so interval ticks do not start a parallel run.
func (s *Scheduler) retryLater(ctx context.Context, job *Job) {
	defer s.wg.Done()

	timer := time.NewTimer(s.config.RetryDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.release(job.Name)
		return
	case <-timer.C:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case s.jobs <- job:
		s.logger.Info("Job retry queued",
			zap.String("job", job.Name),
			zap.Int("retry_count", job.RetryCount),
			zap.Int("max_retries", job.MaxRetries),
		)
	default:
		s.active[job.Name] = false
		s.logger.Warn("Failed to re-queue job for retry", zap.String("job", job.Name))
	}
}

func (s *Scheduler) record(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stats[job.Name]
	if !ok {
		st = &JobStats{Name: job.Name}
		s.stats[job.Name] = st
	}
	st.Runs++
	if job.Status == JobStatusFailed {
		st.Failures++
	}
	st.LastStatus = job.Status
	st.LastError = job.Error
	st.LastRunAt = job.StartedAt
	if job.StartedAt != nil && job.CompletedAt != nil {
		st.LastRunTime = job.CompletedAt.Sub(*job.StartedAt).String()
	}
}

func (s *Scheduler) release(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[name] = false
}

func runSafely(ctx context.Context, fn JobFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return fn(ctx)
}
