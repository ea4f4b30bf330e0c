package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is the work run once per day
type Job func(ctx context.Context) error

// DailyTriggerConfig holds configuration for a daily trigger
type DailyTriggerConfig struct {
	Name   string
	Hour   int
	Minute int
	// Location is the clock the hour and minute refer to; nil means UTC
	Location *time.Location
	// CheckInterval is how often to check if it's time to run
	CheckInterval time.Duration
	// Timeout bounds a single run; zero means no limit
	Timeout time.Duration
}

// DailyTrigger runs a job once a day at a wall-clock time
type DailyTrigger struct {
	config DailyTriggerConfig
	job    Job
	logger *zap.Logger
	now    func() time.Time

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewDailyTrigger creates a new daily trigger
func NewDailyTrigger(config DailyTriggerConfig, job Job, logger *zap.Logger) *DailyTrigger {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	return &DailyTrigger{
		config: config,
		job:    job,
		logger: logger.With(zap.String("job", config.Name)),
		now:    time.Now,
	}
}

// Start starts the trigger loop
func (d *DailyTrigger) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = true
	ctx, d.cancel = context.WithCancel(ctx)
	d.mu.Unlock()

	d.wg.Add(1)
	go d.runLoop(ctx)

	d.logger.Info("Daily trigger started",
		zap.Int("hour", d.config.Hour),
		zap.Int("minute", d.config.Minute),
		zap.String("timezone", d.config.Location.String()),
	)
	return nil
}

// Stop stops the trigger and waits for a running job to finish or ctx to end
func (d *DailyTrigger) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	cancel := d.cancel
	d.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Daily trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunNow runs the job immediately, outside the schedule
func (d *DailyTrigger) RunNow(ctx context.Context) error {
	d.mu.Lock()
	running := d.isRunning
	d.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	return d.run(ctx)
}

func (d *DailyTrigger) runLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.checkAndTrigger(ctx)
		}
	}
}

// checkAndTrigger runs the job when the scheduled minute has been reached
// and it has not run yet on the current local date. A loop that wakes up
// late the same day still catches up.
func (d *DailyTrigger) checkAndTrigger(ctx context.Context) bool {
	now := d.now().In(d.config.Location)
	today := now.Format("2006-01-02")

	d.mu.Lock()
	if d.lastRunDate == today {
		d.mu.Unlock()
		return false
	}
	due := time.Date(now.Year(), now.Month(), now.Day(), d.config.Hour, d.config.Minute, 0, 0, d.config.Location)
	if now.Before(due) {
		d.mu.Unlock()
		return false
	}
	d.lastRunDate = today
	d.mu.Unlock()

	if err := d.run(ctx); err != nil {
		d.logger.Error("Daily job failed", zap.Error(err))
	}
	return true
}

func (d *DailyTrigger) run(ctx context.Context) error {
	if d.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.config.Timeout)
		defer cancel()
	}
	start := d.now()
	if err := d.job(ctx); err != nil {
		return err
	}
	d.logger.Info("Daily job completed", zap.Duration("duration", d.now().Sub(start)))
	return nil
}
