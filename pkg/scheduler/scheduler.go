package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storewatch/pkg/config"
	"storewatch/pkg/logger"
	"storewatch/pkg/stock"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job statuses
const (
	JobStatusScheduled = "scheduled"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
)

// Error variables
var (
	ErrJobNotFound = fmt.Errorf("job not found")
)

// defaultCron runs a stock check every five minutes
const defaultCron = "*/5 * * * *"

// Runner executes one stock check pass
type Runner interface {
	Run(ctx context.Context) (*stock.RunResult, error)
}

// CheckScheduler runs stock checks on cron schedules. Runs are serialized:
// the checker and its notification sink aggregate per run, so two checks
// must never overlap.
type CheckScheduler struct {
	cron      *cron.Cron
	config    *config.Config
	ctx       context.Context
	runner    Runner
	jobs      map[string]*ScheduledJob
	jobsMutex sync.RWMutex

	runMutex sync.Mutex // one check at a time, cron or API triggered

	lastMutex  sync.RWMutex
	lastResult *stock.RunResult
}

// ScheduledJob represents a scheduled stock check
type ScheduledJob struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Cron    string    `json:"cron"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
	Status  string    `json:"status"`
	EntryID cron.EntryID
}

// NewCheckScheduler creates a scheduler driving the given runner
func NewCheckScheduler(ctx context.Context, cfg *config.Config, runner Runner) (*CheckScheduler, error) {
	logger.Info("Initializing check scheduler")

	cronScheduler := cron.New(
		cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		),
	)

	scheduler := &CheckScheduler{
		cron:   cronScheduler,
		config: cfg,
		ctx:    ctx,
		runner: runner,
		jobs:   make(map[string]*ScheduledJob),
	}

	if err := scheduler.loadConfiguredJobs(); err != nil {
		return nil, fmt.Errorf("failed to load configured jobs: %w", err)
	}

	logger.Info("Check scheduler initialized", zap.Int("job_count", len(scheduler.jobs)))
	return scheduler, nil
}

// Start starts the scheduler and blocks until the context is cancelled
func (cs *CheckScheduler) Start() error {
	logger.Info("Starting check scheduler")

	cs.cron.Start()

	// Update next run times for all jobs after cron starts
	cs.jobsMutex.Lock()
	for _, job := range cs.jobs {
		if err := cs.updateJobNextRunTime(job); err != nil {
			logger.Warn("Failed to update next run time after start",
				zap.String("job_name", job.Name),
				zap.Error(err))
		}
	}
	cs.jobsMutex.Unlock()

	cs.logScheduledJobs()

	<-cs.ctx.Done()
	logger.Info("Check scheduler context cancelled")

	return nil
}

// Shutdown gracefully shuts down the scheduler
func (cs *CheckScheduler) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down check scheduler")

	cronCtx := cs.cron.Stop()

	// Wait for running jobs to complete or timeout
	select {
	case <-cronCtx.Done():
		logger.Info("All scheduled checks completed")
	case <-ctx.Done():
		logger.Warn("Scheduler shutdown timeout, a check may still be running")
	}

	return nil
}

// AddJob adds a new scheduled job
func (cs *CheckScheduler) AddJob(job *ScheduledJob) error {
	cs.jobsMutex.Lock()
	defer cs.jobsMutex.Unlock()

	if job.ID == "" {
		job.ID = uuid.New().String()
	}

	jobFunc := cs.createJobFunction(job)

	entryID, err := cs.cron.AddFunc(job.Cron, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	job.EntryID = entryID
	job.Status = JobStatusScheduled

	if err := cs.updateJobNextRunTime(job); err != nil {
		logger.Warn("Failed to update next run time", zap.String("job_name", job.Name), zap.Error(err))
	}

	cs.jobs[job.ID] = job

	logger.Info("Added scheduled check",
		zap.String("job_id", job.ID),
		zap.String("job_name", job.Name),
		zap.String("cron", job.Cron),
		zap.Time("next_run", job.NextRun),
	)

	return nil
}

// RemoveJob removes a scheduled job
func (cs *CheckScheduler) RemoveJob(jobID string) error {
	cs.jobsMutex.Lock()
	defer cs.jobsMutex.Unlock()

	job, exists := cs.jobs[jobID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	cs.cron.Remove(job.EntryID)
	delete(cs.jobs, jobID)

	logger.Info("Removed scheduled check", zap.String("job_id", jobID), zap.String("job_name", job.Name))
	return nil
}

// GetJobs returns all scheduled jobs. It refreshes each job's next run time,
// so it takes the write lock.
func (cs *CheckScheduler) GetJobs() []*ScheduledJob {
	cs.jobsMutex.Lock()
	defer cs.jobsMutex.Unlock()

	jobs := make([]*ScheduledJob, 0, len(cs.jobs))
	for _, job := range cs.jobs {
		cs.updateJobNextRunTime(job)
		jobs = append(jobs, job)
	}

	return jobs
}

// GetJob returns a specific scheduled job
func (cs *CheckScheduler) GetJob(jobID string) (*ScheduledJob, error) {
	cs.jobsMutex.RLock()
	defer cs.jobsMutex.RUnlock()

	job, exists := cs.jobs[jobID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	return job, nil
}

// GetStatus returns scheduler status
func (cs *CheckScheduler) GetStatus() map[string]interface{} {
	cs.jobsMutex.RLock()
	defer cs.jobsMutex.RUnlock()

	status := map[string]interface{}{
		"running":   cs.cron != nil,
		"job_count": len(cs.jobs),
		"entries":   len(cs.cron.Entries()),
		"timestamp": time.Now().UTC(),
	}

	return status
}

// LastResult returns the result of the most recent check, or nil if none has
// completed yet
func (cs *CheckScheduler) LastResult() *stock.RunResult {
	cs.lastMutex.RLock()
	defer cs.lastMutex.RUnlock()
	return cs.lastResult
}

// RunNow triggers an immediate check outside the cron schedule. It blocks
// until any check already in flight has finished.
func (cs *CheckScheduler) RunNow(ctx context.Context) (*stock.RunResult, error) {
	return cs.run(ctx)
}

// run executes one check while holding the run lock
func (cs *CheckScheduler) run(ctx context.Context) (*stock.RunResult, error) {
	cs.runMutex.Lock()
	defer cs.runMutex.Unlock()

	result, err := cs.runner.Run(ctx)
	if result != nil {
		cs.setLastResult(result)
	}
	return result, err
}

// loadConfiguredJobs loads jobs from configuration, or a default schedule
// when none are configured
func (cs *CheckScheduler) loadConfiguredJobs() error {
	if cs.config.Scheduler != nil && cs.config.Scheduler.Enabled && len(cs.config.Scheduler.Jobs) > 0 {
		logger.Info("Loading jobs from configuration file", zap.Int("count", len(cs.config.Scheduler.Jobs)))

		for _, configJob := range cs.config.Scheduler.Jobs {
			job := &ScheduledJob{
				Name: configJob.Name,
				Cron: configJob.Cron,
			}

			if err := cs.AddJob(job); err != nil {
				logger.Warn("Failed to add configured job", zap.String("job_name", job.Name), zap.Error(err))
			}
		}

		return nil
	}

	logger.Info("No jobs found in configuration, loading default schedule")
	return cs.AddJob(&ScheduledJob{
		Name: "stock_check",
		Cron: defaultCron,
	})
}

// createJobFunction creates the function executed for a scheduled job
func (cs *CheckScheduler) createJobFunction(job *ScheduledJob) func() {
	return func() {
		logger.Info("Executing scheduled check", zap.String("job_id", job.ID), zap.String("job_name", job.Name))

		cs.updateJobStatus(job, JobStatusRunning)
		cs.updateJobLastRun(job, time.Now())

		result, err := cs.run(cs.ctx)
		if err != nil {
			logger.Error("Scheduled check failed", zap.String("job_name", job.Name), zap.Error(err))
			cs.updateJobStatus(job, JobStatusFailed)
			return
		}

		logger.Info("Scheduled check completed",
			zap.String("job_name", job.Name),
			zap.Int("stores_registered", result.StoresRegistered),
			zap.Int("events_produced", result.EventsProduced),
		)

		cs.updateJobStatus(job, JobStatusCompleted)
	}
}

// logScheduledJobs logs information about all scheduled jobs
func (cs *CheckScheduler) logScheduledJobs() {
	cs.jobsMutex.RLock()
	defer cs.jobsMutex.RUnlock()

	if len(cs.jobs) == 0 {
		logger.Info("No scheduled jobs configured")
		return
	}

	logger.Info("Active scheduled jobs:")
	for _, job := range cs.jobs {
		logger.Info("Scheduled job",
			zap.String("job_name", job.Name),
			zap.String("cron", job.Cron),
			zap.Time("next_run", job.NextRun),
			zap.String("status", job.Status),
		)
	}
}

// updateJobNextRunTime updates the next run time for a job
func (cs *CheckScheduler) updateJobNextRunTime(job *ScheduledJob) error {
	entries := cs.cron.Entries()
	for _, entry := range entries {
		if entry.ID == job.EntryID {
			job.NextRun = entry.Next
			return nil
		}
	}

	// Entry not registered yet, parse the expression directly
	if schedule, err := cron.ParseStandard(job.Cron); err == nil {
		job.NextRun = schedule.Next(time.Now())
		return nil
	} else {
		return fmt.Errorf("failed to parse cron expression %s: %w", job.Cron, err)
	}
}

// updateJobStatus updates the status of a job
func (cs *CheckScheduler) updateJobStatus(job *ScheduledJob, status string) {
	cs.jobsMutex.Lock()
	defer cs.jobsMutex.Unlock()
	job.Status = status
}

// updateJobLastRun updates the last run time of a job
func (cs *CheckScheduler) updateJobLastRun(job *ScheduledJob, lastRun time.Time) {
	cs.jobsMutex.Lock()
	defer cs.jobsMutex.Unlock()
	job.LastRun = lastRun
}

func (cs *CheckScheduler) setLastResult(result *stock.RunResult) {
	cs.lastMutex.Lock()
	defer cs.lastMutex.Unlock()
	cs.lastResult = result
}
