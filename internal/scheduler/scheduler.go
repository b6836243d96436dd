package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"boardrent-backend/internal/config"
	"boardrent-backend/internal/jobs"
	"boardrent-backend/internal/logger"
)

// Scheduler manages cron job scheduling for storage maintenance
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler with the provided job runner
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) *Scheduler {
	// UTC timezone with seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if _, err := c.AddFunc(cfg.PruneEmptyScopes, jobRunner.PruneEmptyScopes); err != nil {
		logger.Error("Failed to register PruneEmptyScopes job", "error", err)
	}
	if _, err := c.AddFunc(cfg.ReportStorageStats, jobRunner.ReportStorageStats); err != nil {
		logger.Error("Failed to register ReportStorageStats job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
	return s
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}
