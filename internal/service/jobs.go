package service

import (
	"context"
	"time"

	"learnspace_backend/internal/repository"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobRunner owns the background schedules: reconciling the cached
// view/download counters against the usage-event log, and purging
// outline drafts whose course was deleted.
type JobRunner struct {
	cron         *cron.Cron
	resourceRepo *repository.ResourceRepository
	usageRepo    *repository.UsageRepository
	drafts       *DraftService
	courses      *CourseService
	logger       *zap.Logger
}

func NewJobRunner(
	resourceRepo *repository.ResourceRepository,
	usageRepo *repository.UsageRepository,
	drafts *DraftService,
	courses *CourseService,
	logger *zap.Logger,
) *JobRunner {
	return &JobRunner{
		cron:         cron.New(),
		resourceRepo: resourceRepo,
		usageRepo:    usageRepo,
		drafts:       drafts,
		courses:      courses,
		logger:       logger,
	}
}

func (j *JobRunner) Start() error {
	if _, err := j.cron.AddFunc("@hourly", j.ReconcileCounters); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("@daily", j.PurgeOrphanedDrafts); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("background jobs scheduled")
	return nil
}

func (j *JobRunner) Stop() {
	ctx := j.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		j.logger.Warn("background jobs did not drain in time")
	}
}

// ReconcileCounters rewrites every resource's cached counters from the
// event log. The log is the source of truth; the caches only exist so
// list views do not aggregate on every request.
func (j *JobRunner) ReconcileCounters() {
	start := time.Now()

	ids, err := j.resourceRepo.FindAllIDs()
	if err != nil {
		j.logger.Error("counter reconciliation aborted", zap.Error(err))
		return
	}

	var failed int
	for _, id := range ids {
		views, downloads, err := j.usageRepo.CountByAction(id)
		if err != nil {
			failed++
			continue
		}
		if err := j.resourceRepo.SetCounters(id, views, downloads); err != nil {
			failed++
		}
	}

	j.logger.Info("counters reconciled",
		zap.Int("resources", len(ids)),
		zap.Int("failed", failed),
		zap.Duration("took", time.Since(start)))
}

func (j *JobRunner) PurgeOrphanedDrafts() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	purged, err := j.drafts.PurgeOrphans(ctx, j.courses.Exists)
	if err != nil {
		j.logger.Error("draft purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		j.logger.Info("orphaned drafts purged", zap.Int("count", purged))
	}
}
