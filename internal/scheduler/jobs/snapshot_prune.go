package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// SnapshotPruner forecast.Repository 의 정리 기능
type SnapshotPruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SnapshotPruneJob removes forecast snapshots older than the retention window
type SnapshotPruneJob struct {
	pruner    SnapshotPruner
	retention time.Duration
	schedule  string
	now       func() time.Time
	logger    *logger.Logger
}

// NewSnapshotPruneJob creates a new prune job
func NewSnapshotPruneJob(pruner SnapshotPruner, retentionDays int, schedule string, log *logger.Logger) *SnapshotPruneJob {
	return &SnapshotPruneJob{
		pruner:    pruner,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		schedule:  schedule,
		now:       time.Now,
		logger:    log,
	}
}

// Name returns the job name
func (j *SnapshotPruneJob) Name() string {
	return "snapshot_prune"
}

// Schedule returns the cron schedule (PRUNE_SCHEDULE)
func (j *SnapshotPruneJob) Schedule() string {
	return j.schedule
}

// Run deletes snapshots whose as-of date is before now - retention
func (j *SnapshotPruneJob) Run(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	removed, err := j.pruner.PruneBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}

	if removed > 0 {
		j.logger.WithFields(map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.Format("2006-01-02"),
		}).Info("Snapshot prune completed")
	}

	return nil
}
