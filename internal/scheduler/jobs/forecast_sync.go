package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

// BoardRefresher procurement.Service 중 sync 에 필요한 부분
type BoardRefresher interface {
	Products() []string
	Refresh(ctx context.Context, product string) (int, error)
	Board(ctx context.Context, product string, rows int) (*contracts.ProcurementBoard, error)
}

// ForecastSyncJob pulls forecast snapshots for every configured product
// and warms the board cache with the new snapshot
type ForecastSyncJob struct {
	service  BoardRefresher
	schedule string
	logger   *logger.Logger
}

// NewForecastSyncJob creates a new forecast sync job
func NewForecastSyncJob(service BoardRefresher, schedule string, log *logger.Logger) *ForecastSyncJob {
	return &ForecastSyncJob{
		service:  service,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *ForecastSyncJob) Name() string {
	return "forecast_sync"
}

// Schedule returns the cron schedule (SYNC_SCHEDULE)
func (j *ForecastSyncJob) Schedule() string {
	return j.schedule
}

// Run executes the sync; one failing product does not stop the others
func (j *ForecastSyncJob) Run(ctx context.Context) error {
	products := j.service.Products()
	j.logger.WithField("products", products).Info("Starting scheduled forecast sync")

	var errs []error
	total := 0

	for _, product := range products {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		saved, err := j.service.Refresh(ctx, product)
		if err != nil {
			j.logger.WithError(err).WithField("product", product).Warn("Forecast sync failed")
			errs = append(errs, fmt.Errorf("%s: %w", product, err))
			continue
		}
		total += saved

		// 캐시 워밍 (실패해도 sync 는 성공)
		if board, err := j.service.Board(ctx, product, 0); err != nil {
			j.logger.WithError(err).WithField("product", product).Warn("Board warm-up failed")
		} else {
			j.logger.WithFields(map[string]interface{}{
				"product":   product,
				"saved":     saved,
				"nominated": board.NominatedCount(),
			}).Info("Product synced")
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"products": len(products),
		"saved":    total,
		"failed":   len(errs),
	}).Info("Forecast sync completed")

	return errors.Join(errs...)
}
