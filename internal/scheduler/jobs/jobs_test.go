package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/boardcache"
	"github.com/wonny/bunkerwatch/backend/internal/contracts"
	"github.com/wonny/bunkerwatch/backend/pkg/logger"
)

type fakeRefresher struct {
	products  []string
	failing   map[string]error
	refreshed []string
	boards    []string
}

func (f *fakeRefresher) Products() []string { return f.products }

func (f *fakeRefresher) Refresh(ctx context.Context, product string) (int, error) {
	if err := f.failing[product]; err != nil {
		return 0, err
	}
	f.refreshed = append(f.refreshed, product)
	return 10, nil
}

func (f *fakeRefresher) Board(ctx context.Context, product string, rows int) (*contracts.ProcurementBoard, error) {
	f.boards = append(f.boards, product)
	return &contracts.ProcurementBoard{Product: product}, nil
}

func TestForecastSyncJob_ContinuesPastFailures(t *testing.T) {
	upstreamDown := errors.New("upstream down")
	svc := &fakeRefresher{
		products: []string{"VLSFO", "HSFO", "MGO"},
		failing:  map[string]error{"HSFO": upstreamDown},
	}
	job := NewForecastSyncJob(svc, "0 0 */6 * * *", logger.Nop())

	err := job.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, upstreamDown)
	assert.Contains(t, err.Error(), "HSFO")
	assert.Equal(t, []string{"VLSFO", "MGO"}, svc.refreshed)
	assert.Equal(t, []string{"VLSFO", "MGO"}, svc.boards)
	assert.Equal(t, "forecast_sync", job.Name())
	assert.Equal(t, "0 0 */6 * * *", job.Schedule())
}

func TestForecastSyncJob_CancelledContext(t *testing.T) {
	svc := &fakeRefresher{products: []string{"VLSFO"}}
	job := NewForecastSyncJob(svc, "@hourly", logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := job.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, svc.refreshed)
}

type fakePruner struct {
	cutoff  time.Time
	removed int64
	err     error
}

func (f *fakePruner) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.removed, f.err
}

func TestSnapshotPruneJob(t *testing.T) {
	pruner := &fakePruner{removed: 42}
	job := NewSnapshotPruneJob(pruner, 30, "0 30 3 * * *", logger.Nop())
	job.now = func() time.Time { return time.Date(2025, 3, 1, 3, 30, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, time.Date(2025, 1, 30, 3, 30, 0, 0, time.UTC), pruner.cutoff)
}

func TestSnapshotPruneJob_Error(t *testing.T) {
	job := NewSnapshotPruneJob(&fakePruner{err: errors.New("db down")}, 30, "@daily", logger.Nop())

	err := job.Run(context.Background())
	assert.ErrorContains(t, err, "prune snapshots")
}

func TestCacheCleanupJob(t *testing.T) {
	cache := boardcache.NewMemoryCache(logger.Nop())
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "expired", 1, -time.Second))
	require.NoError(t, cache.Set(ctx, "fresh", 2, time.Hour))

	job := NewCacheCleanupJob(cache, logger.Nop())
	require.NoError(t, job.Run(ctx))

	stats := cache.Stats()
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, 1, stats.FreshCount)
	assert.Equal(t, "cache_cleanup", job.Name())
}
