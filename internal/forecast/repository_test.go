package forecast

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	// Skip if running in CI without database
	if testing.Short() || os.Getenv("DATABASE_URL") == "" {
		t.Skip("skipping integration test")
	}

	pool, err := pgxpool.New(context.Background(), os.Getenv("DATABASE_URL"))
	require.NoError(t, err, "database connection failed")
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(), `DELETE FROM forecast.predictions WHERE product = 'TEST'`)
	require.NoError(t, err, "forecast.predictions must exist (run migrations)")
	return pool
}

func d(s string) time.Time {
	t, _ := time.Parse(contracts.DateLayout, s)
	return t
}

func TestRepository_SnapshotRoundTrip(t *testing.T) {
	repo := NewRepository(testPool(t))
	ctx := context.Background()

	old := []contracts.ForecastPoint{
		{CurrentDate: d("2025-01-07"), PredictedDate: d("2025-01-09"), PredictedValue: 500, NDaysAhead: 2},
	}
	latest := []contracts.ForecastPoint{
		{CurrentDate: d("2025-01-08"), PredictedDate: d("2025-01-10"), PredictedValue: 120, NDaysAhead: 2},
		{CurrentDate: d("2025-01-08"), PredictedDate: d("2025-01-09"), PredictedValue: 100, NDaysAhead: 1},
	}

	n, err := repo.SaveSnapshot(ctx, "TEST", old)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	_, err = repo.SaveSnapshot(ctx, "TEST", latest)
	require.NoError(t, err)

	points, err := repo.GetForecasts(ctx, "TEST")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, d("2025-01-09"), points[0].PredictedDate)
	assert.Equal(t, 100.0, points[0].PredictedValue)

	infos, err := repo.ListSnapshots(ctx, "TEST", 10)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, 2, infos[0].Rows)

	removed, err := repo.PruneBefore(ctx, d("2025-01-08"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, removed, int64(1))

	// 최신 스냅샷은 cutoff 와 무관하게 남음
	_, err = repo.PruneBefore(ctx, d("2030-01-01"))
	require.NoError(t, err)
	points, err = repo.GetForecasts(ctx, "TEST")
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestRepository_SaveEmpty(t *testing.T) {
	repo := NewRepository(nil)

	n, err := repo.SaveSnapshot(context.Background(), "TEST", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
