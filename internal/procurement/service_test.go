package procurement

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

type fakeSource struct {
	points map[string][]contracts.ForecastPoint
	err    error
	calls  int
}

func (f *fakeSource) GetForecasts(ctx context.Context, product string) ([]contracts.ForecastPoint, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.points[product], nil
}

type fakeStore struct {
	saved map[string][]contracts.ForecastPoint
}

func (s *fakeStore) SaveSnapshot(ctx context.Context, product string, points []contracts.ForecastPoint) (int, error) {
	if s.saved == nil {
		s.saved = make(map[string][]contracts.ForecastPoint)
	}
	s.saved[product] = points
	return len(points), nil
}

type memoryCache struct {
	data map[string][]byte
	sets int
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if c.data == nil {
		c.data = make(map[string][]byte)
	}
	c.data[key] = raw
	c.sets++
	return nil
}

func samplePoints(t *testing.T) []contracts.ForecastPoint {
	return []contracts.ForecastPoint{
		point(t, "2025-01-08", "2025-01-09", 610, 1),
		point(t, "2025-01-08", "2025-01-10", 600, 2),
		point(t, "2025-01-08", "2025-01-13", 590, 5),
	}
}

func TestService_BoardCachesBySnapshot(t *testing.T) {
	source := &fakeSource{points: map[string][]contracts.ForecastPoint{"VLSFO": samplePoints(t)}}
	cache := &memoryCache{}
	svc := NewService(Config{Products: []string{"VLSFO"}}, source, nil, nil, cache, zerolog.Nop())

	calls := 0
	svc.now = func() time.Time {
		calls++
		return time.Date(2025, 1, 8, 9, 0, calls, 0, time.UTC)
	}

	first, err := svc.Board(context.Background(), " vlsfo ", 0)
	require.NoError(t, err)
	second, err := svc.Board(context.Background(), "VLSFO", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.True(t, first.GeneratedAt.Equal(second.GeneratedAt))
	assert.Equal(t, first.Summary, second.Summary)
	assert.Len(t, first.Summary, 5)

	// 스냅샷이 바뀌면 새로 계산
	source.points["VLSFO"] = append(samplePoints(t), point(t, "2025-01-08", "2025-01-14", 580, 6))
	third, err := svc.Board(context.Background(), "VLSFO", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, cache.sets)
	assert.Len(t, third.Summary, 6)
}

func TestService_EmptySnapshotNotCached(t *testing.T) {
	source := &fakeSource{points: map[string][]contracts.ForecastPoint{}}
	cache := &memoryCache{}
	svc := NewService(Config{MaxRows: 5}, source, nil, nil, cache, zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2025, 1, 8, 12, 0, 0, 0, time.UTC) }

	board, err := svc.Board(context.Background(), "MGO", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, cache.sets)
	assert.Equal(t, "2025-01-08", board.ReferenceDate)
	require.Len(t, board.Summary, 5)
	for _, r := range board.Summary {
		assert.Equal(t, contracts.StatusWaiting, r.Status)
	}
}

func TestService_UnknownProduct(t *testing.T) {
	svc := NewService(Config{Products: []string{"VLSFO"}}, &fakeSource{}, nil, nil, nil, zerolog.Nop())

	_, err := svc.Board(context.Background(), "LNG", 0)
	assert.True(t, errors.Is(err, ErrUnknownProduct))

	_, err = svc.Board(context.Background(), "  ", 0)
	assert.True(t, errors.Is(err, ErrUnknownProduct))
}

func TestService_SourceError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(Config{}, &fakeSource{err: boom}, nil, nil, nil, zerolog.Nop())

	_, err := svc.Board(context.Background(), "VLSFO", 0)
	assert.ErrorIs(t, err, boom)
}

func TestService_Refresh(t *testing.T) {
	upstream := &fakeSource{points: map[string][]contracts.ForecastPoint{"HSFO": samplePoints(t)}}
	store := &fakeStore{}
	svc := NewService(Config{Products: []string{"HSFO"}}, &fakeSource{}, upstream, store, nil, zerolog.Nop())

	saved, err := svc.Refresh(context.Background(), "hsfo")
	require.NoError(t, err)
	assert.Equal(t, 3, saved)
	assert.Len(t, store.saved["HSFO"], 3)
}

func TestService_RefreshNotConfigured(t *testing.T) {
	svc := NewService(Config{}, &fakeSource{}, nil, nil, nil, zerolog.Nop())

	_, err := svc.Refresh(context.Background(), "HSFO")
	assert.ErrorIs(t, err, ErrRefreshUnavailable)
}

func TestSnapshotHash(t *testing.T) {
	a := samplePoints(t)
	b := samplePoints(t)
	assert.Equal(t, SnapshotHash(a), SnapshotHash(b))

	b[1].PredictedValue = 600.01
	assert.NotEqual(t, SnapshotHash(a), SnapshotHash(b))
	assert.Len(t, SnapshotHash(nil), 16)
}

func TestService_Catalog(t *testing.T) {
	svc := NewService(Config{
		Products: []string{"VLSFO", "MGO"},
		Catalog:  []contracts.ProductInfo{{Code: "VLSFO", Name: "Very Low Sulphur Fuel Oil", Unit: "USD/MT"}},
	}, &fakeSource{}, nil, nil, nil, zerolog.Nop())

	assert.Equal(t, []contracts.ProductInfo{
		{Code: "VLSFO", Name: "Very Low Sulphur Fuel Oil", Unit: "USD/MT"},
		{Code: "MGO"},
	}, svc.Catalog())
	assert.Equal(t, []string{"VLSFO", "MGO"}, svc.Products())
}
