package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// Repository forecast 스냅샷 저장소
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository 새 저장소 생성
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SnapshotInfo 제품별 스냅샷 메타
type SnapshotInfo struct {
	Product   string    `json:"product"`
	AsOfDate  time.Time `json:"as_of_date"`
	Rows      int       `json:"rows"`
	FetchedAt time.Time `json:"fetched_at"`
}

// SaveSnapshot 예측 일괄 저장 (동일 키는 값 갱신)
func (r *Repository) SaveSnapshot(ctx context.Context, product string, points []contracts.ForecastPoint) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO forecast.predictions
			(product, as_of_date, predicted_date, n_days_ahead, predicted_value, fetched_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (product, as_of_date, predicted_date, n_days_ahead) DO UPDATE SET
			predicted_value = EXCLUDED.predicted_value,
			fetched_at = EXCLUDED.fetched_at`

	for _, p := range points {
		batch.Queue(query, product, p.CurrentDate, p.PredictedDate, p.NDaysAhead, p.PredictedValue)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("upsert prediction: %w", err)
		}
	}

	return len(points), nil
}

// GetForecasts 가장 최근 기준일 스냅샷 조회 (procurement.ForecastSource 구현)
func (r *Repository) GetForecasts(ctx context.Context, product string) ([]contracts.ForecastPoint, error) {
	query := `
		SELECT as_of_date, predicted_date, predicted_value, n_days_ahead
		FROM forecast.predictions
		WHERE product = $1
		  AND as_of_date = (SELECT max(as_of_date) FROM forecast.predictions WHERE product = $1)
		ORDER BY predicted_date, n_days_ahead`

	rows, err := r.pool.Query(ctx, query, product)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()

	var points []contracts.ForecastPoint
	for rows.Next() {
		var p contracts.ForecastPoint
		if err := rows.Scan(&p.CurrentDate, &p.PredictedDate, &p.PredictedValue, &p.NDaysAhead); err != nil {
			return nil, fmt.Errorf("scan prediction: %w", err)
		}
		p.CurrentDate = contracts.TruncateDay(p.CurrentDate)
		p.PredictedDate = contracts.TruncateDay(p.PredictedDate)
		points = append(points, p)
	}

	return points, rows.Err()
}

// ListSnapshots 제품별 최근 스냅샷 목록
func (r *Repository) ListSnapshots(ctx context.Context, product string, limit int) ([]SnapshotInfo, error) {
	query := `
		SELECT product, as_of_date, count(*), max(fetched_at)
		FROM forecast.predictions
		WHERE product = $1
		GROUP BY product, as_of_date
		ORDER BY as_of_date DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, product, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var s SnapshotInfo
		if err := rows.Scan(&s.Product, &s.AsOfDate, &s.Rows, &s.FetchedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		infos = append(infos, s)
	}

	return infos, rows.Err()
}

// PruneBefore 기준일이 cutoff 이전인 예측 삭제
func (r *Repository) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	// 제품별 최신 스냅샷은 cutoff 이전이어도 유지
	query := `
		DELETE FROM forecast.predictions p
		WHERE p.as_of_date < $1
		  AND p.as_of_date < (
			SELECT MAX(l.as_of_date) FROM forecast.predictions l
			WHERE l.product = p.product
		  )`

	tag, err := r.pool.Exec(ctx, query, contracts.TruncateDay(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune predictions: %w", err)
	}
	return tag.RowsAffected(), nil
}
