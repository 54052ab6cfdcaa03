package procurement

import (
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// BoardOptions 보드 생성 옵션
type BoardOptions struct {
	MaxRows       int       // 0 이면 MaxRows(20)
	ReferenceDate time.Time // 예측 집합이 비었을 때만 사용
	GeneratedAt   time.Time
}

// BuildBoard 예측 집합 → 요약/상세 테이블
// 순수 함수: 입력을 수정하지 않고 매번 새 구조를 만든다
func BuildBoard(product string, points []contracts.ForecastPoint, opts BoardOptions) contracts.ProcurementBoard {
	ref, ok := contracts.LatestCurrentDate(points)
	horizon := contracts.MaxHorizon(points)
	if !ok {
		// 데이터 없음: 기준일은 호출자 지정, 행은 상한까지 (전부 Waiting)
		ref = opts.ReferenceDate
		horizon = MaxRows
	}

	rowCount := 0
	if !ref.IsZero() {
		rowCount = RowCount(opts.MaxRows, horizon)
	}

	rows := GenerateSchedule(ref, rowCount)
	table := BuildPriceTable(points, rows)
	scored := Score(table)

	board := contracts.ProcurementBoard{
		Product:     product,
		Columns:     make([]string, len(table.Columns)),
		Summary:     make([]contracts.SummaryRow, len(table.Rows)),
		Detail:      make([]contracts.DetailRow, len(table.Rows)),
		GeneratedAt: opts.GeneratedAt,
	}
	if !ref.IsZero() {
		board.ReferenceDate = contracts.TruncateDay(ref).Format(contracts.DateLayout)
	}

	for j, c := range table.Columns {
		board.Columns[j] = c.Label
	}

	for i, r := range table.Rows {
		eta := r.Row.ETADate.Format(contracts.DateLayout)
		don := r.Row.DONDate.Format(contracts.DateLayout)

		board.Summary[i] = contracts.SummaryRow{ETA: eta, DON: don, Status: scored.Statuses[i]}
		board.Detail[i] = contracts.DetailRow{
			ETA:     eta,
			DON:     don,
			Prices:  r.Prices,
			Classes: scored.Classes[i],
		}
	}

	return board
}
