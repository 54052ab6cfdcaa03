package procurement

import (
	"sort"
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

const (
	// MaxColumns 가격 열 상한 (가장 이른 날짜부터)
	MaxColumns = 30
	// WindowDays 구매 윈도우 = [DON, DON+WindowDays]
	WindowDays = 7
)

// BuildColumns 예측 대상일의 고유값을 오름차순 정렬 후 앞 30개
func BuildColumns(points []contracts.ForecastPoint) []contracts.DateColumn {
	seen := make(map[time.Time]struct{}, len(points))
	dates := make([]time.Time, 0, len(points))
	for _, p := range points {
		d := contracts.TruncateDay(p.PredictedDate)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) > MaxColumns {
		dates = dates[:MaxColumns]
	}

	columns := make([]contracts.DateColumn, len(dates))
	for i, d := range dates {
		columns[i] = contracts.DateColumn{Date: d, Label: d.Format(contracts.DateLayout)}
	}
	return columns
}

// meanByDate 날짜별 예측값 평균
func meanByDate(points []contracts.ForecastPoint) map[time.Time]float64 {
	sums := make(map[time.Time]float64)
	counts := make(map[time.Time]int)
	for _, p := range points {
		d := contracts.TruncateDay(p.PredictedDate)
		sums[d] += p.PredictedValue
		counts[d]++
	}

	means := make(map[time.Time]float64, len(sums))
	for d, sum := range sums {
		means[d] = sum / float64(counts[d])
	}
	return means
}

// DaysBetween to - from (정수 일)
func DaysBetween(from, to time.Time) int {
	return int(contracts.TruncateDay(to).Sub(contracts.TruncateDay(from)).Hours() / 24)
}

// InWindow 열 날짜가 [DON, DON+7] 안인지
func InWindow(don, column time.Time) bool {
	diff := DaysBetween(don, column)
	return diff >= 0 && diff <= WindowDays
}

// BuildPriceTable 모든 (행, 열) 셀의 가격 채우기
// 윈도우 밖은 데이터 유무와 상관없이 nil
func BuildPriceTable(points []contracts.ForecastPoint, rows []contracts.ScheduleRow) contracts.PriceTable {
	columns := BuildColumns(points)
	means := meanByDate(points)

	priced := make([]contracts.PricedRow, len(rows))
	for i, row := range rows {
		prices := make([]*float64, len(columns))
		for j, col := range columns {
			if !InWindow(row.DONDate, col.Date) {
				continue
			}
			if mean, ok := means[col.Date]; ok {
				v := mean
				prices[j] = &v
			}
		}
		priced[i] = contracts.PricedRow{Row: row, Prices: prices}
	}

	return contracts.PriceTable{Columns: columns, Rows: priced}
}
