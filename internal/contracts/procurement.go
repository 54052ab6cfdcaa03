package contracts

import "time"

// DateLayout 모든 날짜 직렬화 포맷 (ISO date)
const DateLayout = "2006-01-02"

// ForecastPoint 백엔드에서 받은 단일 가격 예측
type ForecastPoint struct {
	CurrentDate    time.Time `json:"current_date"`   // 예측 기준일
	PredictedDate  time.Time `json:"predicted_date"` // 예측 대상일
	PredictedValue float64   `json:"predicted_value"`
	NDaysAhead     int       `json:"n_days_ahead"`
}

// DateColumn 가격 그리드의 열 (하루)
type DateColumn struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// ScheduleRow 후보 DON 윈도우
type ScheduleRow struct {
	ETADate       time.Time `json:"eta_date"`
	DONDate       time.Time `json:"don_date"`
	SequenceIndex int       `json:"sequence_index"`
}

// PricedRow 행과 열 가격 (Prices[j] ↔ Columns[j], nil = 해당 없음)
type PricedRow struct {
	Row    ScheduleRow `json:"row"`
	Prices []*float64  `json:"prices"`
}

// PriceTable 가격 그리드
type PriceTable struct {
	Columns []DateColumn `json:"columns"`
	Rows    []PricedRow  `json:"rows"`
}

// RowStatus 행 추천 라벨
type RowStatus string

const (
	StatusNominate RowStatus = "Nominate"
	StatusWaiting  RowStatus = "Waiting"
)

// CellClass 셀 표시 분류
type CellClass string

const (
	CellNominate CellClass = "nominate"
	CellWaiting  CellClass = "waiting"
	CellNaN      CellClass = "nan"
)

// SummaryRow 요약 테이블 행
type SummaryRow struct {
	ETA    string    `json:"eta"`
	DON    string    `json:"don"`
	Status RowStatus `json:"status"`
}

// DetailRow 상세 테이블 행
type DetailRow struct {
	ETA     string      `json:"eta"`
	DON     string      `json:"don"`
	Prices  []*float64  `json:"prices"`
	Classes []CellClass `json:"classes"`
}

// ProcurementBoard 제품별 구매 윈도우 보드
type ProcurementBoard struct {
	Product       string       `json:"product"`
	ReferenceDate string       `json:"reference_date"`
	Columns       []string     `json:"columns"`
	Summary       []SummaryRow `json:"summary"`
	Detail        []DetailRow  `json:"detail"`
	GeneratedAt   time.Time    `json:"generated_at"`
}

// NominatedCount Nominate 행 수
func (b *ProcurementBoard) NominatedCount() int {
	n := 0
	for _, r := range b.Summary {
		if r.Status == StatusNominate {
			n++
		}
	}
	return n
}

// MaxHorizon 예측 집합의 최대 n_days_ahead
func MaxHorizon(points []ForecastPoint) int {
	max := 0
	for _, p := range points {
		if p.NDaysAhead > max {
			max = p.NDaysAhead
		}
	}
	return max
}

// LatestCurrentDate 예측 집합의 가장 최근 기준일 (없으면 false)
func LatestCurrentDate(points []ForecastPoint) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, p := range points {
		if !found || p.CurrentDate.After(latest) {
			latest = p.CurrentDate
			found = true
		}
	}
	return latest, found
}

// TruncateDay 시각을 UTC 자정으로 정규화
func TruncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ProductInfo 제품 표시 정보 (카탈로그)
type ProductInfo struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
	Unit string `json:"unit,omitempty"`
}
