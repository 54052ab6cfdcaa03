package procurement

import (
	"math"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

// NominateTolerance 전역 최저가 대비 허용 오차 (1%)
// 이 범위 안의 행은 모두 Nominate
const NominateTolerance = 0.01

// ScoreResult 행 라벨과 셀 분류
type ScoreResult struct {
	Statuses       []contracts.RowStatus
	Classes        [][]contracts.CellClass
	GlobalMin      float64 // 데이터가 없으면 +Inf
	OptimalCeiling float64 // GlobalMin × (1 + NominateTolerance)
}

// rowMin 행의 최저가 (가격이 없으면 +Inf, false)
func rowMin(prices []*float64) (float64, bool) {
	min := math.Inf(1)
	found := false
	for _, p := range prices {
		if p != nil && *p < min {
			min = *p
			found = true
		}
	}
	return min, found
}

// Score 행별 Nominate/Waiting 및 셀별 nominate/waiting/nan 분류
func Score(table contracts.PriceTable) ScoreResult {
	mins := make([]float64, len(table.Rows))
	globalMin := math.Inf(1)
	hasData := false

	for i, r := range table.Rows {
		m, ok := rowMin(r.Prices)
		mins[i] = m
		if ok {
			hasData = true
			if m < globalMin {
				globalMin = m
			}
		}
	}

	threshold := math.Inf(-1)
	if hasData {
		tolerance := globalMin * NominateTolerance
		threshold = globalMin + tolerance
	}

	result := ScoreResult{
		Statuses:       make([]contracts.RowStatus, len(table.Rows)),
		Classes:        make([][]contracts.CellClass, len(table.Rows)),
		GlobalMin:      globalMin,
		OptimalCeiling: threshold,
	}

	for i, r := range table.Rows {
		// +Inf <= threshold 는 항상 false
		if hasData && mins[i] <= threshold {
			result.Statuses[i] = contracts.StatusNominate
		} else {
			result.Statuses[i] = contracts.StatusWaiting
		}

		classes := make([]contracts.CellClass, len(r.Prices))
		for j, p := range r.Prices {
			switch {
			case p == nil:
				classes[j] = contracts.CellNaN
			case *p == mins[i]:
				classes[j] = contracts.CellNominate
			default:
				classes[j] = contracts.CellWaiting
			}
		}
		result.Classes[i] = classes
	}

	return result
}
