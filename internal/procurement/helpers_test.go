package procurement

import (
	"testing"
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(contracts.DateLayout, s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func point(t *testing.T, current, predicted string, value float64, ahead int) contracts.ForecastPoint {
	t.Helper()
	return contracts.ForecastPoint{
		CurrentDate:    day(t, current),
		PredictedDate:  day(t, predicted),
		PredictedValue: value,
		NDaysAhead:     ahead,
	}
}

func f(v float64) *float64 { return &v }
