package procurement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

func TestGenerateSchedule_SkipsWeekendForDON(t *testing.T) {
	rows := GenerateSchedule(day(t, "2025-01-08"), 3)
	require.Len(t, rows, 3)

	want := []struct{ eta, don string }{
		{"2025-01-22", "2025-01-09"},
		{"2025-01-23", "2025-01-10"},
		{"2025-01-24", "2025-01-13"}, // 01-11/01-12 주말
	}
	for i, w := range want {
		assert.Equal(t, w.eta, rows[i].ETADate.Format(contracts.DateLayout), "row %d eta", i)
		assert.Equal(t, w.don, rows[i].DONDate.Format(contracts.DateLayout), "row %d don", i)
		assert.Equal(t, i, rows[i].SequenceIndex)
	}
}

func TestGenerateSchedule_Empty(t *testing.T) {
	assert.Empty(t, GenerateSchedule(day(t, "2025-01-08"), 0))
	assert.Empty(t, GenerateSchedule(day(t, "2025-01-08"), -3))
}

func TestGenerateSchedule_FridayReference(t *testing.T) {
	// ref+1 = 토요일 → 첫 DON 은 월요일
	rows := GenerateSchedule(day(t, "2025-01-10"), 2)
	require.Len(t, rows, 2)

	assert.Equal(t, "2025-01-13", rows[0].DONDate.Format(contracts.DateLayout))
	assert.Equal(t, "2025-01-14", rows[1].DONDate.Format(contracts.DateLayout))
	assert.Equal(t, "2025-01-24", rows[0].ETADate.Format(contracts.DateLayout))
}

func TestGenerateSchedule_Properties(t *testing.T) {
	start := day(t, "2025-03-01")
	for offset := 0; offset < 21; offset++ {
		ref := start.AddDate(0, 0, offset)
		for _, n := range []int{1, 7, MaxRows} {
			rows := GenerateSchedule(ref, n)
			require.Len(t, rows, n)

			for i, r := range rows {
				assert.Equal(t, ref.AddDate(0, 0, 1+ETALeadDays+i), r.ETADate)
				assert.NotEqual(t, time.Saturday, r.DONDate.Weekday())
				assert.NotEqual(t, time.Sunday, r.DONDate.Weekday())
				assert.True(t, r.DONDate.After(ref))
				if i > 0 {
					assert.True(t, r.DONDate.After(rows[i-1].DONDate), "DON must strictly increase")
					assert.Greater(t, r.SequenceIndex, rows[i-1].SequenceIndex)
				}
			}
		}
	}
}

func TestGenerateSchedule_NormalizesTimeOfDay(t *testing.T) {
	ref := time.Date(2025, 1, 8, 17, 45, 0, 0, time.UTC)
	rows := GenerateSchedule(ref, 1)

	assert.Equal(t, day(t, "2025-01-09"), rows[0].DONDate)
	assert.Equal(t, day(t, "2025-01-22"), rows[0].ETADate)
}

func TestAddBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{"zero", "2025-01-08", 0, "2025-01-08"},
		{"midweek", "2025-01-08", 2, "2025-01-10"},
		{"over weekend", "2025-01-10", 1, "2025-01-13"},
		{"from saturday", "2025-01-11", 1, "2025-01-13"},
		{"two weeks", "2025-01-06", 10, "2025-01-20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddBusinessDays(day(t, tt.start), tt.n)
			assert.Equal(t, tt.want, got.Format(contracts.DateLayout))
		})
	}
}

func TestRowCount(t *testing.T) {
	tests := []struct {
		limit, horizon, want int
	}{
		{20, 30, 20},
		{20, 5, 5},
		{0, 14, 14},
		{50, 40, MaxRows},
		{10, 0, 0},
		{10, -1, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RowCount(tt.limit, tt.horizon), "limit=%d horizon=%d", tt.limit, tt.horizon)
	}
}
