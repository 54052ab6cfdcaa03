package procurement

import (
	"time"

	"github.com/wonny/bunkerwatch/backend/internal/contracts"
)

const (
	// MaxRows DON 윈도우 행 상한
	MaxRows = 20
	// ETALeadDays 윈도우 시작일(기준일+1) → ETA 간격 (달력일)
	ETALeadDays = 13
)

// RowCount 행 수 = min(limit, maxHorizon), 음수는 0
func RowCount(limit, maxHorizon int) int {
	if limit <= 0 || limit > MaxRows {
		limit = MaxRows
	}
	n := limit
	if maxHorizon < n {
		n = maxHorizon
	}
	if n < 0 {
		return 0
	}
	return n
}

// GenerateSchedule 기준일로부터 rowCount개의 DON 윈도우 생성
// ETA는 달력일, DON은 영업일(토/일 제외) 단위로 한 칸씩 전진
func GenerateSchedule(ref time.Time, rowCount int) []contracts.ScheduleRow {
	if rowCount <= 0 {
		return []contracts.ScheduleRow{}
	}

	start := contracts.TruncateDay(ref).AddDate(0, 0, 1)
	rows := make([]contracts.ScheduleRow, 0, rowCount)

	// 시작일이 주말이면 월요일로
	don := nextWeekday(start)

	for i := 0; i < rowCount; i++ {
		if i > 0 {
			don = AddBusinessDays(don, 1)
		}
		rows = append(rows, contracts.ScheduleRow{
			ETADate:       start.AddDate(0, 0, ETALeadDays+i),
			DONDate:       don,
			SequenceIndex: i,
		})
	}

	return rows
}

// AddBusinessDays t에서 n 영업일 전진 (한 칸씩 걸으며 평일 착지만 카운트)
func AddBusinessDays(t time.Time, n int) time.Time {
	for n > 0 {
		t = t.AddDate(0, 0, 1)
		if isWeekday(t) {
			n--
		}
	}
	return t
}

func nextWeekday(t time.Time) time.Time {
	for !isWeekday(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func isWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
