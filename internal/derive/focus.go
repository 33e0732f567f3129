package derive

import (
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

// Focus is the same-day summary shown at the top of the dashboard.
type Focus struct {
	SessionsToday   int
	RecallsDueToday int
}

// TodayFocus counts sessions logged today and sessions hitting the recall
// boundary day exactly. RecallsDueToday deliberately differs from the queue
// in RecallQueue: it is a raw count over every session whose age is exactly
// ten days, with no per-topic deduplication and no >= comparison.
func TodayFocus(sessions []domain.StudySession, today time.Time) Focus {
	var f Focus
	for _, s := range sessions {
		if dates.SameDay(s.Date, today) {
			f.SessionsToday++
		}
		if dates.DaysBetween(s.Date, today) == recallDueDays {
			f.RecallsDueToday++
		}
	}
	return f
}
