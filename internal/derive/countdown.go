package derive

import (
	"time"

	"studytrack/internal/dates"
)

// CountdownTier labels how close the exam is.
type CountdownTier string

const (
	TierToday   CountdownTier = "today"
	TierWarning CountdownTier = "warning"
	TierNormal  CountdownTier = "normal"
)

// Countdown is the exam countdown view. Set is false when no exam date is
// configured.
type Countdown struct {
	Set           bool
	DaysRemaining int
	Tier          CountdownTier
}

// ExamCountdown measures the days remaining until the exam, rounding partial
// days up against the raw current time. Unlike the rest of the dashboard
// this does not midnight-normalize, so the count drops during the day as the
// deadline nears. Past dates land in the warning tier with a negative
// remainder.
func ExamCountdown(examDate *time.Time, now time.Time) Countdown {
	if examDate == nil {
		return Countdown{}
	}
	days := dates.DaysUntilCeil(now, *examDate)
	tier := TierNormal
	switch {
	case days == 0:
		tier = TierToday
	case days <= examWarningDays:
		tier = TierWarning
	}
	return Countdown{Set: true, DaysRemaining: days, Tier: tier}
}
