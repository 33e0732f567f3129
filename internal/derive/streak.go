package derive

import (
	"sort"
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

// Streak counts consecutive studied calendar days by offset-matching: the
// distinct session days are walked newest-first, and each must sit exactly
// streak days before today for the count to grow. The first mismatch stops
// the walk, so any gap ends the streak. A history whose most recent day is
// not today yields 0, because offset 0 expects today itself.
func Streak(sessions []domain.StudySession, today time.Time) int {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, s := range sessions {
		d := dates.Midnight(s.Date)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	for _, d := range days {
		if dates.DaysBetween(d, today) != streak {
			break
		}
		streak++
	}
	return streak
}
