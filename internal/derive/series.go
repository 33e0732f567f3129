package derive

import (
	"math"
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

// CountPoint is one bucket day of the session-count series.
type CountPoint struct {
	Day   time.Time
	Count int
}

// DifficultyPoint is one bucket day of the average-difficulty series. A day
// with no sessions has Valid false and must be rendered as a gap, never as
// zero.
type DifficultyPoint struct {
	Day   time.Time
	Avg   float64 // mean difficulty, rounded to one decimal
	Valid bool
}

// SubjectCount is one slice of the subject distribution.
type SubjectCount struct {
	Subject string
	Count   int
}

// Window returns windowDays consecutive calendar days ending at today,
// oldest first.
func Window(today time.Time, windowDays int) []time.Time {
	end := dates.Midnight(today)
	days := make([]time.Time, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		days = append(days, end.AddDate(0, 0, -i))
	}
	return days
}

// SessionCounts buckets sessions into the trailing window and counts how
// many fall on each day.
func SessionCounts(sessions []domain.StudySession, today time.Time, windowDays int) []CountPoint {
	points := make([]CountPoint, 0, windowDays)
	for _, day := range Window(today, windowDays) {
		n := 0
		for _, s := range sessions {
			if dates.SameDay(s.Date, day) {
				n++
			}
		}
		points = append(points, CountPoint{Day: day, Count: n})
	}
	return points
}

// DifficultyAverages computes the mean self-rated difficulty per bucket day,
// rounded to one decimal place. Empty days produce an invalid point rather
// than an average of zero.
func DifficultyAverages(sessions []domain.StudySession, today time.Time, windowDays int) []DifficultyPoint {
	points := make([]DifficultyPoint, 0, windowDays)
	for _, day := range Window(today, windowDays) {
		sum, n := 0, 0
		for _, s := range sessions {
			if dates.SameDay(s.Date, day) {
				sum += s.Difficulty
				n++
			}
		}
		p := DifficultyPoint{Day: day}
		if n > 0 {
			p.Avg = math.Round(float64(sum)/float64(n)*10) / 10
			p.Valid = true
		}
		points = append(points, p)
	}
	return points
}

// SubjectDistribution tallies sessions per distinct subject over the whole
// history, independent of the chart window. Subjects appear in the order
// they were first logged.
func SubjectDistribution(sessions []domain.StudySession) []SubjectCount {
	index := make(map[string]int)
	var counts []SubjectCount
	for _, s := range sessions {
		i, ok := index[s.Subject]
		if !ok {
			index[s.Subject] = len(counts)
			counts = append(counts, SubjectCount{Subject: s.Subject})
			i = len(counts) - 1
		}
		counts[i].Count++
	}
	return counts
}
