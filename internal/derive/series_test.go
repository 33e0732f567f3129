package derive

import (
	"math"
	"testing"
	"time"

	"studytrack/internal/domain"
)

var seriesToday = time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

func rated(subject string, daysAgo, difficulty int) domain.StudySession {
	return domain.StudySession{
		Subject:    subject,
		Chapter:    "Ch1",
		Difficulty: difficulty,
		Date:       seriesToday.AddDate(0, 0, -daysAgo),
	}
}

func TestWindow(t *testing.T) {
	days := Window(seriesToday, WindowDays)
	if len(days) != WindowDays {
		t.Fatalf("Expected %d days, got %d", WindowDays, len(days))
	}
	if !days[0].Equal(seriesToday.AddDate(0, 0, -6)) {
		t.Errorf("Expected the window to start six days back, got %v", days[0])
	}
	if !days[len(days)-1].Equal(seriesToday) {
		t.Errorf("Expected the window to end today, got %v", days[len(days)-1])
	}
	for i := 1; i < len(days); i++ {
		if !days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			t.Errorf("Window is not consecutive at position %d", i)
		}
	}
}

func TestSessionCounts(t *testing.T) {
	sessions := []domain.StudySession{
		rated("Maths", 0, 5),
		rated("Maths", 0, 7),
		rated("Physics", 3, 4),
		rated("History", 9, 2), // outside the window
	}
	points := SessionCounts(sessions, seriesToday, WindowDays)
	if len(points) != WindowDays {
		t.Fatalf("Expected %d points, got %d", WindowDays, len(points))
	}
	expected := []int{0, 0, 0, 1, 0, 0, 2} // oldest first
	for i, p := range points {
		if p.Count != expected[i] {
			t.Errorf("Day %d: count = %d, expected %d", i, p.Count, expected[i])
		}
	}
}

func TestDifficultyAverages(t *testing.T) {
	sessions := []domain.StudySession{
		rated("Maths", 0, 5),
		rated("Maths", 0, 6), // today's mean: 5.5
		rated("Physics", 3, 7),
	}
	points := DifficultyAverages(sessions, seriesToday, WindowDays)
	if len(points) != WindowDays {
		t.Fatalf("Expected %d points, got %d", WindowDays, len(points))
	}

	// Offsets 0 and 3 map to positions 6 and 3 (oldest first).
	for i, p := range points {
		switch i {
		case 3:
			if !p.Valid || p.Avg != 7.0 {
				t.Errorf("Day %d: expected 7.0, got %+v", i, p)
			}
		case 6:
			if !p.Valid || p.Avg != 5.5 {
				t.Errorf("Day %d: expected 5.5, got %+v", i, p)
			}
		default:
			if p.Valid {
				t.Errorf("Day %d: expected a gap, got value %v", i, p.Avg)
			}
			if p.Avg != 0 {
				t.Errorf("Day %d: gap should carry no value, got %v", i, p.Avg)
			}
		}
	}
}

func TestDifficultyAveragesRounding(t *testing.T) {
	sessions := []domain.StudySession{
		rated("Maths", 0, 5),
		rated("Maths", 0, 6),
		rated("Maths", 0, 6), // mean 5.666... -> 5.7
	}
	points := DifficultyAverages(sessions, seriesToday, WindowDays)
	got := points[len(points)-1]
	if !got.Valid {
		t.Fatal("Expected a value for today")
	}
	if math.Abs(got.Avg-5.7) > 1e-9 {
		t.Errorf("Expected 5.7 after rounding to one decimal, got %v", got.Avg)
	}
}

func TestSubjectDistribution(t *testing.T) {
	sessions := []domain.StudySession{
		rated("Maths", 0, 5),
		rated("Physics", 40, 6), // far outside the chart window, still counted
		rated("Maths", 2, 7),
		rated("History", 1, 3),
	}
	counts := SubjectDistribution(sessions)
	if len(counts) != 3 {
		t.Fatalf("Expected 3 subjects, got %d", len(counts))
	}

	expected := []SubjectCount{
		{Subject: "Maths", Count: 2},
		{Subject: "Physics", Count: 1},
		{Subject: "History", Count: 1},
	}
	total := 0
	for i, c := range counts {
		if c != expected[i] {
			t.Errorf("Position %d: expected %+v, got %+v", i, expected[i], c)
		}
		total += c.Count
	}
	if total != len(sessions) {
		t.Errorf("Per-subject counts sum to %d, expected %d", total, len(sessions))
	}
}

func TestSubjectDistributionEmpty(t *testing.T) {
	if counts := SubjectDistribution(nil); len(counts) != 0 {
		t.Errorf("Expected no subjects for empty history, got %d", len(counts))
	}
}
