package web

import (
	"html/template"
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/derive"
	"studytrack/internal/domain"
)

var templateFuncs = template.FuncMap{
	"day": dates.FormatDay,
}

// statsView is everything above the charts: streak, focus, recall queue and
// countdown. Actions that append a session re-render this block as one HTMX
// fragment.
type statsView struct {
	Streak    int
	Focus     derive.Focus
	Queue     []derive.RecallItem
	Countdown derive.Countdown
	ExamDate  string
	Today     string
}

type dashboardView struct {
	Stats      statsView
	SourceList sourceListView
}

type historyView struct {
	Sessions []domain.StudySession
}

// buildStats loads the user's snapshot and recomputes every derived view.
// Each computation is pure and independent, so this is safe to call after
// every append.
func (s *Server) buildStats(userID string) (statsView, error) {
	sessions, err := s.db.GetSessionsByUser(userID)
	if err != nil {
		return statsView{}, err
	}
	examDate, err := s.db.ExamDate(userID)
	if err != nil {
		return statsView{}, err
	}

	now := time.Now().UTC()
	today := dates.Midnight(now)

	view := statsView{
		Streak:    derive.Streak(sessions, today),
		Focus:     derive.TodayFocus(sessions, today),
		Queue:     derive.RecallQueue(sessions, today),
		Countdown: derive.ExamCountdown(examDate, now),
		Today:     dates.FormatDay(today),
	}
	if examDate != nil {
		view.ExamDate = dates.FormatDay(*examDate)
	}
	return view, nil
}
