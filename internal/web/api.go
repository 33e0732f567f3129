package web

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/derive"
	"studytrack/internal/domain"
)

// series is the wire shape the chart renderer consumes. Values is pointers
// so a day with no sessions serializes as null, which the renderer spans as
// a gap instead of plotting zero.
type series struct {
	Labels []string   `json:"labels"`
	Values []*float64 `json:"values"`
}

// weekdayLabel is the short weekday name for a bucket day.
func weekdayLabel(day time.Time) string {
	return day.Weekday().String()[:3]
}

func (s *Server) loadSnapshot(w http.ResponseWriter, userID string) ([]domain.StudySession, bool) {
	sessions, err := s.db.GetSessionsByUser(userID)
	if err != nil {
		log.Printf("Error loading sessions for series: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return sessions, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding series response: %v", err)
	}
}

// handleSessionSeries serves the daily session-count bar chart data.
func (s *Server) handleSessionSeries(w http.ResponseWriter, r *http.Request, userID string) {
	sessions, ok := s.loadSnapshot(w, userID)
	if !ok {
		return
	}

	today := dates.Midnight(time.Now().UTC())
	points := derive.SessionCounts(sessions, today, derive.WindowDays)

	resp := series{}
	for _, p := range points {
		v := float64(p.Count)
		resp.Labels = append(resp.Labels, weekdayLabel(p.Day))
		resp.Values = append(resp.Values, &v)
	}
	writeJSON(w, resp)
}

// handleDifficultySeries serves the average-difficulty line chart data.
// Empty days come through as nulls, never zeros.
func (s *Server) handleDifficultySeries(w http.ResponseWriter, r *http.Request, userID string) {
	sessions, ok := s.loadSnapshot(w, userID)
	if !ok {
		return
	}

	today := dates.Midnight(time.Now().UTC())
	points := derive.DifficultyAverages(sessions, today, derive.WindowDays)

	resp := series{}
	for _, p := range points {
		resp.Labels = append(resp.Labels, weekdayLabel(p.Day))
		if p.Valid {
			v := p.Avg
			resp.Values = append(resp.Values, &v)
		} else {
			resp.Values = append(resp.Values, nil)
		}
	}
	writeJSON(w, resp)
}

// subjectSeries is the pie chart payload; every value is present, so no
// nulls here.
type subjectSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// handleSubjectSeries serves the subject distribution over the entire
// history, not just the chart window.
func (s *Server) handleSubjectSeries(w http.ResponseWriter, r *http.Request, userID string) {
	sessions, ok := s.loadSnapshot(w, userID)
	if !ok {
		return
	}

	resp := subjectSeries{Labels: []string{}, Values: []float64{}}
	for _, c := range derive.SubjectDistribution(sessions) {
		resp.Labels = append(resp.Labels, c.Subject)
		resp.Values = append(resp.Values, float64(c.Count))
	}
	writeJSON(w, resp)
}
