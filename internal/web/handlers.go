package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"studytrack/internal/auth"
	"studytrack/internal/dates"
	"studytrack/internal/derive"
	"studytrack/internal/domain"
)

// authView carries the error line on the login and signup pages.
type authView struct {
	Error string
}

// handleLogin serves the login page and processes sign-ins.
func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.templates.ExecuteTemplate(w, "login", authView{})
		case http.MethodPost:
			email := r.PostFormValue("email")
			password := r.PostFormValue("password")

			token, err := s.auth.LogIn(email, password)
			if err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					s.templates.ExecuteTemplate(w, "login", authView{Error: "Invalid email or password"})
					return
				}
				log.Printf("Error logging in: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			s.setSessionCookie(w, token)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

type signupForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// handleSignup serves the signup page and registers accounts. A successful
// signup signs the user straight in.
func (s *Server) handleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.templates.ExecuteTemplate(w, "signup", authView{})
		case http.MethodPost:
			form := signupForm{
				Email:    r.PostFormValue("email"),
				Password: r.PostFormValue("password"),
			}
			if err := s.validate.Struct(form); err != nil {
				s.templates.ExecuteTemplate(w, "signup", authView{Error: "Enter a valid email and a password of at least 8 characters"})
				return
			}

			user, err := s.auth.SignUp(form.Email, form.Password)
			if err != nil {
				if errors.Is(err, auth.ErrEmailTaken) {
					s.templates.ExecuteTemplate(w, "signup", authView{Error: "That email is already registered"})
					return
				}
				log.Printf("Error signing up: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			token, err := s.auth.IssueToken(user)
			if err != nil {
				log.Printf("Error issuing token: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			s.setSessionCookie(w, token)
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleLogout discards the session and returns to the login page.
func (s *Server) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// handleDashboard renders the full dashboard view.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, userID string) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	stats, err := s.buildStats(userID)
	if err != nil {
		log.Printf("Error building dashboard for user %s: %v", userID, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	sources, err := s.db.GetJournalSourcesByUser(userID)
	if err != nil {
		log.Printf("Error getting journal sources: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.templates.ExecuteTemplate(w, "dashboard", dashboardView{
		Stats:      stats,
		SourceList: sourceListView{Sources: sources},
	})
}

// handleHistory renders the plain session log, the history-only page
// variant. It shares every computation path with the dashboard; only the
// template differs.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, userID string) {
	sessions, err := s.db.GetSessionsByUser(userID)
	if err != nil {
		log.Printf("Error getting sessions for history: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.templates.ExecuteTemplate(w, "history", historyView{Sessions: sessions})
}

type sessionForm struct {
	Subject    string `validate:"required"`
	Chapter    string `validate:"required"`
	Difficulty int    `validate:"min=1,max=10"`
	Date       string `validate:"required,datetime=2006-01-02"`
}

// handlePostSession appends a manually logged study session and re-renders
// the stats block.
func (s *Server) handlePostSession(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	difficulty, _ := strconv.Atoi(r.PostFormValue("difficulty"))
	form := sessionForm{
		Subject:    strings.TrimSpace(r.PostFormValue("subject")),
		Chapter:    strings.TrimSpace(r.PostFormValue("chapter")),
		Difficulty: difficulty,
		Date:       r.PostFormValue("date"),
	}
	if err := s.validate.Struct(form); err != nil {
		http.Error(w, "Invalid session", http.StatusBadRequest)
		return
	}
	day, err := dates.ParseDay(form.Date)
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	session := domain.StudySession{
		Subject:    form.Subject,
		Chapter:    form.Chapter,
		Difficulty: form.Difficulty,
		Date:       day,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.db.InsertSession(userID, session, ""); err != nil {
		log.Printf("Error inserting session: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderStats(w, userID)
}

// handleCompleteRecall appends a revision session for a due topic: dated
// today, difficulty carried over from the topic's last session (default 5
// when it has none). The next recomputation drops the topic from the queue
// because its age resets to zero.
func (s *Server) handleCompleteRecall(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	subject := strings.TrimSpace(r.PostFormValue("subject"))
	chapter := strings.TrimSpace(r.PostFormValue("chapter"))
	if subject == "" || chapter == "" {
		http.Error(w, "Missing subject or chapter", http.StatusBadRequest)
		return
	}

	sessions, err := s.db.GetSessionsByUser(userID)
	if err != nil {
		log.Printf("Error getting sessions for recall: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	now := time.Now().UTC()
	today := dates.Midnight(now)

	var prior *derive.RecallItem
	for _, item := range derive.RecallQueue(sessions, today) {
		if item.Subject == subject && item.Chapter == chapter {
			prior = &item
			break
		}
	}
	if prior == nil {
		http.Error(w, "No recall due for that topic", http.StatusNotFound)
		return
	}

	difficulty := prior.LastSession.Difficulty
	if difficulty == 0 {
		difficulty = domain.DefaultDifficulty
	}

	revision := domain.StudySession{
		Subject:    subject,
		Chapter:    chapter,
		Difficulty: difficulty,
		Date:       today,
		CreatedAt:  now,
	}
	if err := s.db.InsertSession(userID, revision, ""); err != nil {
		log.Printf("Error inserting recall revision: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	s.renderStats(w, userID)
}

// handleExamDate stores the exam date and re-renders the countdown.
func (s *Server) handleExamDate(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value := r.PostFormValue("exam-date")
	if _, err := dates.ParseDay(value); err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	if err := s.db.SetExamDate(userID, value); err != nil {
		log.Printf("Error setting exam date: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	stats, err := s.buildStats(userID)
	if err != nil {
		log.Printf("Error rebuilding stats: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.templates.ExecuteTemplate(w, "countdown", stats)
}

// renderStats re-renders the stats fragment swapped in by HTMX after an
// append. The charts listen for the same swap on the client side.
func (s *Server) renderStats(w http.ResponseWriter, userID string) {
	stats, err := s.buildStats(userID)
	if err != nil {
		log.Printf("Error rebuilding stats: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.templates.ExecuteTemplate(w, "stats", stats)
}

