package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"studytrack/internal/auth"
	"studytrack/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// sessionCookie carries the signed auth token.
const sessionCookie = "studytrack_session"

// Server holds the dependencies for the HTTP server.
type Server struct {
	db        *storage.DB
	auth      *auth.Service
	router    *http.ServeMux
	templates *template.Template
	validate  *validator.Validate
	reposDir  string
}

// NewServer creates and configures a new server. reposDir is where git
// journal sources are checked out.
func NewServer(db *storage.DB, authSvc *auth.Service, reposDir string) *Server {
	tpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:        db,
		auth:      authSvc,
		router:    http.NewServeMux(),
		templates: tpl,
		validate:  validator.New(),
		reposDir:  reposDir,
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// Account routes
	s.router.HandleFunc("/login", s.handleLogin())
	s.router.HandleFunc("/signup", s.handleSignup())
	s.router.HandleFunc("/logout", s.handleLogout())

	// Pages
	s.router.HandleFunc("/", s.requireUser(s.handleDashboard))
	s.router.HandleFunc("/history", s.requireUser(s.handleHistory))

	// HTMX actions
	s.router.HandleFunc("/sessions", s.requireUser(s.handlePostSession))
	s.router.HandleFunc("/recall/complete", s.requireUser(s.handleCompleteRecall))
	s.router.HandleFunc("/exam-date", s.requireUser(s.handleExamDate))

	// Journal source management
	s.router.HandleFunc("/sources", s.requireUser(s.handleSources))
	s.router.HandleFunc("/sources/", s.requireUser(s.handleDeleteSource))
	s.router.HandleFunc("/sync", s.requireUser(s.handleSync))

	// Chart series for the client-side renderer
	s.router.HandleFunc("/api/series/sessions", s.requireUser(s.handleSessionSeries))
	s.router.HandleFunc("/api/series/difficulty", s.requireUser(s.handleDifficultySeries))
	s.router.HandleFunc("/api/series/subjects", s.requireUser(s.handleSubjectSeries))
}

// userHandler is a handler that runs with an authenticated user's ID.
type userHandler func(w http.ResponseWriter, r *http.Request, userID string)

// requireUser resolves the session cookie and scopes the request to the
// signed-in user. Browsers get redirected to the login page; API consumers
// get a plain 401.
func (s *Server) requireUser(next userHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookie)
		if err == nil {
			if claims, err := s.auth.ValidateToken(cookie.Value); err == nil {
				next(w, r, claims.UserID)
				return
			}
		}

		if isAPIRequest(r) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

func isAPIRequest(r *http.Request) bool {
	return len(r.URL.Path) >= 5 && r.URL.Path[:5] == "/api/"
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.TokenTTL.Seconds()),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
