package web

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"studytrack/internal/journalsync"
	"studytrack/internal/storage"
)

// handleSources lists the user's journal sources and accepts new ones.
func (s *Server) handleSources(w http.ResponseWriter, r *http.Request, userID string) {
	switch r.Method {
	case http.MethodGet:
		s.renderSourceList(w, userID, "")
	case http.MethodPost:
		path := strings.TrimSpace(r.PostFormValue("path"))
		if path == "" {
			http.Error(w, "Path cannot be empty", http.StatusBadRequest)
			return
		}

		if _, err := s.db.InsertJournalSource(userID, path, journalsync.SourceType(path)); err != nil {
			log.Printf("Error inserting journal source: %v", err)
			http.Error(w, "Failed to add source", http.StatusInternalServerError)
			return
		}
		s.renderSourceList(w, userID, "")
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDeleteSource removes a journal source and re-renders the list.
// Already-imported sessions stay; the study log is append-only.
func (s *Server) handleDeleteSource(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/sources/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.Error(w, "Invalid source ID", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteJournalSource(userID, id); err != nil {
		log.Printf("Error deleting journal source %d: %v", id, err)
		http.Error(w, "Failed to delete source", http.StatusInternalServerError)
		return
	}
	s.renderSourceList(w, userID, "")
}

// handleSync imports every registered journal source in the foreground and
// re-renders the source list with a summary line.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	res, err := journalsync.Run(s.db, userID, s.reposDir)
	if err != nil {
		log.Printf("Error syncing journals for user %s: %v", userID, err)
		http.Error(w, "Sync failed", http.StatusInternalServerError)
		return
	}

	summary := "Imported " + strconv.Itoa(res.Imported) + " new sessions"
	if res.Errors > 0 {
		summary += " (" + strconv.Itoa(res.Errors) + " entries skipped)"
	}
	s.renderSourceList(w, userID, summary)
}

type sourceListView struct {
	Sources []storage.JournalSource
	Summary string
}

func (s *Server) renderSourceList(w http.ResponseWriter, userID, summary string) {
	sources, err := s.db.GetJournalSourcesByUser(userID)
	if err != nil {
		log.Printf("Error getting journal sources: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.templates.ExecuteTemplate(w, "source_list", sourceListView{Sources: sources, Summary: summary})
}
