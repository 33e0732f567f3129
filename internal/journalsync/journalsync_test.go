package journalsync

import (
	"os"
	"path/filepath"
	"testing"

	"studytrack/internal/storage"
)

func TestSourceType(t *testing.T) {
	testCases := []struct {
		path     string
		expected string
	}{
		{"/home/me/journals", "local"},
		{"journals", "local"},
		{"https://example.com/me/journals.git", "git"},
		{"http://example.com/me/journals", "git"},
		{"git@example.com:me/journals.git", "git"},
		{"/home/me/notes.git", "git"},
	}
	for _, tc := range testCases {
		if got := SourceType(tc.path); got != tc.expected {
			t.Errorf("SourceType(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestGitURLToLocalPath(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{"https URL", "https://example.com/me/journals.git", filepath.Join("repos", "example.com", "me", "journals"), false},
		{"ssh URL", "git@example.com:me/journals.git", filepath.Join("repos", "example.com", "me", "journals"), false},
		{"garbage", "not a url at all", "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := gitURLToLocalPath("repos", tc.url)
			if tc.wantErr {
				if err == nil {
					t.Error("Expected an error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("gitURLToLocalPath returned an unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRunImportsLocalJournal(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "sync_test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()

	journalDir := filepath.Join(tmp, "journals")
	if err := os.MkdirAll(journalDir, 0o755); err != nil {
		t.Fatalf("failed to create journal dir: %v", err)
	}
	content := `# summer revision
2026-08-12 | Maths | Algebra | 4
2026-08-13 | Physics | Optics | 7
this line is broken
`
	if err := os.WriteFile(filepath.Join(journalDir, "summer.journal"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write journal file: %v", err)
	}
	// Files without the journal suffix are ignored.
	if err := os.WriteFile(filepath.Join(journalDir, "notes.txt"), []byte("2026-08-14 | Maths | Algebra | 5"), 0o644); err != nil {
		t.Fatalf("failed to write decoy file: %v", err)
	}

	const userID = "user-1"
	if _, err := db.InsertJournalSource(userID, journalDir, "local"); err != nil {
		t.Fatalf("failed to insert journal source: %v", err)
	}

	res, err := Run(db, userID, filepath.Join(tmp, "repos"))
	if err != nil {
		t.Fatalf("Run returned an unexpected error: %v", err)
	}
	if res.Imported != 2 {
		t.Errorf("Expected 2 imported entries, got %d", res.Imported)
	}
	if res.Errors != 1 {
		t.Errorf("Expected 1 error for the broken line, got %d", res.Errors)
	}

	sessions, err := db.GetSessionsByUser(userID)
	if err != nil {
		t.Fatalf("failed to load sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 stored sessions, got %d", len(sessions))
	}
	if sessions[0].Subject != "Maths" || sessions[0].Date.Format("2006-01-02") != "2026-08-12" {
		t.Errorf("Unexpected first session: %+v", sessions[0])
	}

	// A second run must not duplicate anything.
	res, err = Run(db, userID, filepath.Join(tmp, "repos"))
	if err != nil {
		t.Fatalf("Run returned an unexpected error on re-run: %v", err)
	}
	if res.Imported != 0 {
		t.Errorf("Expected 0 imports on re-run, got %d", res.Imported)
	}
	if res.Skipped != 2 {
		t.Errorf("Expected 2 skipped on re-run, got %d", res.Skipped)
	}

	sessions, err = db.GetSessionsByUser(userID)
	if err != nil {
		t.Fatalf("failed to reload sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected the store to stay at 2 sessions, got %d", len(sessions))
	}
}
