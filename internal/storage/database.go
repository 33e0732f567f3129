package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// User is one dashboard account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// CreateUser inserts a new account row.
func (db *DB) CreateUser(u User) error {
	_, err := db.conn.Exec(`
		INSERT INTO users (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
	}
	return nil
}

// FindUserByEmail retrieves an account by email, or nil if none exists.
func (db *DB) FindUserByEmail(email string) (*User, error) {
	var u User
	row := db.conn.QueryRow(`
		SELECT id, email, password_hash, created_at
		FROM users WHERE email = ?
	`, email)

	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // User not found
		}
		return nil, fmt.Errorf("failed to find user by email %s: %w", email, err)
	}
	return &u, nil
}

// InsertSession appends one study session for a user. fprint may be empty
// for manually logged sessions; journal imports set it for dedupe.
func (db *DB) InsertSession(userID string, s domain.StudySession, fprint string) error {
	_, err := db.conn.Exec(`
		INSERT INTO sessions (user_id, subject, chapter, difficulty, date, created_at, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		userID,
		s.Subject,
		s.Chapter,
		s.Difficulty,
		dates.FormatDay(s.Date),
		s.CreatedAt,
		sql.NullString{String: fprint, Valid: fprint != ""},
	)
	if err != nil {
		return fmt.Errorf("failed to insert session for user %s: %w", userID, err)
	}
	return nil
}

// GetSessionsByUser loads the full study log for a user in insertion order.
// Rows that no longer parse (bad date, blank subject or chapter) are skipped
// with a warning so one bad record cannot blank the dashboard.
func (db *DB) GetSessionsByUser(userID string) ([]domain.StudySession, error) {
	rows, err := db.conn.Query(`
		SELECT subject, chapter, difficulty, date, created_at
		FROM sessions WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var sessions []domain.StudySession
	for rows.Next() {
		var s domain.StudySession
		var dateStr string
		if err := rows.Scan(&s.Subject, &s.Chapter, &s.Difficulty, &dateStr, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session row for user %s: %w", userID, err)
		}

		day, err := dates.ParseDay(dateStr)
		if err != nil {
			slog.Warn("Skipping session with unparseable date", "user_id", userID, "date", dateStr)
			continue
		}
		s.Date = day

		if strings.TrimSpace(s.Subject) == "" || strings.TrimSpace(s.Chapter) == "" {
			slog.Warn("Skipping session with blank subject or chapter", "user_id", userID, "date", dateStr)
			continue
		}

		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read session rows for user %s: %w", userID, err)
	}
	return sessions, nil
}

// HasFingerprint reports whether a session with this fingerprint was already
// imported for the user.
func (db *DB) HasFingerprint(userID, fprint string) (bool, error) {
	var one int
	row := db.conn.QueryRow(`
		SELECT 1 FROM sessions
		WHERE user_id = ? AND fingerprint = ?
	`, userID, fprint)

	err := row.Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("failed to check fingerprint for user %s: %w", userID, err)
	}
	return true, nil
}

// examDateKey is the settings key holding the configured exam date.
const examDateKey = "examDate"

// SetExamDate stores the user's exam date as a YYYY-MM-DD string.
func (db *DB) SetExamDate(userID string, day string) error {
	_, err := db.conn.Exec(`
		INSERT INTO settings (user_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value
	`, userID, examDateKey, day)
	if err != nil {
		return fmt.Errorf("failed to set exam date for user %s: %w", userID, err)
	}
	return nil
}

// ExamDate retrieves the user's exam date, or nil if none is set or the
// stored value no longer parses.
func (db *DB) ExamDate(userID string) (*time.Time, error) {
	var value string
	row := db.conn.QueryRow(`
		SELECT value FROM settings
		WHERE user_id = ? AND key = ?
	`, userID, examDateKey)

	err := row.Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get exam date for user %s: %w", userID, err)
	}

	day, err := dates.ParseDay(value)
	if err != nil {
		slog.Warn("Ignoring unparseable exam date", "user_id", userID, "value", value)
		return nil, nil
	}
	return &day, nil
}

// JournalSource represents a journal import origin, either a local path or a
// Git URL.
type JournalSource struct {
	ID          int64
	UserID      string
	Path        string
	Type        string
	LastScanned sql.NullTime
}

// InsertJournalSource inserts a new source and returns its ID.
func (db *DB) InsertJournalSource(userID, path, sourceType string) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO journal_sources (user_id, path, type)
		VALUES (?, ?, ?)
	`, userID, path, sourceType)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal source %s: %w", path, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for source %s: %w", path, err)
	}
	return id, nil
}

// GetJournalSourcesByUser retrieves all journal sources for a user.
func (db *DB) GetJournalSourcesByUser(userID string) ([]JournalSource, error) {
	rows, err := db.conn.Query(`
		SELECT id, user_id, path, type, last_scanned
		FROM journal_sources WHERE user_id = ?
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal sources for user %s: %w", userID, err)
	}
	defer rows.Close()

	var sources []JournalSource
	for rows.Next() {
		var s JournalSource
		if err := rows.Scan(&s.ID, &s.UserID, &s.Path, &s.Type, &s.LastScanned); err != nil {
			return nil, fmt.Errorf("failed to scan journal source row: %w", err)
		}
		sources = append(sources, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal source rows: %w", err)
	}
	return sources, nil
}

// DeleteJournalSource removes a source. Sessions already imported from it
// remain; the study log is append-only.
func (db *DB) DeleteJournalSource(userID string, id int64) error {
	_, err := db.conn.Exec(`
		DELETE FROM journal_sources
		WHERE id = ? AND user_id = ?
	`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete journal source %d: %w", id, err)
	}
	return nil
}

// UpdateJournalSourceLastScanned updates the last_scanned timestamp for a source.
func (db *DB) UpdateJournalSourceLastScanned(sourceID int64) error {
	_, err := db.conn.Exec(`
		UPDATE journal_sources
		SET last_scanned = ?
		WHERE id = ?
	`, time.Now(), sourceID)
	if err != nil {
		return fmt.Errorf("failed to update last scanned for source ID %d: %w", sourceID, err)
	}
	return nil
}
