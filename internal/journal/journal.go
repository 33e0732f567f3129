// Package journal parses plain-text study journals, the bulk-import format
// for session records. Each line is one session:
//
//	2026-08-12 | Mathematics | Integration by parts | 6
//
// Blank lines and lines starting with '#' are ignored. A malformed line
// fails only that record, never the whole file.
package journal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

const (
	fieldSeparator = "|"
	fieldCount     = 4

	minDifficulty = 1
	maxDifficulty = 10
)

// ParseFile reads a journal file and extracts all sessions. Per-line
// failures come back in the second return value; the error is reserved for
// I/O problems.
func ParseFile(path string) ([]domain.StudySession, []error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads journal lines from r and extracts all sessions.
func Parse(r io.Reader) ([]domain.StudySession, []error, error) {
	scanner := bufio.NewScanner(r)
	var sessions []domain.StudySession
	var errs []error

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		session, err := parseLine(line)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", lineNo, err))
			continue
		}
		sessions = append(sessions, session)
	}

	if err := scanner.Err(); err != nil {
		return sessions, errs, err
	}
	return sessions, errs, nil
}

func parseLine(line string) (domain.StudySession, error) {
	parts := strings.Split(line, fieldSeparator)
	if len(parts) != fieldCount {
		return domain.StudySession{}, fmt.Errorf("expected %d fields separated by %q, got %d", fieldCount, fieldSeparator, len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	day, err := dates.ParseDay(parts[0])
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("invalid date %q: %w", parts[0], err)
	}

	subject, chapter := parts[1], parts[2]
	if subject == "" {
		return domain.StudySession{}, fmt.Errorf("empty subject")
	}
	if chapter == "" {
		return domain.StudySession{}, fmt.Errorf("empty chapter")
	}

	difficulty, err := strconv.Atoi(parts[3])
	if err != nil {
		return domain.StudySession{}, fmt.Errorf("invalid difficulty %q: %w", parts[3], err)
	}
	if difficulty < minDifficulty || difficulty > maxDifficulty {
		return domain.StudySession{}, fmt.Errorf("difficulty %d out of range %d-%d", difficulty, minDifficulty, maxDifficulty)
	}

	return domain.StudySession{
		Subject:    subject,
		Chapter:    chapter,
		Difficulty: difficulty,
		Date:       day,
	}, nil
}
