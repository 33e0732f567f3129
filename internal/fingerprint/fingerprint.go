package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

// Normalize renders a session's identifying content in canonical form. It
// trims and lowercases the free-text fields and joins everything with
// newlines so adjacent fields can never run together.
func Normalize(s domain.StudySession) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.TrimSpace(p)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		return p
	}

	return strings.Join([]string{
		normalizePart(s.Subject),
		normalizePart(s.Chapter),
		dates.FormatDay(s.Date),
		strconv.Itoa(s.Difficulty),
	}, "\n")
}

// Hash returns the SHA-256 of the normalized session as a hex string. The
// journal importer uses it to recognize records it has already loaded.
func Hash(s domain.StudySession) string {
	normalized := Normalize(s)
	hashBytes := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hashBytes)
}
