package domain

import "time"

// DefaultDifficulty is used when a recall revision is logged for a session
// that carries no usable difficulty of its own.
const DefaultDifficulty = 5

// StudySession represents one logged unit of studying a subject chapter on a
// given calendar day. Records are immutable once created; the store only
// ever appends new ones.
type StudySession struct {
	Subject    string
	Chapter    string
	Difficulty int       // self-rated, 1-10, validated at the boundary
	Date       time.Time // calendar day, midnight UTC
	CreatedAt  time.Time // server-assigned, audit only
}
