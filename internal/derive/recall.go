package derive

import (
	"time"

	"studytrack/internal/dates"
	"studytrack/internal/domain"
)

// Urgency tiers a due recall item by how long its topic has gone unstudied.
type Urgency string

const (
	UrgencyOK       Urgency = "ok"       // 10..13 days
	UrgencyWarning  Urgency = "warning"  // 14..19 days
	UrgencyCritical Urgency = "critical" // 20 days and beyond
)

// RecallItem is one due review reminder for a (subject, chapter) topic.
type RecallItem struct {
	Subject     string
	Chapter     string
	LastSession domain.StudySession
	DaysSince   int
	Urgency     Urgency
}

type topicKey struct {
	subject string
	chapter string
}

// RecallQueue reduces the session list to the latest session per
// (subject, chapter) topic and emits an item for every topic last studied
// ten or more days ago. Items appear in first-seen topic order. The latest
// session is picked by strict date comparison, so an equal-date duplicate
// does not displace the one already held.
//
// Completing an item is the caller's side of the contract: append a new
// session for the topic dated today, carrying the prior difficulty
// (domain.DefaultDifficulty when it has none), which resets DaysSince to 0
// on the next computation.
func RecallQueue(sessions []domain.StudySession, today time.Time) []RecallItem {
	latest := make(map[topicKey]domain.StudySession)
	var order []topicKey
	for _, s := range sessions {
		k := topicKey{s.Subject, s.Chapter}
		prev, ok := latest[k]
		if !ok {
			order = append(order, k)
			latest[k] = s
			continue
		}
		if s.Date.After(prev.Date) {
			latest[k] = s
		}
	}

	var queue []RecallItem
	for _, k := range order {
		last := latest[k]
		days := dates.DaysBetween(last.Date, today)
		if days < recallDueDays {
			continue
		}
		queue = append(queue, RecallItem{
			Subject:     k.subject,
			Chapter:     k.chapter,
			LastSession: last,
			DaysSince:   days,
			Urgency:     urgencyFor(days),
		})
	}
	return queue
}

func urgencyFor(days int) Urgency {
	switch {
	case days >= recallCriticalDays:
		return UrgencyCritical
	case days >= recallWarningDays:
		return UrgencyWarning
	default:
		return UrgencyOK
	}
}
