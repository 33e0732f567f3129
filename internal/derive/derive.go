// Package derive holds the pure computations behind the dashboard views.
// Every function takes a snapshot of the session list plus a reference time
// and returns a value; nothing here performs I/O or keeps state between
// calls, so callers may recompute any subset after each append.
package derive

// Fixed policy thresholds. These are product behavior, not configuration.
const (
	recallDueDays      = 10
	recallWarningDays  = 14
	recallCriticalDays = 20

	// WindowDays is the trailing chart window: today and the six days before.
	WindowDays = 7

	examWarningDays = 7
)
