package dates

import "time"

// DayLayout is the wire format for calendar days.
const DayLayout = "2006-01-02"

const msPerDay = 86_400_000

// ParseDay parses a YYYY-MM-DD string into midnight UTC of that day.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayLayout, s)
}

// FormatDay renders t's calendar day as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Midnight truncates t to the start of its calendar day in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// DaysBetween returns the number of whole days from 'from' to 'to'. Both
// operands are normalized to midnight first, then the millisecond difference
// is floor-divided by one day. Negative when 'from' is after 'to'.
func DaysBetween(from, to time.Time) int {
	ms := Midnight(to).Sub(Midnight(from)).Milliseconds()
	return int(floorDiv(ms, msPerDay))
}

// DaysUntilCeil returns the days remaining from now until t, rounding any
// partial day up. Neither operand is midnight-normalized: a deadline 2.1
// days away reports 3.
func DaysUntilCeil(now, t time.Time) int {
	ms := t.Sub(now).Milliseconds()
	return int(ceilDiv(ms, msPerDay))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}
