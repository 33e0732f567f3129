package derive

import (
	"testing"
	"time"
)

func TestExamCountdown(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 15, 0, 0, time.UTC)

	t.Run("unset", func(t *testing.T) {
		c := ExamCountdown(nil, now)
		if c.Set {
			t.Error("Expected an unset countdown when no exam date is configured")
		}
	})

	testCases := []struct {
		name     string
		exam     time.Time
		expected int
		tier     CountdownTier
	}{
		{"partial day rounds up", now.Add(50*time.Hour + 24*time.Minute), 3, TierWarning}, // ~2.1 days
		{"same instant is today", now, 0, TierToday},
		{"later today", now.Add(5 * time.Hour), 1, TierWarning},
		{"a week out is warning", now.Add(7 * 24 * time.Hour), 7, TierWarning},
		{"beyond a week is normal", now.Add(8 * 24 * time.Hour), 8, TierNormal},
		{"a month out is normal", now.Add(30 * 24 * time.Hour), 30, TierNormal},
		// Past dates keep the warning tier with a negative remainder, as shipped.
		{"already passed", now.Add(-40 * time.Hour), -1, TierWarning},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := ExamCountdown(&tc.exam, now)
			if !c.Set {
				t.Fatal("Expected a set countdown")
			}
			if c.DaysRemaining != tc.expected {
				t.Errorf("DaysRemaining = %d, expected %d", c.DaysRemaining, tc.expected)
			}
			if c.Tier != tc.tier {
				t.Errorf("Tier = %q, expected %q", c.Tier, tc.tier)
			}
		})
	}
}
