package journal

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name             string
		input            string
		expectedSessions int
		expectedErrors   int
		expectedSubject  string
		expectedChapter  string
		expectedDiff     int
		expectedDate     string
	}{
		{
			name:             "single entry",
			input:            "2026-08-12 | Mathematics | Integration by parts | 6",
			expectedSessions: 1,
			expectedSubject:  "Mathematics",
			expectedChapter:  "Integration by parts",
			expectedDiff:     6,
			expectedDate:     "2026-08-12",
		},
		{
			name:             "no padding around separators",
			input:            "2026-08-12|Maths|Algebra|4",
			expectedSessions: 1,
			expectedSubject:  "Maths",
			expectedChapter:  "Algebra",
			expectedDiff:     4,
			expectedDate:     "2026-08-12",
		},
		{
			name: "comments and blanks skipped",
			input: `# revision journal

2026-08-12 | Maths | Algebra | 4

# exam prep
2026-08-13 | Physics | Optics | 7
`,
			expectedSessions: 2,
		},
		{
			name:             "bad date fails only that line",
			input:            "12/08/2026 | Maths | Algebra | 4\n2026-08-13 | Physics | Optics | 7",
			expectedSessions: 1,
			expectedErrors:   1,
		},
		{
			name:             "empty subject rejected",
			input:            "2026-08-12 |  | Algebra | 4",
			expectedSessions: 0,
			expectedErrors:   1,
		},
		{
			name:             "empty chapter rejected",
			input:            "2026-08-12 | Maths |  | 4",
			expectedSessions: 0,
			expectedErrors:   1,
		},
		{
			name:             "difficulty out of range",
			input:            "2026-08-12 | Maths | Algebra | 11",
			expectedSessions: 0,
			expectedErrors:   1,
		},
		{
			name:             "non-numeric difficulty",
			input:            "2026-08-12 | Maths | Algebra | hard",
			expectedSessions: 0,
			expectedErrors:   1,
		},
		{
			name:             "wrong field count",
			input:            "2026-08-12 | Maths | 4",
			expectedSessions: 0,
			expectedErrors:   1,
		},
		{
			name:             "just prose",
			input:            "studied a lot today",
			expectedSessions: 0,
			expectedErrors:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sessions, errs, err := Parse(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("Parse() returned an unexpected error: %v", err)
			}

			if len(sessions) != tc.expectedSessions {
				t.Fatalf("Expected %d sessions, got %d", tc.expectedSessions, len(sessions))
			}
			if len(errs) != tc.expectedErrors {
				t.Fatalf("Expected %d errors, got %d: %v", tc.expectedErrors, len(errs), errs)
			}

			if tc.expectedSubject != "" {
				s := sessions[0]
				if s.Subject != tc.expectedSubject {
					t.Errorf("Expected subject %q, got %q", tc.expectedSubject, s.Subject)
				}
				if s.Chapter != tc.expectedChapter {
					t.Errorf("Expected chapter %q, got %q", tc.expectedChapter, s.Chapter)
				}
				if s.Difficulty != tc.expectedDiff {
					t.Errorf("Expected difficulty %d, got %d", tc.expectedDiff, s.Difficulty)
				}
				if got := s.Date.Format("2006-01-02"); got != tc.expectedDate {
					t.Errorf("Expected date %s, got %s", tc.expectedDate, got)
				}
			}
		})
	}
}
