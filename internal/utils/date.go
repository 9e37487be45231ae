package utils

import (
	"time"

	"github.com/yukikurage/daily-planner-api/internal/constants"
)

// NormalizeDay truncates t to midnight in its own location. Day comparisons
// always go through this so that a timestamped value and a date-only value
// land on the same calendar day.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day,
// ignoring any time-of-day component.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ParseDay parses a YYYY-MM-DD string into a midnight-normalized time.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(constants.DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return NormalizeDay(t), nil
}
