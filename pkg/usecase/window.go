package usecase

import (
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

const (
	// MinWindowDays and MaxWindowDays bound the analysis window. Out of
	// range requests are clamped, never rejected.
	MinWindowDays = 1
	MaxWindowDays = 365

	// DefaultWindowDays is used when the caller does not specify a window
	DefaultWindowDays = 30
)

// Window is the date range under analysis, inclusive on both ends
type Window struct {
	Days  int
	Start types.Date
	End   types.Date
}

// NormalizeWindow derives the analysis window from a day count and a
// reference instant. The instant is truncated to its calendar date before
// anything else so every downstream comparison is date-only. The window
// spans exactly days calendar dates including the start date itself.
func NormalizeWindow(now time.Time, days int) Window {
	if days < MinWindowDays {
		days = MinWindowDays
	}
	if days > MaxWindowDays {
		days = MaxWindowDays
	}

	start := types.DateOf(now)
	return Window{
		Days:  days,
		Start: start,
		End:   start.AddDays(days - 1),
	}
}

// Contains reports whether the date falls inside the window
func (w Window) Contains(d types.Date) bool {
	return d.Between(w.Start, w.End)
}
