package usecase

import (
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

// maxPeriods caps the heatmap column count for very long windows
const maxPeriods = 8

// intervalDays picks the bucket width for a window so the heatmap lands
// near six columns regardless of window length. Beyond the tier table the
// interval widens so the column count never exceeds maxPeriods.
func intervalDays(daysDiff int) int {
	switch {
	case daysDiff <= 40:
		return 7
	case daysDiff <= 70:
		return 10
	case daysDiff <= 100:
		return 15
	case daysDiff <= 20*maxPeriods:
		return 20
	default:
		return (daysDiff + maxPeriods - 1) / maxPeriods
	}
}

// BuildPeriods splits the window into ordered, contiguous, non-overlapping
// periods. Every period spans the chosen interval except possibly the
// last, which is clipped to the window end; every date in the window falls
// into exactly one period.
func BuildPeriods(w Window) []model.Period {
	// Both window boundaries are inclusive
	daysDiff := w.Start.DaysUntil(w.End) + 1
	if daysDiff < 1 {
		daysDiff = 1
	}

	interval := intervalDays(daysDiff)
	numPeriods := (daysDiff + interval - 1) / interval

	periods := make([]model.Period, 0, numPeriods)
	cursor := w.Start
	for i := 0; i < numPeriods; i++ {
		end := cursor.AddDays(interval - 1)
		if end.After(w.End) {
			end = w.End
		}
		periods = append(periods, model.NewPeriod(cursor, end))
		cursor = end.AddDays(1)
	}

	return periods
}

// PeriodIndex returns the index of the period containing the date, or
// false when the date falls outside every period
func PeriodIndex(periods []model.Period, d types.Date) (int, bool) {
	for i, p := range periods {
		if p.Contains(d) {
			return i, true
		}
	}
	return 0, false
}

// PeriodKeys returns the period labels in order, for the heatmap's
// parallel column list
func PeriodKeys(periods []model.Period) []string {
	keys := make([]string, len(periods))
	for i, p := range periods {
		keys[i] = p.Key
	}
	return keys
}
