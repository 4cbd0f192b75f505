package calculator

import (
	"errors"
	"math"
	"sort"

	"StockTracker/internal/model"
)

// ErrEmptySeries is returned when a range is requested over no data points.
var ErrEmptySeries = errors.New("no weekly points provided")

// weeklyWindow is the number of most recent weekly points the range covers.
// This is a trailing count of available points, not a calendar-anchored year:
// a series with gaps still contributes its 52 most recent entries.
const weeklyWindow = 52

// WeeklyRange returns the high and low across the most recent min(M, 52)
// points of a weekly series. The series may arrive in any order; it is
// evaluated sorted by date descending.
func WeeklyRange(points []model.WeeklyPoint) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, ErrEmptySeries
	}
	sorted := append([]model.WeeklyPoint(nil), points...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	n := len(sorted)
	if n > weeklyWindow {
		n = weeklyWindow
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := 0; i < n; i++ {
		if sorted[i].High > high {
			high = sorted[i].High
		}
		if sorted[i].Low < low {
			low = sorted[i].Low
		}
	}
	return high, low, nil
}

// AboveLowPercent returns how far the current price sits above the range low,
// as a percentage of the low.
func AboveLowPercent(current, low float64) float64 {
	if low == 0 {
		return 0
	}
	return (current - low) / low * 100
}

// BelowHighPercent returns how far the current price sits below the range
// high, as a positive percentage of the high.
func BelowHighPercent(current, high float64) float64 {
	if high == 0 {
		return 0
	}
	return math.Abs((current - high) / high * 100)
}
