package calculator

import (
	"testing"
	"time"

	"StockTracker/internal/model"
)

func weeklySeries(start time.Time, weeks int, base float64) []model.WeeklyPoint {
	points := make([]model.WeeklyPoint, weeks)
	for i := 0; i < weeks; i++ {
		p := base + float64(i)
		points[i] = model.WeeklyPoint{
			Date: start.AddDate(0, 0, -7*i),
			High: p + 5,
			Low:  p - 5,
		}
	}
	return points
}

func TestWeeklyRange_Empty(t *testing.T) {
	if _, _, err := WeeklyRange(nil); err != ErrEmptySeries {
		t.Fatalf("expected ErrEmptySeries, got %v", err)
	}
}

func TestWeeklyRange_FewerThanWindow(t *testing.T) {
	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	// 10 points, newest first: values 100..109, highs 105..114, lows 95..104
	points := weeklySeries(start, 10, 100)
	high, low, err := WeeklyRange(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 114 || low != 95 {
		t.Errorf("expected high=114 low=95, got high=%.1f low=%.1f", high, low)
	}
}

func TestWeeklyRange_TrailingWindowDropsOldPoints(t *testing.T) {
	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	// 60 points; the oldest 8 (indexes 52..59) carry the extreme values and
	// must be excluded by the trailing 52-point window.
	points := weeklySeries(start, 60, 100)
	high, low, err := WeeklyRange(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// In-window values: 100..151 → high 151+5, low 100-5.
	if high != 156 || low != 95 {
		t.Errorf("expected high=156 low=95, got high=%.1f low=%.1f", high, low)
	}
}

func TestWeeklyRange_UnsortedInput(t *testing.T) {
	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	points := weeklySeries(start, 60, 100)
	// Reverse to oldest-first; the result must not change.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	high, low, err := WeeklyRange(points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 156 || low != 95 {
		t.Errorf("expected high=156 low=95 on unsorted input, got high=%.1f low=%.1f", high, low)
	}
}

func TestWeeklyRange_GapsStillCountTrailingPoints(t *testing.T) {
	start := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	// Two clusters two years apart; with only 20 points total the window
	// spans both despite the calendar gap.
	recent := weeklySeries(start, 10, 200)
	old := weeklySeries(start.AddDate(-2, 0, 0), 10, 50)
	high, low, err := WeeklyRange(append(recent, old...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != 45 { // 50 - 5 from the old cluster
		t.Errorf("expected low=45 from the gapped cluster, got %.1f", low)
	}
	if high != 214 { // 209 + 5 from the recent cluster
		t.Errorf("expected high=214, got %.1f", high)
	}
}

func TestDerivedPercentages(t *testing.T) {
	if got := AboveLowPercent(150, 100); got != 50 {
		t.Errorf("AboveLowPercent: expected 50, got %.1f", got)
	}
	if got := BelowHighPercent(150, 200); got != 25 {
		t.Errorf("BelowHighPercent: expected 25, got %.1f", got)
	}
	if got := AboveLowPercent(150, 0); got != 0 {
		t.Errorf("AboveLowPercent with zero low: expected 0, got %.1f", got)
	}
}
