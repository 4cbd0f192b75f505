package model

import "time"

// Quote is a symbol's current price plus its trailing 52-week range and display name.
// Immutable once constructed; only a successful upstream fetch produces one.
type Quote struct {
	Symbol       string
	CurrentPrice float64
	RangeLow     float64
	RangeHigh    float64
	CompanyName  string
	FetchedAt    time.Time
}

// WeeklyPoint is one entry of a weekly price series.
type WeeklyPoint struct {
	Date time.Time
	High float64
	Low  float64
}
