package model

import "time"

// DateLayout is the calendar-date format used on the wire.
const DateLayout = "2006-01-02"

// CO2Score is the server-computed emissions breakdown in kg CO₂.
// Total is displayed as given and never checked against the sum.
type CO2Score struct {
	Travel float64 `json:"travel"`
	Energy float64 `json:"energy"`
	Diet   float64 `json:"diet"`
	Total  float64 `json:"total"`
}

// Stats holds the account-level aggregates reported by the backend.
type Stats struct {
	Streak    int     `json:"streak"`
	TotalDays int     `json:"total_days"`
	AvgDaily  float64 `json:"avg_daily"`
}

// WeeklyLogEntry is one saved day in the weekly window.
type WeeklyLogEntry struct {
	Date string   `json:"date"`
	CO2  CO2Score `json:"co2"`
}

// DateKey formats t as a wire calendar date in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}
