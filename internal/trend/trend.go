// Package trend builds the 7-day emissions series and the recent-vs-prior
// comparison shown on the trends screen.
package trend

import (
	"fmt"
	"math"
	"time"

	"github.com/theirongolddev/footprint/internal/model"
)

// Days is the length of the rolling window.
const Days = 7

// recentDays is how many trailing days count as "recent".
const recentDays = 3

// NoDataMessage is shown when no comparison can be made.
const NoDataMessage = "Not enough data yet. Keep logging!"

// WeekDays returns the calendar days today-6 through today, oldest first, each
// at midnight in today's location.
func WeekDays(today time.Time) []time.Time {
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	days := make([]time.Time, Days)
	for i := range days {
		days[i] = start.AddDate(0, 0, i-(Days-1))
	}
	return days
}

// WeekdayLabels returns short weekday names ("Mon") for days.
func WeekdayLabels(days []time.Time) []string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Format("Mon")
	}
	return labels
}

// BuildWeekSeries returns exactly seven daily totals, oldest first. Entries
// match a day by calendar date string; a day without an entry is 0 and the
// first entry for a date wins.
func BuildWeekSeries(today time.Time, logs []model.WeeklyLogEntry) []float64 {
	byDate := make(map[string]float64, len(logs))
	for _, e := range logs {
		if _, dup := byDate[e.Date]; dup {
			continue
		}
		byDate[e.Date] = finite(e.CO2.Total)
	}

	days := WeekDays(today)
	series := make([]float64, len(days))
	for i, d := range days {
		series[i] = byDate[model.DateKey(d)]
	}
	return series
}

// Comparison is the recent-vs-prior result. A positive Percent is an
// improvement (recent emissions are lower).
type Comparison struct {
	Percent   int
	RecentAvg float64
	OlderAvg  float64
}

// CompareRecentToPrior splits series into the last three values and the rest
// and compares their averages. It reports false when either part is empty.
func CompareRecentToPrior(series []float64) (Comparison, bool) {
	if len(series) <= recentDays {
		return Comparison{}, false
	}
	split := len(series) - recentDays
	older, recent := avg(series[:split]), avg(series[split:])

	c := Comparison{RecentAvg: recent, OlderAvg: older}
	if older != 0 {
		c.Percent = int(math.Round((older - recent) / older * 100))
	}
	return c, true
}

// Message renders the comparison as the trends screen headline.
func (c Comparison) Message() string {
	switch {
	case c.Percent > 0:
		return fmt.Sprintf("🎉 You're down %d%% this week!", c.Percent)
	case c.Percent < 0:
		return fmt.Sprintf("Your footprint rose by %d%%. Try our tips!", -c.Percent)
	default:
		return "You're steady—keep at it! 🌟"
	}
}

// Week is everything the trends chart needs.
type Week struct {
	Days       []time.Time
	Labels     []string
	Values     []float64
	Comparison Comparison
	Comparable bool
}

// Analyze builds the series for the week ending today and compares it.
func Analyze(today time.Time, logs []model.WeeklyLogEntry) Week {
	days := WeekDays(today)
	values := BuildWeekSeries(today, logs)
	c, ok := CompareRecentToPrior(values)
	return Week{
		Days:       days,
		Labels:     WeekdayLabels(days),
		Values:     values,
		Comparison: c,
		Comparable: ok,
	}
}

// Message is the headline for the week.
func (w Week) Message() string {
	if !w.Comparable {
		return NoDataMessage
	}
	return w.Comparison.Message()
}

// Total sums the week.
func (w Week) Total() float64 {
	var sum float64
	for _, v := range w.Values {
		sum += v
	}
	return sum
}

func avg(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
