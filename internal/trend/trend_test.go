package trend

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/footprint/internal/model"
)

func entry(date string, total float64) model.WeeklyLogEntry {
	return model.WeeklyLogEntry{Date: date, CO2: model.CO2Score{Total: total}}
}

func TestBuildWeekSeriesAlwaysSeven(t *testing.T) {
	today := time.Date(2026, 10, 15, 21, 30, 0, 0, time.UTC)

	cases := [][]model.WeeklyLogEntry{
		nil,
		{entry("2026-10-15", 3)},
		{entry("2026-01-01", 9), entry("2027-01-01", 9)},
	}
	for i, logs := range cases {
		if got := BuildWeekSeries(today, logs); len(got) != Days {
			t.Errorf("case %d: len = %d, want %d", i, len(got), Days)
		}
	}
}

func TestBuildWeekSeriesOrderAndGaps(t *testing.T) {
	today := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)
	logs := []model.WeeklyLogEntry{
		entry("2026-10-15", 7),
		entry("2026-10-09", 1),
		entry("2026-10-12", 4),
		entry("2026-10-08", 99), // outside the window
	}

	got := BuildWeekSeries(today, logs)
	want := []float64{1, 0, 0, 4, 0, 0, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("series = %v, want %v", got, want)
		}
	}
}

func TestBuildWeekSeriesFirstEntryWins(t *testing.T) {
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	got := BuildWeekSeries(today, []model.WeeklyLogEntry{
		entry("2026-10-15", 2),
		entry("2026-10-15", 8),
	})
	if got[6] != 2 {
		t.Fatalf("today = %v, want 2", got[6])
	}
}

func TestBuildWeekSeriesUsesTodaysLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	// 2026-10-15 23:00 UTC is already 2026-10-16 in Tokyo.
	today := time.Date(2026, 10, 15, 23, 0, 0, 0, time.UTC).In(tokyo)

	got := BuildWeekSeries(today, []model.WeeklyLogEntry{entry("2026-10-16", 5)})
	if got[6] != 5 {
		t.Fatalf("series = %v, want today's entry keyed by the local date", got)
	}
}

func TestWeekDaysAndLabels(t *testing.T) {
	today := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC) // Thursday
	days := WeekDays(today)
	if got := model.DateKey(days[0]); got != "2026-10-09" {
		t.Errorf("first day = %s, want 2026-10-09", got)
	}
	labels := WeekdayLabels(days)
	if labels[0] != "Fri" || labels[6] != "Thu" {
		t.Errorf("labels = %v", labels)
	}
}

func TestCompareImprovement(t *testing.T) {
	c, ok := CompareRecentToPrior([]float64{4, 4, 4, 4, 2, 2, 2})
	if !ok {
		t.Fatal("expected a comparison")
	}
	if c.Percent != 50 {
		t.Fatalf("Percent = %d, want 50", c.Percent)
	}
	if msg := c.Message(); !strings.Contains(msg, "50") || !strings.HasPrefix(msg, "🎉") {
		t.Fatalf("Message = %q", msg)
	}
}

func TestCompareDecline(t *testing.T) {
	c, _ := CompareRecentToPrior([]float64{2, 2, 2, 2, 3, 3, 3})
	if c.Percent != -50 {
		t.Fatalf("Percent = %d, want -50", c.Percent)
	}
	if got := c.Message(); got != "Your footprint rose by 50%. Try our tips!" {
		t.Fatalf("Message = %q", got)
	}
}

func TestCompareZeroOlderIsSteady(t *testing.T) {
	c, ok := CompareRecentToPrior([]float64{0, 0, 0, 0, 5, 6, 7})
	if !ok {
		t.Fatal("expected a comparison")
	}
	if c.Percent != 0 {
		t.Fatalf("Percent = %d, want 0", c.Percent)
	}
	if got := c.Message(); got != "You're steady—keep at it! 🌟" {
		t.Fatalf("Message = %q", got)
	}
}

func TestCompareRounds(t *testing.T) {
	// older avg 3, recent avg 2 -> 33.33 -> 33
	c, _ := CompareRecentToPrior([]float64{3, 3, 3, 3, 2, 2, 2})
	if c.Percent != 33 {
		t.Fatalf("Percent = %d, want 33", c.Percent)
	}
}

func TestCompareShortSeries(t *testing.T) {
	for _, s := range [][]float64{nil, {1}, {1, 2, 3}} {
		if _, ok := CompareRecentToPrior(s); ok {
			t.Errorf("CompareRecentToPrior(%v) reported a comparison", s)
		}
	}
}

func TestAnalyze(t *testing.T) {
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	w := Analyze(today, []model.WeeklyLogEntry{entry("2026-10-09", 8), entry("2026-10-15", 2)})
	if len(w.Values) != Days || len(w.Labels) != Days || len(w.Days) != Days {
		t.Fatalf("week lengths = %d/%d/%d", len(w.Values), len(w.Labels), len(w.Days))
	}
	if !w.Comparable || w.Comparison.Percent <= 0 {
		t.Fatalf("comparison = %+v", w.Comparison)
	}
	if w.Total() != 10 {
		t.Fatalf("Total = %v, want 10", w.Total())
	}

	if got := (Week{}).Message(); got != NoDataMessage {
		t.Fatalf("empty week message = %q", got)
	}
}
