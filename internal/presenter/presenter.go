// Package presenter turns a server CO₂ score into dashboard view data:
// formatted amounts, a status tier, suggestions and badges.
package presenter

import (
	"fmt"
	"math"

	"github.com/theirongolddev/footprint/internal/model"
)

// Tier is a status level derived from the day's total.
type Tier int

// Tiers, best first.
const (
	TierExcellent Tier = iota
	TierGood
	TierModerate
	TierHigh
)

// Status is the badge shown under the daily score.
type Status struct {
	Tier       Tier
	Label      string
	Background string // CSS rgba, as the web client styled it
	Foreground string // hex
}

var statuses = [...]Status{
	TierExcellent: {TierExcellent, "🌟 Excellent", "rgba(34,197,94,0.2)", "#108255"},
	TierGood:      {TierGood, "✅ Good", "rgba(250,204,21,0.18)", "#755700"},
	TierModerate:  {TierModerate, "⚠️ Moderate", "rgba(249,115,22,0.18)", "#b76b10"},
	TierHigh:      {TierHigh, "❌ High", "rgba(255,84,89,0.18)", "#b8171f"},
}

// Suggestion is one tip card.
type Suggestion struct {
	Icon string
	Text string
}

// Suggestion texts.
var (
	TipTravel  = Suggestion{"🚶", "Try walking or using public transport more often."}
	TipEnergy  = Suggestion{"💡", "Limit AC and washing machine time where possible."}
	TipDiet    = Suggestion{"🥗", "Swap one meat or dairy meal for a plant-based alternative tomorrow."}
	TipLow     = Suggestion{"🌟", "Super low footprint! Keep it up!"}
	TipOnTrack = Suggestion{"👍", "You're on track. Small steps matter!"}
)

// Dashboard is everything the score card and tips list display.
type Dashboard struct {
	Score       model.CO2Score
	Total       string
	Travel      string
	Energy      string
	Diet        string
	Status      Status
	Suggestions []Suggestion
}

// Render builds the dashboard for a score. It never fails: a non-finite
// component displays and compares as 0.
func Render(score model.CO2Score) Dashboard {
	score = sanitize(score)
	return Dashboard{
		Score:       score,
		Total:       FormatAmount(score.Total),
		Travel:      FormatAmount(score.Travel),
		Energy:      FormatAmount(score.Energy),
		Diet:        FormatAmount(score.Diet),
		Status:      StatusFor(score.Total),
		Suggestions: Suggestions(score),
	}
}

// FormatAmount formats kg CO₂ with one decimal place.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.1f", finite(v))
}

// StatusFor picks the tier for a total. Each boundary belongs to the upper tier.
func StatusFor(total float64) Status {
	total = finite(total)
	switch {
	case total < 5:
		return statuses[TierExcellent]
	case total < 10:
		return statuses[TierGood]
	case total < 15:
		return statuses[TierModerate]
	default:
		return statuses[TierHigh]
	}
}

// Suggestions evaluates every rule in order and returns all that apply, or
// the on-track tip when none do.
func Suggestions(score model.CO2Score) []Suggestion {
	score = sanitize(score)
	var out []Suggestion
	if score.Travel > 5 {
		out = append(out, TipTravel)
	}
	if score.Energy > 5 {
		out = append(out, TipEnergy)
	}
	if score.Diet > 10 {
		out = append(out, TipDiet)
	}
	if score.Total < 5 {
		out = append(out, TipLow)
	}
	if len(out) == 0 {
		out = append(out, TipOnTrack)
	}
	return out
}

func sanitize(s model.CO2Score) model.CO2Score {
	return model.CO2Score{
		Travel: finite(s.Travel),
		Energy: finite(s.Energy),
		Diet:   finite(s.Diet),
		Total:  finite(s.Total),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
