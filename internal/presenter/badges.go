package presenter

import (
	"sort"

	"github.com/theirongolddev/footprint/internal/model"
)

// BadgeID identifies an achievement.
type BadgeID string

// Badges.
const (
	BadgeStreak3      BadgeID = "streak-3"
	BadgeStreak7      BadgeID = "streak-7"
	BadgeStreak30     BadgeID = "streak-30"
	BadgeLowFootprint BadgeID = "low-footprint"
)

// Badge describes an achievement for display.
type Badge struct {
	ID          BadgeID
	Icon        string
	Name        string
	Description string
	// StreakDays is the streak needed to earn the badge, 0 for non-streak badges.
	StreakDays int
}

// AllBadges lists every badge in display order.
var AllBadges = []Badge{
	{BadgeStreak3, "🔥", "3-Day Streak", "Log three days in a row", 3},
	{BadgeStreak7, "⚡", "Week Warrior", "Log seven days in a row", 7},
	{BadgeStreak30, "🏆", "Monthly Master", "Log thirty days in a row", 30},
	{BadgeLowFootprint, "🌱", "Low Footprint", "Finish a day under 5 kg CO₂", 0},
}

// BadgeByID returns the badge definition for id.
func BadgeByID(id BadgeID) (Badge, bool) {
	for _, b := range AllBadges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// EarnedBadges returns the badges a single render unlocks. Streak badges need
// stats; pass nil when stats are not available.
func EarnedBadges(total float64, stats *model.Stats) []BadgeID {
	var out []BadgeID
	if stats != nil {
		out = StreakBadges(*stats)
	}
	if finite(total) < 5 {
		out = append(out, BadgeLowFootprint)
	}
	return out
}

// StreakBadges returns the streak badges stats unlock, ignoring the day's
// total.
func StreakBadges(stats model.Stats) []BadgeID {
	var out []BadgeID
	for _, b := range AllBadges {
		if b.StreakDays > 0 && stats.Streak >= b.StreakDays {
			out = append(out, b.ID)
		}
	}
	return out
}

// NextStreakBadge returns the first streak badge not yet reached by streak.
func NextStreakBadge(streak int) (Badge, bool) {
	for _, b := range AllBadges {
		if b.StreakDays > streak {
			return b, true
		}
	}
	return Badge{}, false
}

// BadgeSet is the set of earned badges. Earning is one-way.
type BadgeSet map[BadgeID]bool

// Earn adds ids to the set and returns the ones that were new.
func (s BadgeSet) Earn(ids ...BadgeID) []BadgeID {
	var added []BadgeID
	for _, id := range ids {
		if !s[id] {
			s[id] = true
			added = append(added, id)
		}
	}
	return added
}

// Has reports whether id is earned.
func (s BadgeSet) Has(id BadgeID) bool {
	return s[id]
}

// IDs returns earned ids in a stable order.
func (s BadgeSet) IDs() []BadgeID {
	out := make([]BadgeID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
