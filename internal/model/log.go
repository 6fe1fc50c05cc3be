// Package model defines domain types for footprint daily logs and scores.
package model

// Travel modes known to the backend. Other values are passed through as-is.
const (
	ModeCar    = "car"
	ModeBike   = "bike"
	ModePublic = "public"
	ModeWalk   = "walk"
)

// Energy levels.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Locations.
const (
	LocationUrban = "urban"
	LocationRural = "rural"
)

// Seasons.
const (
	SeasonSummer = "summer"
	SeasonWinter = "winter"
)

// Option lists used by selectors, in display order.
var (
	TravelModes  = []string{ModeCar, ModeBike, ModePublic, ModeWalk}
	EnergyLevels = []string{LevelLow, LevelMedium, LevelHigh}
	Locations    = []string{LocationUrban, LocationRural}
	Seasons      = []string{SeasonSummer, SeasonWinter}
)

// MealSlot identifies one of the four meals of a day.
type MealSlot string

// Meal slots.
const (
	Morning   MealSlot = "morning"
	Afternoon MealSlot = "afternoon"
	Evening   MealSlot = "evening"
	Night     MealSlot = "night"
)

// MealSlots lists every slot in the order they are shown and saved.
var MealSlots = []MealSlot{Morning, Afternoon, Evening, Night}

// Nutrient names a portion category within a meal. The string values are the
// wire field names.
type Nutrient string

// Nutrients.
const (
	RedMeat   Nutrient = "redMeat"
	WhiteMeat Nutrient = "whiteMeat"
	Dairy     Nutrient = "dairy"
	Plant     Nutrient = "plant"
)

// Nutrients lists every nutrient category in display order.
var Nutrients = []Nutrient{RedMeat, WhiteMeat, Dairy, Plant}

// Travel is the day's travel entry.
type Travel struct {
	Mode     string  `json:"mode"`
	Distance float64 `json:"distance"`
}

// Energy is the day's household energy entry.
type Energy struct {
	Level          string  `json:"level"`
	ACHours        float64 `json:"acHours"`
	WashingMachine float64 `json:"washingMachine"`
	Location       string  `json:"location"`
	Season         string  `json:"season"`
}

// Meal holds portion counts for one meal slot.
type Meal struct {
	RedMeat   int `json:"redMeat"`
	WhiteMeat int `json:"whiteMeat"`
	Dairy     int `json:"dairy"`
	Plant     int `json:"plant"`
}

// Get returns the count for a nutrient, 0 for unknown names.
func (m Meal) Get(n Nutrient) int {
	switch n {
	case RedMeat:
		return m.RedMeat
	case WhiteMeat:
		return m.WhiteMeat
	case Dairy:
		return m.Dairy
	case Plant:
		return m.Plant
	}
	return 0
}

// Set returns a copy of m with the nutrient count replaced.
func (m Meal) Set(n Nutrient, v int) Meal {
	switch n {
	case RedMeat:
		m.RedMeat = v
	case WhiteMeat:
		m.WhiteMeat = v
	case Dairy:
		m.Dairy = v
	case Plant:
		m.Plant = v
	}
	return m
}

// IsMealEmpty reports whether every portion count in the meal is zero.
// This is the only test for "no meal logged".
func IsMealEmpty(m Meal) bool {
	return m.RedMeat == 0 && m.WhiteMeat == 0 && m.Dairy == 0 && m.Plant == 0
}

// Diet holds the four meals of a day.
type Diet struct {
	Morning   Meal `json:"morning"`
	Afternoon Meal `json:"afternoon"`
	Evening   Meal `json:"evening"`
	Night     Meal `json:"night"`
}

// Meal returns the meal for a slot.
func (d Diet) Meal(slot MealSlot) Meal {
	switch slot {
	case Morning:
		return d.Morning
	case Afternoon:
		return d.Afternoon
	case Evening:
		return d.Evening
	case Night:
		return d.Night
	}
	return Meal{}
}

// SetMeal returns a copy of d with the slot's meal replaced.
func (d Diet) SetMeal(slot MealSlot, m Meal) Diet {
	switch slot {
	case Morning:
		d.Morning = m
	case Afternoon:
		d.Afternoon = m
	case Evening:
		d.Evening = m
	case Night:
		d.Night = m
	}
	return d
}

// DailyLog is one calendar day's travel, energy and diet activity. It is the
// body sent to the save endpoint.
type DailyLog struct {
	Travel Travel `json:"travel"`
	Energy Energy `json:"energy"`
	Diet   Diet   `json:"diet"`
}

// DefaultTravel returns the travel defaults.
func DefaultTravel() Travel {
	return Travel{Mode: ModeCar}
}

// DefaultEnergy returns the energy defaults.
func DefaultEnergy() Energy {
	return Energy{
		Level:    LevelLow,
		Location: LocationUrban,
		Season:   SeasonSummer,
	}
}

// DefaultDailyLog returns a log with every field at its default.
func DefaultDailyLog() DailyLog {
	return DailyLog{
		Travel: DefaultTravel(),
		Energy: DefaultEnergy(),
	}
}
