package syncclient

import (
	"encoding/json"

	"github.com/theirongolddev/footprint/internal/model"
)

// envelope is the fields every endpoint response shares.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TodayResponse is the raw get-today body.
type TodayResponse struct {
	envelope
	Log *TodayLog `json:"log"`
}

// TodayLog is the stored log for today. Sections are kept raw so one
// malformed section does not discard the others.
type TodayLog struct {
	Travel json.RawMessage `json:"travel"`
	Energy json.RawMessage `json:"energy"`
	Diet   json.RawMessage `json:"diet"`
	CO2    *RawScore       `json:"co2"`
}

// SaveResponse is the raw save-log body.
type SaveResponse struct {
	envelope
	CO2 *RawScore `json:"co2"`
}

// WeeklyResponse is the raw get-weekly body.
type WeeklyResponse struct {
	envelope
	Logs []RawWeeklyEntry `json:"logs"`
}

// RawWeeklyEntry is one stored day; the server sends the full document.
type RawWeeklyEntry struct {
	Date string    `json:"date"`
	CO2  *RawScore `json:"co2"`
}

// StatsResponse is the raw get-stats body.
type StatsResponse struct {
	envelope
	Stats *RawStats `json:"stats"`
}

// RawStats keeps numbers raw; avg_daily is 0 (int) for new accounts.
type RawStats struct {
	Streak    json.RawMessage `json:"streak"`
	TotalDays json.RawMessage `json:"total_days"`
	AvgDaily  json.RawMessage `json:"avg_daily"`
}

// RawScore is a CO2Score whose components may be numbers, null, missing or
// of the wrong type.
type RawScore struct {
	Travel json.RawMessage `json:"travel"`
	Energy json.RawMessage `json:"energy"`
	Diet   json.RawMessage `json:"diet"`
	Total  json.RawMessage `json:"total"`
}

// Today is the decoded get-today result.
type Today struct {
	Log   model.DailyLog
	Score model.CO2Score
}

// Score converts a raw score; anything unreadable is 0.
func (r *RawScore) Score() model.CO2Score {
	if r == nil {
		return model.CO2Score{}
	}
	return model.CO2Score{
		Travel: parseNumber(r.Travel),
		Energy: parseNumber(r.Energy),
		Diet:   parseNumber(r.Diet),
		Total:  parseNumber(r.Total),
	}
}

// Stats converts raw stats.
func (r *RawStats) Stats() model.Stats {
	if r == nil {
		return model.Stats{}
	}
	return model.Stats{
		Streak:    int(parseNumber(r.Streak)),
		TotalDays: int(parseNumber(r.TotalDays)),
		AvgDaily:  parseNumber(r.AvgDaily),
	}
}

// Partial decodes the log sections into a partial log. Fields are read one
// at a time: a field of the wrong type is absent, and so is a section that
// is not an object.
func (l *TodayLog) Partial() *model.PartialDailyLog {
	if l == nil {
		return nil
	}
	p := &model.PartialDailyLog{}
	if f, ok := objectFields(l.Travel); ok {
		p.Travel = &model.PartialTravel{
			Mode:     f.text("mode"),
			Distance: f.number("distance"),
		}
	}
	if f, ok := objectFields(l.Energy); ok {
		p.Energy = &model.PartialEnergy{
			Level:          f.text("level"),
			ACHours:        f.number("acHours"),
			WashingMachine: f.number("washingMachine"),
			Location:       f.text("location"),
			Season:         f.text("season"),
		}
	}
	if f, ok := objectFields(l.Diet); ok {
		p.Diet = &model.PartialDiet{
			Morning:   f.meal("morning"),
			Afternoon: f.meal("afternoon"),
			Evening:   f.meal("evening"),
			Night:     f.meal("night"),
		}
	}
	return p
}

// fields is one JSON object with its values left raw.
type fields map[string]json.RawMessage

func objectFields(raw json.RawMessage) (fields, bool) {
	var f fields
	if err := json.Unmarshal(raw, &f); err != nil || f == nil {
		return nil, false
	}
	return f, true
}

// decodeField decodes f[key] into a new T. Missing keys, null and values of
// another type give nil.
func decodeField[T any](f fields, key string) *T {
	raw, ok := f[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return &v
}

func (f fields) text(key string) *string    { return decodeField[string](f, key) }
func (f fields) number(key string) *float64 { return decodeField[float64](f, key) }

func (f fields) meal(key string) *model.PartialMeal {
	m, ok := objectFields(f[key])
	if !ok {
		return nil
	}
	return &model.PartialMeal{
		RedMeat:   decodeField[int](m, "redMeat"),
		WhiteMeat: decodeField[int](m, "whiteMeat"),
		Dairy:     decodeField[int](m, "dairy"),
		Plant:     decodeField[int](m, "plant"),
	}
}

// parseNumber reads a JSON number. Numeric strings, null and anything else
// give 0.
func parseNumber(raw json.RawMessage) float64 {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0
	}
	return f
}
