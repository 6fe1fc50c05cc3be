// Package form binds a DailyLog to a set of editable view fields.
package form

import (
	"errors"
	"fmt"
	"sync"

	"github.com/theirongolddev/footprint/internal/model"
)

// ErrMissingField is returned when the view has no element for a field id.
var ErrMissingField = errors.New("form: field not present")

// Field ids.
const (
	FieldTravelMode     = "travelMode"
	FieldTravelDistance = "travelDistance"
	FieldEnergyLevel    = "energyLevel"
	FieldACHours        = "acHours"
	FieldWashingMachine = "washingMachine"
	FieldLocation       = "location"
	FieldSeason         = "season"
)

// NutrientField returns the id of a meal count field, e.g. "redMeat_morning".
func NutrientField(n model.Nutrient, slot model.MealSlot) string {
	return fmt.Sprintf("%s_%s", n, slot)
}

// NoMealField returns the id of a slot's "no meal logged" checkbox.
func NoMealField(slot model.MealSlot) string {
	return "noMeal_" + string(slot)
}

// Fields is the view surface the form reads and writes. Every method returns
// ErrMissingField (possibly wrapped) when the id has no element.
type Fields interface {
	Value(id string) (string, error)
	SetValue(id, value string) error
	Checked(id string) (bool, error)
	SetChecked(id string, checked bool) error
	SetDisabled(id string, disabled bool) error
}

// AllFieldIDs lists every value field (not checkboxes) in form order.
func AllFieldIDs() []string {
	ids := []string{
		FieldTravelMode, FieldTravelDistance,
		FieldEnergyLevel, FieldACHours, FieldWashingMachine, FieldLocation, FieldSeason,
	}
	for _, slot := range model.MealSlots {
		for _, n := range model.Nutrients {
			ids = append(ids, NutrientField(n, slot))
		}
	}
	return ids
}

type fieldState struct {
	value    string
	checked  bool
	disabled bool
	checkbox bool
}

// MapFields is an in-memory Fields implementation. The zero value is not
// usable; create one with NewMapFields.
type MapFields struct {
	mu     sync.RWMutex
	fields map[string]*fieldState
}

// NewMapFields returns a MapFields holding every form field and checkbox.
func NewMapFields() *MapFields {
	m := &MapFields{fields: make(map[string]*fieldState)}
	for _, id := range AllFieldIDs() {
		m.fields[id] = &fieldState{}
	}
	for _, slot := range model.MealSlots {
		m.fields[NoMealField(slot)] = &fieldState{checkbox: true}
	}
	return m
}

// Remove drops a field, as if the view never rendered it.
func (m *MapFields) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.fields, id)
}

// Disabled reports whether a field is disabled. Missing fields report false.
func (m *MapFields) Disabled(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if f, ok := m.fields[id]; ok {
		return f.disabled
	}
	return false
}

func (m *MapFields) lookup(id string) (*fieldState, error) {
	f, ok := m.fields[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingField, id)
	}
	return f, nil
}

// Value implements Fields.
func (m *MapFields) Value(id string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	return f.value, nil
}

// SetValue implements Fields.
func (m *MapFields) SetValue(id, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id)
	if err != nil {
		return err
	}
	f.value = value
	return nil
}

// Checked implements Fields.
func (m *MapFields) Checked(id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := m.lookup(id)
	if err != nil {
		return false, err
	}
	return f.checked, nil
}

// SetChecked implements Fields.
func (m *MapFields) SetChecked(id string, checked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id)
	if err != nil {
		return err
	}
	f.checked = checked
	return nil
}

// SetDisabled implements Fields.
func (m *MapFields) SetDisabled(id string, disabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, err := m.lookup(id)
	if err != nil {
		return err
	}
	f.disabled = disabled
	return nil
}
