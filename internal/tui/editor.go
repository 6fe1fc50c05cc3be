package tui

import (
	"log"
	"strconv"
	"strings"

	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type rowKind int

const (
	rowEnum   rowKind = iota // cycles through options
	rowNumber                // free text, edited with a textinput
	rowCheck                 // no-meal checkbox
	rowCard                  // meal card header, toggles expansion
	rowSave                  // section save button
)

// formRow is one focusable line on an edit screen.
type formRow struct {
	kind    rowKind
	id      string
	label   string
	options []string
	slot    model.MealSlot
}

// rowsFor lists the focusable rows of an edit screen in display order.
// Collapsed meal cards contribute only their header.
func rowsFor(screen dashboard.Screen, expanded map[model.MealSlot]bool) []formRow {
	switch screen {
	case dashboard.ScreenTravel:
		return []formRow{
			{kind: rowEnum, id: form.FieldTravelMode, label: "Mode", options: model.TravelModes},
			{kind: rowNumber, id: form.FieldTravelDistance, label: "Distance (km)"},
			{kind: rowSave, label: "Save travel"},
		}
	case dashboard.ScreenEnergy:
		return []formRow{
			{kind: rowEnum, id: form.FieldEnergyLevel, label: "Usage level", options: model.EnergyLevels},
			{kind: rowNumber, id: form.FieldACHours, label: "AC (hours)"},
			{kind: rowNumber, id: form.FieldWashingMachine, label: "Washing machine (hours)"},
			{kind: rowEnum, id: form.FieldLocation, label: "Location", options: model.Locations},
			{kind: rowEnum, id: form.FieldSeason, label: "Season", options: model.Seasons},
			{kind: rowSave, label: "Save energy"},
		}
	case dashboard.ScreenDiet:
		var rows []formRow
		for _, slot := range model.MealSlots {
			rows = append(rows, formRow{kind: rowCard, label: mealTitle(slot), slot: slot})
			if !expanded[slot] {
				continue
			}
			rows = append(rows, formRow{kind: rowCheck, id: form.NoMealField(slot), label: "No meal", slot: slot})
			for _, n := range model.Nutrients {
				rows = append(rows, formRow{
					kind:  rowNumber,
					id:    form.NutrientField(n, slot),
					label: nutrientLabel(n),
					slot:  slot,
				})
			}
		}
		return append(rows, formRow{kind: rowSave, label: "Save diet"})
	}
	return nil
}

// saveSection maps an edit screen to the section its save action reads.
func saveSection(screen dashboard.Screen) (dashboard.Section, bool) {
	switch screen {
	case dashboard.ScreenTravel:
		return dashboard.SectionTravel, true
	case dashboard.ScreenEnergy:
		return dashboard.SectionEnergy, true
	case dashboard.ScreenDiet:
		return dashboard.SectionDiet, true
	}
	return 0, false
}

func mealTitle(slot model.MealSlot) string {
	switch slot {
	case model.Morning:
		return "Morning"
	case model.Afternoon:
		return "Afternoon"
	case model.Evening:
		return "Evening"
	case model.Night:
		return "Night"
	}
	return string(slot)
}

func nutrientLabel(n model.Nutrient) string {
	switch n {
	case model.RedMeat:
		return "Red meat"
	case model.WhiteMeat:
		return "White meat"
	case model.Dairy:
		return "Dairy"
	case model.Plant:
		return "Plant-based"
	}
	return string(n)
}

// editorState is the cursor and the in-progress text edit of the current
// edit screen.
type editorState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newFieldInput(value string) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 12
	ti.Width = 12
	ti.Prompt = ""
	ti.Validate = func(s string) error {
		if strings.ContainsFunc(s, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.'
		}) {
			return strconv.ErrSyntax
		}
		return nil
	}
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return ti
}

func (a App) currentRows() []formRow {
	return rowsFor(a.view.screen, a.view.expanded)
}

func (a App) focusedRow() (formRow, bool) {
	rows := a.currentRows()
	if a.editor.cursor < 0 || a.editor.cursor >= len(rows) {
		return formRow{}, false
	}
	return rows[a.editor.cursor], true
}

// updateEditor handles keys on the travel, energy and diet screens. It
// reports false when the key is not an editor key.
func (a App) updateEditor(msg tea.KeyMsg) (App, tea.Cmd, bool) {
	if a.editor.editing {
		a, cmd := a.updateFieldInput(msg)
		return a, cmd, true
	}

	rows := a.currentRows()
	row, ok := a.focusedRow()
	if !ok {
		a.editor.cursor = 0
		return a, nil, false
	}

	switch msg.String() {
	case "j", "down":
		if a.editor.cursor < len(rows)-1 {
			a.editor.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.editor.cursor > 0 {
			a.editor.cursor--
		}
		return a, nil, true
	case "g":
		a.editor.cursor = 0
		return a, nil, true
	case "G":
		a.editor.cursor = len(rows) - 1
		return a, nil, true
	case "ctrl+s":
		a, cmd := a.save()
		return a, cmd, true
	case "l", "right":
		if row.kind == rowEnum {
			a.cycleEnum(row, 1)
			return a, nil, true
		}
	case "h", "left":
		if row.kind == rowEnum {
			a.cycleEnum(row, -1)
			return a, nil, true
		}
	case "+", "=":
		if row.kind == rowNumber {
			a.stepNumber(row, 1)
			return a, nil, true
		}
	case "-":
		if row.kind == rowNumber {
			a.stepNumber(row, -1)
			return a, nil, true
		}
	case "enter", " ":
		return a.activateRow(row)
	}
	return a, nil, false
}

func (a App) activateRow(row formRow) (App, tea.Cmd, bool) {
	switch row.kind {
	case rowEnum:
		a.cycleEnum(row, 1)
	case rowNumber:
		if a.view.Disabled(row.id) {
			return a, nil, true
		}
		value, _ := a.view.Value(row.id)
		a.editor.editing = true
		a.editor.input = newFieldInput(value)
		return a, textinput.Blink, true
	case rowCheck:
		checked, err := a.view.Checked(row.id)
		if err != nil {
			log.Printf("footprint: %v", err)
			return a, nil, true
		}
		_ = a.view.SetChecked(row.id, !checked)
		a.ctrl.ToggleNoMeal(row.slot)
	case rowCard:
		a.ctrl.ToggleDietCard(row.slot)
	case rowSave:
		a, cmd := a.save()
		return a, cmd, true
	}
	return a, nil, true
}

func (a App) updateFieldInput(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		if row, ok := a.focusedRow(); ok {
			a.setField(row.id, strings.TrimSpace(a.editor.input.Value()))
		}
		a.editor.editing = false
		return a, nil
	case "esc":
		a.editor.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.editor.input, cmd = a.editor.input.Update(msg)
	return a, cmd
}

func (a App) cycleEnum(row formRow, dir int) {
	if len(row.options) == 0 {
		return
	}
	current, _ := a.view.Value(row.id)
	idx := 0
	for i, o := range row.options {
		if o == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(row.options)) % len(row.options)
	a.setField(row.id, row.options[idx])
}

func (a App) stepNumber(row formRow, delta float64) {
	if a.view.Disabled(row.id) {
		return
	}
	current, _ := a.view.Value(row.id)
	v := form.ParseAmount(current) + delta
	if v < 0 {
		v = 0
	}
	a.setField(row.id, strconv.FormatFloat(v, 'f', -1, 64))
}

// setField writes a field and records that the user is editing.
func (a App) setField(id, value string) {
	if err := a.view.SetValue(id, value); err != nil {
		log.Printf("footprint: %v", err)
		return
	}
	if section, ok := saveSection(a.view.screen); ok {
		a.ctrl.MarkEditing(section)
	}
}

// save starts the current screen's save action.
func (a App) save() (App, tea.Cmd) {
	section, ok := saveSection(a.view.screen)
	if !ok {
		return a, nil
	}
	ticket, entry := a.ctrl.BeginSave(section)
	a.pending++
	return a, saveCmd(a.backend, a.session, ticket, entry)
}
