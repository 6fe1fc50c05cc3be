package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/footprint/internal/cli"
	"github.com/theirongolddev/footprint/internal/dashboard"
	"github.com/theirongolddev/footprint/internal/form"
	"github.com/theirongolddev/footprint/internal/model"
	"github.com/theirongolddev/footprint/internal/presenter"
	"github.com/theirongolddev/footprint/internal/trend"
	"github.com/theirongolddev/footprint/internal/tui/components"
	"github.com/theirongolddev/footprint/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// ─── Dashboard ──────────────────────────────────────────────────

func (a App) renderDashboard(cw int) string {
	t := theme.Active
	d := a.view.dash

	headerStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Background).Bold(true)
	var b strings.Builder
	b.WriteString(headerStyle.Render(" " + a.view.header))
	b.WriteString("\n")

	// Score card: total, status and category shares.
	scoreStyle := lipgloss.NewStyle().Foreground(components.ColorForTotal(d.Score.Total)).Background(t.Surface).Bold(true)
	unitStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(d.Status.Foreground)).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	barW := max(10, components.CardInnerWidth(cw)-28)
	var score strings.Builder
	score.WriteString(scoreStyle.Render(d.Total))
	score.WriteString(unitStyle.Render(" kg CO₂ today  "))
	score.WriteString(statusStyle.Render(d.Status.Label))
	score.WriteString("\n\n")
	for _, c := range []struct {
		name  string
		value float64
		text  string
		color lipgloss.Color
	}{
		{"🚗 Travel", d.Score.Travel, d.Travel, t.Travel},
		{"⚡ Energy", d.Score.Energy, d.Energy, t.Energy},
		{"🍽️ Diet", d.Score.Diet, d.Diet, t.Diet},
	} {
		score.WriteString(unitStyle.Render(padRight(c.name, 11)))
		score.WriteString(components.ShareBar(c.value, d.Score.Total, c.color, barW))
		score.WriteString(unitStyle.Render(fmt.Sprintf("  %6s kg", c.text)))
		score.WriteString("\n")
	}
	b.WriteString(components.ContentCard("Today's footprint", strings.TrimRight(score.String(), "\n"), cw))
	b.WriteString("\n")

	widths := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Suggestions", a.renderTips(d.Suggestions), widths[0]),
		components.ContentCard("Badges", a.renderBadgeStrip(), widths[1]),
	}))
	return b.String()
}

func (a App) renderTips(tips []presenter.Suggestion) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	lines := make([]string, len(tips))
	for i, tip := range tips {
		lines[i] = style.Render(tip.Icon + " " + tip.Text)
	}
	return strings.Join(lines, "\n")
}

func (a App) renderBadgeStrip() string {
	t := theme.Active
	earnedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	lockedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	lines := make([]string, 0, len(presenter.AllBadges))
	for _, badge := range presenter.AllBadges {
		if a.view.badges.Has(badge.ID) {
			lines = append(lines, earnedStyle.Render(badge.Icon+" "+badge.Name))
		} else {
			lines = append(lines, lockedStyle.Render("·· "+badge.Name))
		}
	}
	return strings.Join(lines, "\n")
}

// ─── Travel / Energy / Diet ─────────────────────────────────────

func (a App) renderLogScreen(cw int) string {
	rows := a.currentRows()
	screen := a.view.screen

	if screen != dashboard.ScreenDiet {
		lines := make([]string, 0, len(rows))
		for i, r := range rows {
			lines = append(lines, a.renderRow(r, i == a.editor.cursor, cw))
		}
		return components.FocusCard(screenHeading(screen), strings.Join(lines, "\n"), cw)
	}

	var cards []string
	var save string
	for _, slot := range model.MealSlots {
		var title string
		var body []string
		focused := false
		for i, r := range rows {
			if r.slot != slot || r.kind == rowSave {
				continue
			}
			if i == a.editor.cursor {
				focused = true
			}
			if r.kind == rowCard {
				title = a.renderRow(r, i == a.editor.cursor, cw)
				continue
			}
			body = append(body, a.renderRow(r, i == a.editor.cursor, cw))
		}
		if len(body) == 0 {
			body = append(body, a.mealSummary(slot))
		}
		render := components.ContentCard
		if focused {
			render = components.FocusCard
		}
		cards = append(cards, render(title, strings.Join(body, "\n"), cw))
	}
	for i, r := range rows {
		if r.kind == rowSave {
			save = a.renderRow(r, i == a.editor.cursor, cw)
		}
	}

	heading := lipgloss.NewStyle().Foreground(theme.Active.TextPrimary).Bold(true).Render(" " + screenHeading(screen))
	return heading + "\n" + strings.Join(cards, "\n") + "\n" + save
}

func screenHeading(s dashboard.Screen) string {
	switch s {
	case dashboard.ScreenTravel:
		return "🚗 How did you get around today?"
	case dashboard.ScreenEnergy:
		return "⚡ Home energy use"
	case dashboard.ScreenDiet:
		return "🍽️ What did you eat today?"
	}
	return s.Title()
}

// mealSummary is the collapsed card body: the slot's counts as entered, or
// a note that nothing is logged.
func (a App) mealSummary(slot model.MealSlot) string {
	t := theme.Active
	style := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	meal := form.ReadDiet(a.view, model.Diet{}).Meal(slot)
	if model.IsMealEmpty(meal) {
		return style.Render("No meal logged")
	}
	parts := make([]string, 0, len(model.Nutrients))
	for _, n := range model.Nutrients {
		if c := meal.Get(n); c > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", nutrientLabel(n), c))
		}
	}
	return style.Render(strings.Join(parts, " · "))
}

func (a App) renderRow(r formRow, focused bool, cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	if focused {
		labelStyle = labelStyle.Foreground(t.TextPrimary)
	}

	cursor := dimStyle.Render("  ")
	if focused {
		cursor = cursorStyle.Render("› ")
	}

	labelW := min(26, components.CardInnerWidth(cw)/2)
	switch r.kind {
	case rowCard:
		arrow := "▸ "
		if a.view.expanded[r.slot] {
			arrow = "▾ "
		}
		return cursor + valueStyle.Render(arrow+r.label)

	case rowSave:
		btn := lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Background(t.SurfaceHover).
			Padding(0, 2)
		if focused {
			btn = btn.Foreground(t.Background).Background(t.Accent).Bold(true)
		}
		return "\n" + cursor + btn.Render(r.label)

	case rowCheck:
		checked, _ := a.view.Checked(r.id)
		box := "[ ]"
		if checked {
			box = "[x]"
		}
		return cursor + valueStyle.Render(box) + labelStyle.Render(" "+r.label)

	case rowEnum:
		value, _ := a.view.Value(r.id)
		var choice string
		if focused {
			choice = cursorStyle.Render("◂ ") + valueStyle.Render(cli.Title(value)) + cursorStyle.Render(" ▸")
		} else {
			choice = valueStyle.Render(cli.Title(value))
		}
		return cursor + labelStyle.Render(padRight(r.label, labelW)) + choice

	default: // rowNumber
		value, _ := a.view.Value(r.id)
		field := valueStyle.Render(value)
		switch {
		case a.view.Disabled(r.id):
			field = dimStyle.Render(value + " (no meal)")
		case focused && a.editor.editing:
			field = lipgloss.NewStyle().
				Background(t.SurfaceHover).
				Foreground(t.TextPrimary).
				Render(a.editor.input.View())
		}
		return cursor + labelStyle.Render(padRight(r.label, labelW)) + field
	}
}

// ─── Trends ─────────────────────────────────────────────────────

func (a App) renderTrends(cw int) string {
	t := theme.Active
	w := a.view.week

	msgStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if w == nil {
		return components.ContentCard("Last 7 days", mutedStyle.Render(trend.NoDataMessage), cw)
	}

	inner := components.CardInnerWidth(cw)
	chart := components.BarChart(w.Values, w.Labels, components.ColorForTotal, inner, 10)

	var b strings.Builder
	b.WriteString(components.ContentCard("Last 7 days · kg CO₂", chart, cw))
	b.WriteString("\n")

	var summary strings.Builder
	summary.WriteString(msgStyle.Render(w.Message()))
	summary.WriteString("\n")
	summary.WriteString(mutedStyle.Render(fmt.Sprintf("Week total %s · daily %s",
		cli.FormatKg(w.Total()), cli.RenderSparkline(w.Values))))
	if w.Comparable {
		summary.WriteString("\n")
		summary.WriteString(mutedStyle.Render(fmt.Sprintf("Last 3 days avg %s vs %s before (%s)",
			cli.FormatKg(w.Comparison.RecentAvg),
			cli.FormatKg(w.Comparison.OlderAvg),
			cli.FormatChange(w.Comparison.Percent))))
	}
	b.WriteString(components.ContentCard("Trend", summary.String(), cw))
	return b.String()
}

// ─── Profile ────────────────────────────────────────────────────

func (a App) renderProfile(cw int) string {
	t := theme.Active
	var b strings.Builder

	stats := model.Stats{}
	if a.view.stats != nil {
		stats = *a.view.stats
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "🔥 Current streak", Value: cli.FormatDays(stats.Streak), Color: t.Orange},
		{Label: "📅 Days logged", Value: cli.FormatDays(stats.TotalDays)},
		{Label: "📊 Daily average", Value: cli.FormatAverage(stats.AvgDaily), Color: components.ColorForTotal(stats.AvgDaily)},
	}, cw))
	b.WriteString("\n")

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	var next string
	if badge, ok := presenter.NextStreakBadge(stats.Streak); ok {
		barW := max(10, components.CardInnerWidth(cw)-16)
		next = mutedStyle.Render(fmt.Sprintf("Next: %s %s", badge.Icon, badge.Name)) + "\n" +
			components.StreakBar(stats.Streak, badge.StreakDays, barW)
	} else {
		next = mutedStyle.Render("Every streak badge earned 🎉")
	}
	b.WriteString(components.ContentCard("Streak", next, cw))
	b.WriteString("\n")

	earnedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	lockedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	lines := make([]string, 0, len(presenter.AllBadges))
	for _, badge := range presenter.AllBadges {
		if a.view.badges.Has(badge.ID) {
			lines = append(lines, earnedStyle.Render(badge.Icon+" "+padRight(badge.Name, 16))+descStyle.Render(badge.Description))
		} else {
			lines = append(lines, lockedStyle.Render("🔒 "+padRight(badge.Name, 16)+badge.Description))
		}
	}
	b.WriteString(components.ContentCard("Badges", strings.Join(lines, "\n"), cw))
	return b.String()
}

// padRight pads s to w display columns.
func padRight(s string, w int) string {
	return s + strings.Repeat(" ", max(0, w-lipgloss.Width(s)))
}
