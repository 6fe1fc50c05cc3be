// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatKg formats kg CO₂ with one decimal and a unit.
// e.g., 4.96 -> "5.0 kg"
func FormatKg(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return fmt.Sprintf("%.1f kg", v)
}

// FormatAverage formats the server's daily average as it was sent, with a
// unit. e.g., 6.1 -> "6.1 kg", 0 -> "0 kg"
func FormatAverage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + " kg"
}

// FormatDays formats a day count the way the profile shows it.
// e.g., 1 -> "1 days", 12 -> "12 days"
func FormatDays(n int) string {
	return strconv.Itoa(n) + " days"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatChange formats a week-over-week change where positive means lower
// emissions. e.g., 50 -> "-50%", -20 -> "+20%", 0 -> "±0%"
func FormatChange(improvement int) string {
	switch {
	case improvement > 0:
		return fmt.Sprintf("-%d%%", improvement)
	case improvement < 0:
		return fmt.Sprintf("+%d%%", -improvement)
	default:
		return "±0%"
	}
}

// FormatDistance formats kilometers, dropping a trailing ".0".
func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64) + " km"
}

// FormatHours formats a duration in hours. e.g., 1 -> "1 h", 2.5 -> "2.5 h"
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " h"
}

// Title capitalizes an enum value for display. e.g., "public" -> "Public"
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
