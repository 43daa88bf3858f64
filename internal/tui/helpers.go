package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// formatTime renders a relative timestamp for lists and chat.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// oneLine collapses newlines and runs of whitespace so free text fits a row.
func oneLine(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// formatPrice renders a monthly rent, e.g. "$850/mo".
func formatPrice(amount float64, currency string) string {
	sym := "$"
	switch strings.ToUpper(currency) {
	case "", "USD":
	case "EUR":
		sym = "€"
	case "GBP":
		sym = "£"
	default:
		sym = strings.ToUpper(currency) + " "
	}
	return fmt.Sprintf("%s%.0f/mo", sym, amount)
}

// stayRange renders a booking's move-in and optional move-out dates.
func stayRange(b domain.Booking) string {
	const layout = "Jan 2 2006"
	if b.MoveOut == nil {
		return b.MoveIn.Format(layout) + " onward"
	}
	return b.MoveIn.Format(layout) + " to " + b.MoveOut.Format(layout)
}

// listingSummary is the one-line description of a property.
func listingSummary(p domain.Property) string {
	parts := []string{}
	if p.PropertyType != "" {
		parts = append(parts, p.PropertyType)
	}
	if p.Bedrooms > 0 {
		parts = append(parts, fmt.Sprintf("%dbd", p.Bedrooms))
	}
	if p.City != "" {
		parts = append(parts, p.City)
	}
	return strings.Join(parts, " . ")
}

// clampCursor keeps a list cursor within [0, n).
func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
