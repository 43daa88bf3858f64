package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// Shimmer animation for the header logo.
type shimmerTickMsg time.Time

func shimmerTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return shimmerTickMsg(t)
	})
}

// renderShimmerLogo renders "CAMPUSNEST" as a slow wave moving from
// deep teal (#12343b) to bright aqua (#5eead4).
func renderShimmerLogo(frame int) string {
	const text = "CAMPUSNEST"
	n := len(text)
	t := float64(frame)

	var out strings.Builder
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.1 - x*3.0 + math.Sin(t*0.023)*2.0

		b := math.Pow(math.Sin(phase)*0.5+0.5, 1.3)
		b = b*0.75 + math.Sin(t*0.035)*0.12 + 0.18
		if b > 1.0 {
			b = 1.0
		} else if b < 0.05 {
			b = 0.05
		}

		r := clampByte(18 + b*(94-18))
		g := clampByte(52 + b*(234-52))
		bl := clampByte(59 + b*(212-59))

		s := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", r, g, bl)))
		out.WriteString(s.Render(string(text[i])))
		if i < n-1 {
			out.WriteString(" ")
		}
	}
	return out.String()
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

var (
	// Base styles
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5eead4"))

	priceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D4A017")).
			Bold(true)

	likedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	rejectStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a1a")).
			Background(lipgloss.Color("#5eead4")).
			Padding(0, 1)

	unreadDotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5eead4")).
			Bold(true)

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8890a0")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5eead4")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#505868")).
				Italic(true)

	chatSelfStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5eead4"))

	chatTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	// Session alert box
	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#f87171")).
			Padding(1, 3)

	alertTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)
)

// bookingStyle colors a booking by lifecycle status.
func bookingStyle(s domain.BookingStatus) lipgloss.Style {
	switch s {
	case domain.BookingConfirmed:
		return likedStyle
	case domain.BookingPending:
		return priceStyle
	case domain.BookingCancelled:
		return rejectStyle
	default:
		return dimStyle
	}
}

// matchStyle colors a match by the user's decision.
func matchStyle(s domain.MatchStatus) lipgloss.Style {
	switch s {
	case domain.MatchLiked:
		return likedStyle
	case domain.MatchRejected:
		return rejectStyle
	case domain.MatchViewed:
		return normalStyle
	default:
		return dimStyle
	}
}

// scoreStyle grades a compatibility score.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 80:
		return likedStyle
	case score >= 50:
		return priceStyle
	default:
		return dimStyle
	}
}

func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}

// helpBar joins key/label pairs into a single help line.
func helpBar(pairs ...string) string {
	var entries []string
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, helpEntry(pairs[i], pairs[i+1]))
	}
	return " " + strings.Join(entries, "  ")
}

// helpItem is a selectable link in the help overlay.
type helpItem struct {
	label string
	desc  string
	url   string
}

var helpItems = []helpItem{
	{"Terms of Service", "campusnest.app/terms", "https://campusnest.app/terms"},
	{"Privacy Policy", "campusnest.app/privacy", "https://campusnest.app/privacy"},
	{"Help Center", "campusnest.app/help", "https://campusnest.app/help"},
	{"Website", "campusnest.app", "https://campusnest.app"},
}

// helpView renders the interactive help overlay with a cursor.
func helpView(cursor int) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#5eead4")).
		Bold(true).
		Render("C A M P U S N E S T")

	keys := []string{
		helpEntry("1-5", "switch tabs"),
		helpEntry("j/k", "move"),
		helpEntry("enter", "open"),
		helpEntry("r", "refresh"),
		helpEntry("L", "sign out"),
		helpEntry("q", "quit"),
	}

	var b strings.Builder
	b.WriteString("\n  " + title + "\n\n")
	b.WriteString("  " + sectionHeaderStyle.Render("KEYS") + "\n")
	for _, k := range keys {
		b.WriteString("    " + k + "\n")
	}
	b.WriteString("\n  " + sectionHeaderStyle.Render("LINKS") + "\n")
	for i, item := range helpItems {
		label := normalStyle.Render(fmt.Sprintf("%-20s", item.label))
		prefix := "    "
		if i == cursor {
			label = selectedStyle.Render(fmt.Sprintf("%-20s", item.label))
			prefix = "  " + accentStyle.Render("> ")
		}
		b.WriteString(prefix + label + " " + metaStyle.Render(item.desc) + "\n")
	}
	return b.String()
}
