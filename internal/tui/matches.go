package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// matchesModel is the AI match list, best score first.
type matchesModel struct {
	cursor int
}

func (m matchesModel) Update(msg tea.KeyMsg, st store.State, actions Actions) (matchesModel, tea.Cmd) {
	list := store.MatchesByScore(st)
	setStatus := func(status domain.MatchStatus) tea.Cmd {
		if m.cursor >= len(list) {
			return nil
		}
		match := list[m.cursor]
		if match.Status == status {
			return nil
		}
		return runOp("match", func(ctx context.Context) error {
			_, err := actions.UpdateMatchStatus(ctx, match.ID, status)
			return err
		})
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "l":
		return m, setStatus(domain.MatchLiked)
	case "x":
		return m, setStatus(domain.MatchRejected)
	case "enter":
		if m.cursor < len(list) && list[m.cursor].Status == domain.MatchPending {
			return m, setStatus(domain.MatchViewed)
		}
	}
	return m, nil
}

func (m matchesModel) View(st store.State, width, height int) string {
	list := store.MatchesByScore(st)
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("YOUR MATCHES") + "\n\n")
	if line := statusLine(st.Matches.Status, len(list) == 0, "matches"); line != "" {
		b.WriteString(line + "\n")
	}

	start := scrollStart(m.cursor, len(list), (height-3)/2)
	for i := start; i < len(list); i++ {
		match := list[i]
		title, place := match.PropertyID, ""
		if match.Property != nil {
			title = oneLine(match.Property.Title)
			place = listingSummary(*match.Property)
		}
		score := scoreStyle(match.Score).Render(fmt.Sprintf("%3.0f%%", match.Score))
		status := matchStyle(match.Status).Render(fmt.Sprintf("%-8s", match.Status))
		row := fmt.Sprintf("%s  %s  %s", score, status, truncStr(title, max(10, width-30)))
		if i == m.cursor {
			b.WriteString(accentStyle.Render(" > ") + selectedStyle.Render(row) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(row) + "\n")
		}

		detail := place
		if len(match.Reasons) > 0 {
			detail = strings.Join(match.Reasons, "; ")
		}
		b.WriteString("               " + metaStyle.Render(truncStr(detail, max(10, width-18))) + "\n")
	}
	return b.String()
}

func (m matchesModel) helpKeys() string {
	return helpBar("j/k", "nav", "l", "like", "x", "pass", "r", "refresh", "h", "help", "q", "quit")
}
