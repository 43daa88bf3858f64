package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
)

// inboxModel is the notifications tab.
type inboxModel struct {
	cursor int
}

func (m inboxModel) Update(msg tea.KeyMsg, st store.State, actions Actions) (inboxModel, tea.Cmd) {
	ns := st.Notifications
	switch msg.String() {
	case "j", "down":
		if m.cursor < ns.Items.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		ids := ns.Items.IDs()
		if m.cursor >= len(ids) {
			return m, nil
		}
		n, _ := ns.Items.Get(ids[m.cursor])
		if n.Read {
			return m, nil
		}
		return m, runOp("mark_read", func(ctx context.Context) error {
			return actions.MarkAsRead(ctx, n.ID)
		})
	case "a":
		if ns.UnreadCount > 0 {
			return m, runOp("mark_all_read", actions.MarkAllAsRead)
		}
	}
	return m, nil
}

func (m inboxModel) View(st store.State, width, height int) string {
	ns := st.Notifications
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("NOTIFICATIONS") + metaStyle.Render(fmt.Sprintf("  %d unread", ns.UnreadCount)) + "\n\n")
	if line := statusLine(ns.Status, ns.Items.Len() == 0, "notifications"); line != "" {
		b.WriteString(line + "\n")
	}
	items := ns.Items.Items()
	start := scrollStart(m.cursor, len(items), height-4)
	for i := start; i < len(items); i++ {
		n := items[i]
		dot := "  "
		style := dimStyle
		if !n.Read {
			dot = unreadDotStyle.Render("● ")
			style = normalStyle
		}
		text := oneLine(n.Title)
		if n.Body != "" {
			text += " . " + oneLine(n.Body)
		}
		row := dot + style.Render(truncStr(text, max(10, width-20)))
		prefix := "   "
		if i == m.cursor {
			prefix = accentStyle.Render(" > ")
		}
		b.WriteString(prefix + row + "  " + metaStyle.Render(formatTime(n.CreatedAt)) + "\n")
	}
	return b.String()
}

func (m inboxModel) helpKeys() string {
	return helpBar("j/k", "nav", "enter", "mark read", "a", "read all", "h", "help", "q", "quit")
}
