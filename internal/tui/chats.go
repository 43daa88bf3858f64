package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
)

// chatsModel lists conversations and shows the open one with a composer.
type chatsModel struct {
	cursor    int
	open      string // conversation id
	composing bool
	draft     string
}

func (m chatsModel) Update(msg tea.KeyMsg, st store.State, actions Actions) (chatsModel, tea.Cmd) {
	key := msg.String()
	if m.composing {
		switch key {
		case "esc":
			m.composing = false
		case "enter":
			body := strings.TrimSpace(m.draft)
			if body == "" {
				return m, nil
			}
			m.draft = ""
			id := m.open
			return m, runOp("send_message", func(ctx context.Context) error {
				_, err := actions.SendMessage(ctx, id, body)
				return err
			})
		default:
			m.draft = editRune(m.draft, key)
		}
		return m, nil
	}

	if m.open != "" {
		switch key {
		case "esc":
			m.open = ""
		case "i", "enter":
			m.composing = true
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.cursor < st.Chats.Conversations.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		ids := st.Chats.Conversations.IDs()
		if m.cursor < len(ids) {
			id := ids[m.cursor]
			m.open = id
			return m, runOp("messages", func(ctx context.Context) error {
				_, err := actions.FetchMessages(ctx, id)
				return err
			})
		}
	}
	return m, nil
}

func (m chatsModel) View(st store.State, width, height int) string {
	if m.open != "" {
		return m.threadView(st, width, height)
	}
	cs := st.Chats
	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render("CONVERSATIONS") + "\n\n")
	if line := statusLine(cs.Status, cs.Conversations.Len() == 0, "conversations"); line != "" {
		b.WriteString(line + "\n")
	}
	items := cs.Conversations.Items()
	start := scrollStart(m.cursor, len(items), height-4)
	for i := start; i < len(items); i++ {
		c := items[i]
		name := fmt.Sprintf("%-18s", truncStr(c.ParticipantName, 18))
		badge := "  "
		if c.UnreadCount > 0 {
			badge = unreadDotStyle.Render("● ")
		}
		when := ""
		if c.LastMessageAt != nil {
			when = formatTime(*c.LastMessageAt)
		}
		preview := truncStr(oneLine(c.LastMessage), max(10, width-40))
		row := badge + name + "  " + preview
		if i == m.cursor {
			b.WriteString(accentStyle.Render(" > ") + selectedStyle.Render(row) + "  " + metaStyle.Render(when) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(row) + "  " + metaStyle.Render(when) + "\n")
		}
	}
	return b.String()
}

func (m chatsModel) threadView(st store.State, width, height int) string {
	conv, _ := st.Chats.Conversations.Get(m.open)
	self := ""
	if u := store.CurrentUser(st); u != nil {
		self = u.ID
	}

	var b strings.Builder
	b.WriteString(" " + sectionHeaderStyle.Render(strings.ToUpper(conv.ParticipantName)) + "\n\n")
	msgs := st.Chats.Messages[m.open]
	if len(msgs) == 0 {
		if line := statusLine(st.Chats.MessagesStatus, true, "messages"); line != "" {
			b.WriteString(line + "\n")
		}
	}
	// Newest at the bottom, above the composer.
	rows := max(1, height-5)
	if len(msgs) > rows {
		msgs = msgs[len(msgs)-rows:]
	}
	for _, msg := range msgs {
		who := chatTextStyle.Render(truncStr(conv.ParticipantName, 12))
		if msg.SenderID == self {
			who = chatSelfStyle.Render("you")
		}
		b.WriteString(fmt.Sprintf(" %s %s  %s\n",
			metaStyle.Render(fmt.Sprintf("%8s", formatTime(msg.CreatedAt))), who,
			chatTextStyle.Render(truncStr(oneLine(msg.Body), max(10, width-28)))))
	}
	b.WriteString("\n " + renderField(">", m.draft, "press i to reply", m.composing, false) + "\n")
	return b.String()
}

func (m chatsModel) helpKeys() string {
	switch {
	case m.composing:
		return helpBar("enter", "send", "esc", "stop typing")
	case m.open != "":
		return helpBar("i", "reply", "r", "refresh", "esc", "back")
	}
	return helpBar("j/k", "nav", "enter", "open", "r", "refresh", "h", "help", "q", "quit")
}
