package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
)

type loginField int

const (
	fieldEmail loginField = iota
	fieldPassword
)

// loginModel is the sign-in form shown while unauthenticated.
type loginModel struct {
	email      string
	password   string
	focus      loginField
	submitting bool
}

func (m loginModel) Update(msg tea.KeyMsg, actions Actions, life Lifecycle) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		return m, nil
	case "enter":
		if m.focus == fieldEmail {
			m.focus = fieldPassword
			return m, nil
		}
		return m.submit(actions, life)
	}
	if m.focus == fieldEmail {
		m.email = editRune(m.email, msg.String())
	} else {
		m.password = editRune(m.password, msg.String())
	}
	return m, nil
}

// submit signs in and, once the session is live, loads the user's data.
func (m loginModel) submit(actions Actions, life Lifecycle) (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email)
	if email == "" || m.password == "" {
		return m, nil
	}
	m.submitting = true
	req := client.LoginRequest{Email: email, Password: m.password}
	return m, runOp("login", func(ctx context.Context) error {
		if _, err := actions.Login(ctx, req); err != nil {
			return err
		}
		return life.OnLogin(ctx)
	})
}

func (m loginModel) View(st store.State) string {
	var b strings.Builder
	b.WriteString("\n  " + sectionHeaderStyle.Render("SIGN IN") + "\n\n")
	b.WriteString("  " + renderField("email   ", m.email, "you@university.edu", m.focus == fieldEmail && !m.submitting, false) + "\n")
	b.WriteString("  " + renderField("password", m.password, "", m.focus == fieldPassword && !m.submitting, true) + "\n\n")
	switch {
	case m.submitting || st.Auth.IsLoading:
		b.WriteString("  " + dimStyle.Render("signing in...") + "\n")
	case st.Auth.Error != "":
		b.WriteString("  " + errorStyle.Render(st.Auth.Error) + "\n")
	}
	b.WriteString("\n  " + metaStyle.Render("no account yet? run: campusnest register") + "\n")
	return b.String()
}
