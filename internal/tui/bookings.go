package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
)

// bookingsModel lists the user's bookings, newest page first.
type bookingsModel struct {
	cursor int
}

func (m bookingsModel) Update(msg tea.KeyMsg, st store.State, actions Actions) (bookingsModel, tea.Cmd) {
	bs := st.Bookings
	switch msg.String() {
	case "j", "down":
		if m.cursor < bs.Items.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "x":
		ids := bs.Items.IDs()
		if m.cursor >= len(ids) {
			return m, nil
		}
		b, _ := bs.Items.Get(ids[m.cursor])
		if !b.Status.Cancellable() {
			return m, nil
		}
		return m, runOp("cancel_booking", func(ctx context.Context) error {
			_, err := actions.CancelBooking(ctx, b.ID)
			return err
		})
	case "m":
		if bs.Cursor.HasMore && !bs.Status.Loading {
			next := bs.Cursor.CurrentPage + 1
			return m, runOp("bookings", func(ctx context.Context) error {
				_, err := actions.FetchBookings(ctx, next)
				return err
			})
		}
	}
	return m, nil
}

func (m bookingsModel) View(st store.State, width, height int) string {
	bs := st.Bookings
	var b strings.Builder
	active := len(store.ActiveBookings(st))
	b.WriteString(" " + sectionHeaderStyle.Render("BOOKINGS") + metaStyle.Render(fmt.Sprintf("  %d active", active)) + "\n\n")
	if line := statusLine(bs.Status, bs.Items.Len() == 0, "bookings"); line != "" {
		b.WriteString(line + "\n")
	}

	items := bs.Items.Items()
	start := scrollStart(m.cursor, len(items), height-4)
	for i := start; i < len(items); i++ {
		bk := items[i]
		title := bk.PropertyID
		if bk.Property != nil {
			title = oneLine(bk.Property.Title)
		}
		status := bookingStyle(bk.Status).Render(fmt.Sprintf("%-9s", bk.Status))
		row := fmt.Sprintf("%s  %s  %s", status, truncStr(title, max(10, width-48)), metaStyle.Render(stayRange(bk)))
		if i == m.cursor {
			b.WriteString(accentStyle.Render(" > ") + selectedStyle.Render(row) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(row) + "\n")
		}
	}
	if bs.Cursor.HasMore {
		b.WriteString("\n   " + dimStyle.Render("m for more") + "\n")
	}
	return b.String()
}

func (m bookingsModel) helpKeys() string {
	return helpBar("j/k", "nav", "x", "cancel", "m", "more", "r", "refresh", "h", "help", "q", "quit")
}
