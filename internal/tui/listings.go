package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/domain"
)

var clipboardWrite = clipboard.WriteAll

// listingsModel is the property search tab.
type listingsModel struct {
	cursor    int
	searching bool
	query     string
	detail    string // id of the open listing, "" for the list
}

func (m listingsModel) selected(st store.State) (domain.Property, bool) {
	if m.detail != "" {
		if p := st.Properties.Selected; p != nil && p.ID == m.detail {
			return *p, true
		}
		return st.Properties.Items.Get(m.detail)
	}
	ids := st.Properties.Items.IDs()
	if m.cursor < 0 || m.cursor >= len(ids) {
		return domain.Property{}, false
	}
	return st.Properties.Items.Get(ids[m.cursor])
}

func (m listingsModel) Update(msg tea.KeyMsg, st store.State, actions Actions) (listingsModel, tea.Cmd) {
	key := msg.String()
	if m.searching {
		switch key {
		case "esc":
			m.searching = false
		case "enter":
			m.searching = false
			m.cursor = 0
			f := st.Properties.Filters
			f.Search = strings.TrimSpace(m.query)
			return m, runOp("properties", func(ctx context.Context) error {
				_, err := actions.FetchProperties(ctx, f)
				return err
			})
		default:
			m.query = editRune(m.query, key)
		}
		return m, nil
	}

	switch key {
	case "j", "down":
		if m.detail == "" && m.cursor < st.Properties.Items.Len()-1 {
			m.cursor++
		}
	case "k", "up":
		if m.detail == "" && m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.searching = true
		m.query = st.Properties.Filters.Search
	case "esc":
		m.detail = ""
	case "enter":
		if p, ok := m.selected(st); ok && m.detail == "" {
			m.detail = p.ID
			return m, runOp("property", func(ctx context.Context) error {
				_, err := actions.FetchProperty(ctx, p.ID)
				return err
			})
		}
	case "m":
		if m.detail == "" && st.Properties.Cursor.HasMore {
			return m, runOp("properties", func(ctx context.Context) error {
				_, err := actions.LoadMoreProperties(ctx)
				return err
			})
		}
	case "c":
		if p, ok := m.selected(st); ok && p.URL != "" {
			return m, copyCmd(p.URL)
		}
	case "o":
		if p, ok := m.selected(st); ok && p.URL != "" {
			return m, openCmd(p.URL)
		}
	}
	return m, nil
}

func (m listingsModel) View(st store.State, width, height int) string {
	if m.detail != "" {
		return m.detailView(st, width)
	}
	ps := st.Properties
	var b strings.Builder

	search := renderField("/", m.query, "search listings", m.searching, false)
	if !m.searching && ps.Filters.Search != "" {
		search = renderField("/", ps.Filters.Search, "", false, false)
	}
	count := ""
	if ps.Cursor.TotalCount > 0 {
		count = metaStyle.Render(fmt.Sprintf("  %d of %d", ps.Items.Len(), ps.Cursor.TotalCount))
	}
	b.WriteString(" " + search + count + "\n\n")

	if line := statusLine(ps.Status, ps.Items.Len() == 0, "listings"); line != "" {
		b.WriteString(line + "\n")
	}
	items := ps.Items.Items()
	start := scrollStart(m.cursor, len(items), height-4)
	for i := start; i < len(items); i++ {
		p := items[i]
		title := truncStr(oneLine(p.Title), max(10, width-36))
		price := priceStyle.Render(fmt.Sprintf("%10s", formatPrice(p.Price, p.Currency)))
		row := fmt.Sprintf("%s  %s  %s", price, title, metaStyle.Render(listingSummary(p)))
		if i == m.cursor {
			b.WriteString(accentStyle.Render(" > ") + selectedStyle.Render(row) + "\n")
		} else {
			b.WriteString("   " + normalStyle.Render(row) + "\n")
		}
	}
	if ps.Cursor.HasMore {
		b.WriteString("\n   " + dimStyle.Render("m for more") + "\n")
	}
	return b.String()
}

func (m listingsModel) detailView(st store.State, width int) string {
	p, ok := m.selected(st)
	if !ok {
		if line := statusLine(st.Properties.DetailStatus, true, "listing"); line != "" {
			return line
		}
		return "  " + dimStyle.Render("listing not found")
	}
	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render(p.Title) + "  " + priceStyle.Render(formatPrice(p.Price, p.Currency)) + "\n")
	b.WriteString("  " + metaStyle.Render(p.Address+", "+p.City) + "\n\n")
	b.WriteString("  " + normalStyle.Render(fmt.Sprintf("%d bed . %d bath . %s", p.Bedrooms, p.Bathrooms, p.PropertyType)) + "\n")
	if p.University != "" {
		b.WriteString("  " + dimStyle.Render("near "+p.University) + "\n")
	}
	if len(p.Amenities) > 0 {
		b.WriteString("  " + dimStyle.Render(strings.Join(p.Amenities, ", ")) + "\n")
	}
	if !p.Available {
		b.WriteString("  " + rejectStyle.Render("not available") + "\n")
	} else if p.AvailableFrom != nil {
		b.WriteString("  " + likedStyle.Render("available from "+p.AvailableFrom.Format("Jan 2 2006")) + "\n")
	}
	if d := oneLine(p.Description); d != "" {
		b.WriteString("\n  " + chatTextStyle.Render(truncStr(d, max(20, width*3))) + "\n")
	}
	if st.Properties.DetailStatus.Loading {
		b.WriteString("\n  " + dimStyle.Render("refreshing...") + "\n")
	}
	if p.URL != "" {
		b.WriteString("\n  " + metaStyle.Render(p.URL) + "\n")
	}
	return b.String()
}

func (m listingsModel) helpKeys() string {
	if m.searching {
		return helpBar("enter", "search", "esc", "cancel")
	}
	if m.detail != "" {
		return helpBar("c", "copy link", "o", "open", "esc", "back")
	}
	return helpBar("j/k", "nav", "enter", "view", "/", "search", "m", "more", "c", "copy link", "h", "help", "q", "quit")
}

// statusLine summarizes a domain's request status for an empty or failed
// list. It returns "" when the list has content and no error.
func statusLine(s store.Status, empty bool, noun string) string {
	switch {
	case s.Error != "":
		return "   " + errorStyle.Render(s.Error)
	case s.Loading && empty:
		return "   " + dimStyle.Render("loading "+noun+"...")
	case empty:
		return "   " + dimStyle.Render("no "+noun+" yet")
	}
	return ""
}

// scrollStart is the first row to render so the cursor stays visible.
func scrollStart(cursor, n, rows int) int {
	if rows <= 0 || n <= rows || cursor < rows {
		return 0
	}
	return min(cursor-rows+1, n-rows)
}
