package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/naveenspark/campusnest/internal/browser"
	"github.com/naveenspark/campusnest/internal/startup"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

const (
	opTimeout = 30 * time.Second
	toastTTL  = 3 * time.Second
	// Chrome: header(2) + tabs(1) + status(1) + help(1) = 5 lines
	chrome = 5
)

// Actions are the operations the screens trigger. *thunk.Dispatcher
// satisfies it.
type Actions interface {
	Login(ctx context.Context, req client.LoginRequest) (*domain.UserProfile, error)
	Logout(ctx context.Context) error
	FetchProperties(ctx context.Context, f domain.PropertyFilters) (*client.Page[domain.Property], error)
	LoadMoreProperties(ctx context.Context) (*client.Page[domain.Property], error)
	FetchProperty(ctx context.Context, id string) (*domain.Property, error)
	FetchMatches(ctx context.Context) ([]domain.Match, error)
	UpdateMatchStatus(ctx context.Context, id string, status domain.MatchStatus) (*domain.Match, error)
	FetchBookings(ctx context.Context, page int) (*client.Page[domain.Booking], error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
	FetchConversations(ctx context.Context) ([]domain.Conversation, error)
	FetchMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	SendMessage(ctx context.Context, conversationID, body string) (*domain.Message, error)
	FetchNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
}

// Lifecycle is the startup orchestrator as the UI sees it.
type Lifecycle interface {
	Phase() startup.Phase
	OnLogin(ctx context.Context) error
	Subscribe(fn func(startup.Phase)) (unsubscribe func())
}

// stateMsg carries a store snapshot into the event loop.
type stateMsg struct{ st store.State }

// phaseMsg carries a startup phase change.
type phaseMsg struct{ phase startup.Phase }

// doneMsg reports how a triggered operation settled.
type doneMsg struct {
	op  string
	err error
}

type copyResultMsg struct{ err error }

type toastExpiredMsg struct{ text string }

// App is the root Bubbletea model. It renders store snapshots and turns
// keys into thunk calls; it never mutates application state itself.
type App struct {
	store   *store.Store
	actions Actions
	life    Lifecycle
	version string

	state store.State
	phase startup.Phase

	login    loginModel
	listings listingsModel
	matches  matchesModel
	bookings bookingsModel
	chats    chatsModel
	inbox    inboxModel

	helpOpen   bool
	helpCursor int
	flash      string
	update     string
	width      int
	height     int
	frame      int
}

// NewApp creates the TUI over a store, the thunks that feed it and the
// startup orchestrator.
func NewApp(s *store.Store, actions Actions, life Lifecycle, version string) App {
	return App{
		store:   s,
		actions: actions,
		life:    life,
		version: version,
		state:   s.State(),
		phase:   life.Phase(),
	}
}

// Attach forwards store snapshots and phase changes to p. The returned
// func detaches both.
func Attach(p *tea.Program, s *store.Store, life Lifecycle) (detach func()) {
	unState := s.Subscribe(func(st store.State) { p.Send(stateMsg{st: st}) })
	unPhase := life.Subscribe(func(ph startup.Phase) { p.Send(phaseMsg{phase: ph}) })
	return func() {
		unState()
		unPhase()
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), a.snapshot(), checkVersion(a.version))
}

// snapshot re-reads the store. Snapshots also arrive through Attach; this
// covers actions whose subscriber delivery raced the event loop.
func (a App) snapshot() tea.Cmd {
	s, life := a.store, a.life
	return tea.Batch(
		func() tea.Msg { return stateMsg{st: s.State()} },
		func() tea.Msg { return phaseMsg{phase: life.Phase()} },
	)
}

// dispatch applies actions off the event loop; store listeners send
// messages back into the program and must not run inside Update.
func (a App) dispatch(acts ...store.Action) tea.Cmd {
	s := a.store
	return func() tea.Msg {
		for _, act := range acts {
			s.Dispatch(act)
		}
		return stateMsg{st: s.State()}
	}
}

// runOp runs fn with a bounded context and reports the outcome as a doneMsg.
func runOp(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return doneMsg{op: op, err: fn(ctx)}
	}
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: clipboardWrite(text)}
	}
}

func openCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return doneMsg{op: "open", err: browser.Open(url)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case releaseMsg:
		a.update = msg.notice()
		return a, nil

	case stateMsg:
		// Snapshots from concurrent dispatches can arrive out of order.
		if msg.st.Revision < a.state.Revision {
			return a, nil
		}
		prevToast := a.state.UI.Toast
		a.state = msg.st
		a.clampCursors()
		if t := a.state.UI.Toast; t != "" && t != prevToast {
			return a, tea.Tick(toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{text: t} })
		}
		return a, nil

	case phaseMsg:
		if msg.phase == startup.Unauthenticated && a.phase != startup.Unauthenticated {
			a.login = loginModel{email: a.login.email}
			a.listings, a.matches, a.bookings, a.chats, a.inbox = listingsModel{}, matchesModel{}, bookingsModel{}, chatsModel{}, inboxModel{}
		}
		a.phase = msg.phase
		return a, nil

	case toastExpiredMsg:
		if a.state.UI.Toast == msg.text {
			return a, a.dispatch(store.ToastCleared{})
		}
		return a, nil

	case copyResultMsg:
		if msg.err != nil {
			a.flash = "copy failed: " + msg.err.Error()
		} else {
			a.flash = "link copied"
		}
		return a, nil

	case doneMsg:
		a.flash = flashFor(msg.op, msg.err)
		if msg.op == "login" {
			a.login.submitting = false
			if msg.err != nil {
				a.login.password = ""
			}
		}
		return a, a.snapshot()

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

// flashFor picks the transient status line for a settled operation. Fetch
// and mutation failures already live in the store, so only local errors and
// rejected input are flashed.
func flashFor(op string, err error) string {
	if err == nil {
		return ""
	}
	switch {
	case op == "open":
		return "could not open browser: " + err.Error()
	case client.KindOf(err) == client.KindValidation:
		return client.Message(err)
	}
	return ""
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return a, tea.Quit
	}

	// The session alert blocks everything until acknowledged.
	if a.state.UI.Alert != nil {
		if key == "enter" {
			return a, a.dispatch(store.AlertAcknowledged{})
		}
		return a, nil
	}

	if a.helpOpen {
		switch key {
		case "h", "esc":
			a.helpOpen = false
		case "q":
			return a, tea.Quit
		case "j", "down":
			if a.helpCursor < len(helpItems)-1 {
				a.helpCursor++
			}
		case "k", "up":
			if a.helpCursor > 0 {
				a.helpCursor--
			}
		case "enter":
			return a, openCmd(helpItems[a.helpCursor].url)
		}
		return a, nil
	}

	if a.phase == startup.Unauthenticated {
		var cmd tea.Cmd
		a.login, cmd = a.login.Update(msg, a.actions, a.life)
		return a, cmd
	}
	if a.phase != startup.Ready {
		if key == "q" {
			return a, tea.Quit
		}
		return a, nil
	}

	if !a.isEditing() {
		a.flash = ""
		switch key {
		case "q":
			return a, tea.Quit
		case "h":
			a.helpOpen = true
			a.helpCursor = 0
			return a, nil
		case "1", "2", "3", "4", "5":
			tab := store.Tab(key[0] - '1')
			if tab != a.state.UI.ActiveTab {
				return a, a.dispatch(store.TabSelected{Tab: tab})
			}
			return a, nil
		case "r":
			return a, a.refresh()
		case "L":
			actions := a.actions
			return a, runOp("logout", actions.Logout)
		}
	}

	var cmd tea.Cmd
	switch a.state.UI.ActiveTab {
	case store.TabProperties:
		a.listings, cmd = a.listings.Update(msg, a.state, a.actions)
	case store.TabMatches:
		a.matches, cmd = a.matches.Update(msg, a.state, a.actions)
	case store.TabBookings:
		a.bookings, cmd = a.bookings.Update(msg, a.state, a.actions)
	case store.TabChats:
		a.chats, cmd = a.chats.Update(msg, a.state, a.actions)
	case store.TabNotifications:
		a.inbox, cmd = a.inbox.Update(msg, a.state, a.actions)
	}
	return a, cmd
}

// refresh re-fetches the active tab.
func (a App) refresh() tea.Cmd {
	act, st := a.actions, a.state
	switch st.UI.ActiveTab {
	case store.TabProperties:
		return runOp("properties", func(ctx context.Context) error {
			_, err := act.FetchProperties(ctx, st.Properties.Filters)
			return err
		})
	case store.TabMatches:
		return runOp("matches", func(ctx context.Context) error {
			_, err := act.FetchMatches(ctx)
			return err
		})
	case store.TabBookings:
		return runOp("bookings", func(ctx context.Context) error {
			_, err := act.FetchBookings(ctx, 1)
			return err
		})
	case store.TabChats:
		if a.chats.open != "" {
			id := a.chats.open
			return runOp("messages", func(ctx context.Context) error {
				_, err := act.FetchMessages(ctx, id)
				return err
			})
		}
		return runOp("chats", func(ctx context.Context) error {
			_, err := act.FetchConversations(ctx)
			return err
		})
	case store.TabNotifications:
		return runOp("notifications", func(ctx context.Context) error {
			_, err := act.FetchNotifications(ctx)
			return err
		})
	}
	return nil
}

func (a App) isEditing() bool {
	switch a.state.UI.ActiveTab {
	case store.TabProperties:
		return a.listings.searching
	case store.TabChats:
		return a.chats.composing
	}
	return false
}

func (a *App) clampCursors() {
	st := a.state
	a.listings.cursor = clampCursor(a.listings.cursor, st.Properties.Items.Len())
	a.matches.cursor = clampCursor(a.matches.cursor, len(store.MatchesByScore(st)))
	a.bookings.cursor = clampCursor(a.bookings.cursor, st.Bookings.Items.Len())
	a.chats.cursor = clampCursor(a.chats.cursor, st.Chats.Conversations.Len())
	a.inbox.cursor = clampCursor(a.inbox.cursor, st.Notifications.Items.Len())
}

func (a App) View() string {
	header := a.centered(renderShimmerLogo(a.frame))
	sub := ""
	if u := store.CurrentUser(a.state); u != nil && a.phase.SignedIn() {
		sub = metaStyle.Render(u.FullName())
		if u.University != "" {
			sub += metaStyle.Render(" . " + u.University)
		}
	}
	if a.update != "" {
		sub += "  " + accentStyle.Render(a.update)
	}
	header += "\n" + a.centered(sub)

	var body, help, tabs string
	switch a.phase {
	case startup.Unauthenticated:
		body = a.login.View(a.state)
		help = helpBar("tab", "next field", "enter", "sign in", "ctrl+c", "quit")
	case startup.Ready:
		tabs = a.tabBar()
		body, help = a.tabView()
	case startup.LoadingUserData:
		body = "\n  " + dimStyle.Render("loading your data"+strings.Repeat(".", a.frame/4%4))
		help = helpBar("q", "quit")
	default:
		body = "\n  " + dimStyle.Render("restoring session"+strings.Repeat(".", a.frame/4%4))
		help = helpBar("q", "quit")
	}

	if a.helpOpen {
		body = helpView(a.helpCursor)
		help = helpBar("j/k", "nav", "enter", "open", "esc", "close")
	}
	if alert := a.state.UI.Alert; alert != nil {
		body = a.alertView(*alert)
		help = helpBar("enter", "ok")
	}

	status := ""
	switch {
	case a.state.UI.Toast != "":
		status = " " + toastStyle.Render(a.state.UI.Toast)
	case a.flash != "":
		status = " " + dimStyle.Render(a.flash)
	}

	body = strings.TrimRight(truncateToHeight(body, a.height-chrome), "\n")
	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s", header, tabs, body, status, help)
}

func (a App) tabView() (body, help string) {
	st := a.state
	bodyHeight := a.height - chrome
	switch st.UI.ActiveTab {
	case store.TabProperties:
		return a.listings.View(st, a.width, bodyHeight), helpBar("1-5", "tabs") + "  " + a.listings.helpKeys()
	case store.TabMatches:
		return a.matches.View(st, a.width, bodyHeight), helpBar("1-5", "tabs") + "  " + a.matches.helpKeys()
	case store.TabBookings:
		return a.bookings.View(st, a.width, bodyHeight), helpBar("1-5", "tabs") + "  " + a.bookings.helpKeys()
	case store.TabChats:
		return a.chats.View(st, a.width, bodyHeight), helpBar("1-5", "tabs") + "  " + a.chats.helpKeys()
	case store.TabNotifications:
		return a.inbox.View(st, a.width, bodyHeight), helpBar("1-5", "tabs") + "  " + a.inbox.helpKeys()
	}
	return "", ""
}

func (a App) tabBar() string {
	tabs := []store.Tab{store.TabProperties, store.TabMatches, store.TabBookings, store.TabChats, store.TabNotifications}
	colWidth := a.width / len(tabs)
	var bar strings.Builder
	for i, t := range tabs {
		key := fmt.Sprintf("%d", i+1)
		var label string
		if t == a.state.UI.ActiveTab {
			label = accentStyle.Render(key) + " " + selectedStyle.Underline(true).Render(t.String())
		} else {
			label = metaStyle.Render(key) + " " + dimStyle.Render(t.String())
		}
		if t == store.TabNotifications {
			if n := store.UnreadNotifications(a.state); n > 0 {
				label += " " + unreadDotStyle.Render(fmt.Sprintf("●%d", n))
			}
		}
		w := lipgloss.Width(label)
		left := max(0, (colWidth-w)/2)
		right := max(0, colWidth-w-left)
		bar.WriteString(strings.Repeat(" ", left) + label + strings.Repeat(" ", right))
	}
	return bar.String()
}

func (a App) alertView(alert store.Alert) string {
	box := alertBoxStyle.Render(
		alertTitleStyle.Render(alert.Title) + "\n\n" +
			normalStyle.Render(alert.Body) + "\n\n" +
			helpEntry("enter", "OK"),
	)
	h := a.height - chrome
	if a.width <= 0 || h <= 0 {
		return box
	}
	return lipgloss.Place(a.width, h, lipgloss.Center, lipgloss.Center, box)
}

func (a App) centered(s string) string {
	pad := max(0, (a.width-lipgloss.Width(s))/2)
	return strings.Repeat(" ", pad) + s
}
