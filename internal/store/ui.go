package store

// Tab is a top-level screen of the app.
type Tab int

const (
	TabProperties Tab = iota
	TabMatches
	TabBookings
	TabChats
	TabNotifications
)

func (t Tab) String() string {
	switch t {
	case TabProperties:
		return "Search"
	case TabMatches:
		return "Matches"
	case TabBookings:
		return "Bookings"
	case TabChats:
		return "Chats"
	case TabNotifications:
		return "Alerts"
	default:
		return "?"
	}
}

// Alert is a blocking notice the user must acknowledge.
type Alert struct {
	Title string
	Body  string
}

// UIState is presentation state shared across screens.
type UIState struct {
	ActiveTab Tab
	Toast     string
	Alert     *Alert
}

func (s UIState) reduce(a Action) UIState {
	switch a := a.(type) {
	case TabSelected:
		s.ActiveTab = a.Tab
	case ToastShown:
		s.Toast = a.Text
	case ToastCleared:
		s.Toast = ""
	case AlertShown:
		// One notice at a time; a second alert while one is pending is dropped.
		if s.Alert == nil {
			s.Alert = &Alert{Title: a.Title, Body: a.Body}
		}
	case AlertAcknowledged:
		s.Alert = nil
	case LoggedOut:
		s.ActiveTab = TabProperties
	}
	return s
}
