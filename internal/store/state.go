package store

// State is the whole application state tree.
type State struct {
	// Revision increases with every dispatch. Subscribers may receive
	// snapshots from concurrent dispatches out of order and should drop any
	// snapshot older than the last one they handled.
	Revision uint64

	// Epoch advances on every sign-out and user-data reset. Work started
	// under an older epoch belongs to a previous identity.
	Epoch uint64

	Auth          AuthState
	Properties    PropertiesState
	Matches       MatchesState
	Bookings      BookingsState
	Chats         ChatsState
	Notifications NotificationsState
	UI            UIState
}

func (s State) reduce(a Action) State {
	if ab, ok := a.(Abandoned); ok {
		a = Failure{Ticket: ab.Ticket}
	}
	switch a.(type) {
	case LoggedOut, ResetUserData:
		s.Epoch++
	}
	s.Auth = s.Auth.reduce(a)
	s.Properties = s.Properties.reduce(a)
	s.Matches = s.Matches.reduce(a)
	s.Bookings = s.Bookings.reduce(a)
	s.Chats = s.Chats.reduce(a)
	s.Notifications = s.Notifications.reduce(a)
	s.UI = s.UI.reduce(a)
	return s
}

// StatusOf returns the request status of a domain.
func (s State) StatusOf(d Domain) Status {
	switch d {
	case DomainProperties:
		return s.Properties.Status
	case DomainRecentProperties:
		return s.Properties.RecentStatus
	case DomainPropertyDetail:
		return s.Properties.DetailStatus
	case DomainMatches:
		return s.Matches.Status
	case DomainBookings:
		return s.Bookings.Status
	case DomainChats:
		return s.Chats.Status
	case DomainMessages:
		return s.Chats.MessagesStatus
	case DomainNotifications:
		return s.Notifications.Status
	}
	return Status{}
}
