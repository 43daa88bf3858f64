package store

import "github.com/naveenspark/campusnest/pkg/domain"

// Action is a state transition. Only types declared in this package are
// actions; reducers switch on the concrete type.
type Action interface {
	action()
}

// Request marks a fetch as in flight. Dispatched by Store.Begin.
type Request struct{ Ticket Ticket }

// Failure records an ordinary (non-session) error for a fetch.
type Failure struct {
	Ticket  Ticket
	Message string
}

// Abandoned settles a fetch whose outcome was handled elsewhere: loading
// stops and no error is recorded.
type Abandoned struct{ Ticket Ticket }

// ResetUserData wipes every identity-scoped collection.
type ResetUserData struct{}

// Auth.
type (
	AuthRequest    struct{}
	AuthSucceeded  struct{ User domain.UserProfile }
	AuthFailed     struct{ Message string }
	SessionRestore struct{ User *domain.UserProfile } // nil: nothing to restore
	LoggedOut      struct{}
	UserRefreshed  struct{ User domain.UserProfile }
)

// Properties.
type (
	PropertiesLoaded struct {
		Ticket     Ticket
		Items      []domain.Property
		Pagination domain.Pagination
		Append     bool
	}
	RecentPropertiesLoaded struct {
		Ticket Ticket
		Items  []domain.Property
	}
	PropertyLoaded struct {
		Ticket   Ticket
		Property domain.Property
	}
	PropertyFiltersSet struct{ Filters domain.PropertyFilters }
	// PropertySelected opens a listing already in memory; "" clears it.
	PropertySelected struct{ ID string }
)

// Matches.
type (
	MatchesLoaded struct {
		Ticket Ticket
		Items  []domain.Match
	}
	MatchStatusUpdated struct {
		ID     string
		Status domain.MatchStatus
	}
)

// Bookings.
type (
	BookingsLoaded struct {
		Ticket     Ticket
		Items      []domain.Booking
		Pagination domain.Pagination
		Append     bool
	}
	BookingCreated struct{ Booking domain.Booking }
	BookingUpdated struct{ Booking domain.Booking }
)

// Chats.
type (
	ConversationsLoaded struct {
		Ticket Ticket
		Items  []domain.Conversation
	}
	MessagesLoaded struct {
		Ticket         Ticket
		ConversationID string
		Items          []domain.Message
	}
	MessageReceived struct{ Message domain.Message }
)

// Notifications.
type (
	NotificationsLoaded struct {
		Ticket Ticket
		Items  []domain.Notification
	}
	NotificationRead     struct{ ID string }
	AllNotificationsRead struct{}
	NotificationReceived struct{ Notification domain.Notification }
)

// UI.
type (
	TabSelected       struct{ Tab Tab }
	ToastShown        struct{ Text string }
	ToastCleared      struct{}
	AlertShown        struct{ Title, Body string }
	AlertAcknowledged struct{}
)

func (Request) action()        {}
func (Failure) action()        {}
func (Abandoned) action()      {}
func (ResetUserData) action()  {}
func (AuthRequest) action()    {}
func (AuthSucceeded) action()  {}
func (AuthFailed) action()     {}
func (SessionRestore) action() {}
func (LoggedOut) action()      {}
func (UserRefreshed) action()  {}

func (PropertiesLoaded) action()       {}
func (RecentPropertiesLoaded) action() {}
func (PropertyLoaded) action()         {}
func (PropertyFiltersSet) action()     {}
func (PropertySelected) action()       {}
func (MatchesLoaded) action()          {}
func (MatchStatusUpdated) action()     {}
func (BookingsLoaded) action()         {}
func (BookingCreated) action()         {}
func (BookingUpdated) action()         {}
func (ConversationsLoaded) action()    {}
func (MessagesLoaded) action()         {}
func (MessageReceived) action()        {}
func (NotificationsLoaded) action()    {}
func (NotificationRead) action()       {}
func (AllNotificationsRead) action()   {}
func (NotificationReceived) action()   {}

func (TabSelected) action()       {}
func (ToastShown) action()        {}
func (ToastCleared) action()      {}
func (AlertShown) action()        {}
func (AlertAcknowledged) action() {}
