package store

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveenspark/campusnest/pkg/domain"
)

func TestRequestSuccessAlwaysSettles(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := New()
	for i := 0; i < 200; i++ {
		tk := s.Begin(DomainProperties)
		assert.True(t, s.State().Properties.Status.Loading)

		n := rng.Intn(5)
		ids := make([]string, n)
		for j := range ids {
			ids[j] = string(rune('a' + rng.Intn(26)))
		}
		s.Dispatch(PropertiesLoaded{Ticket: tk, Items: props(ids...), Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 1}})

		st := s.State().Properties
		require.False(t, st.Status.Loading, "iteration %d", i)
		require.Empty(t, st.Status.Error, "iteration %d", i)
	}
}

func TestFailureKeepsItems(t *testing.T) {
	s := New()
	tk := s.Begin(DomainBookings)
	s.Dispatch(BookingsLoaded{Ticket: tk, Items: []domain.Booking{{ID: "b1"}, {ID: "b2"}}})
	before := s.State().Bookings.Items.IDs()

	tk = s.Begin(DomainBookings)
	s.Dispatch(Failure{Ticket: tk, Message: "network down"})

	st := s.State().Bookings
	assert.Equal(t, before, st.Items.IDs())
	assert.Equal(t, "network down", st.Status.Error)
	assert.False(t, st.Status.Loading)
}

func TestRequestClearsError(t *testing.T) {
	s := New()
	tk := s.Begin(DomainMatches)
	s.Dispatch(Failure{Ticket: tk, Message: "boom"})
	require.Equal(t, "boom", s.State().Matches.Status.Error)

	s.Begin(DomainMatches)
	assert.Empty(t, s.State().Matches.Status.Error)
	assert.True(t, s.State().Matches.Status.Loading)
}

func TestPropertiesFetched(t *testing.T) {
	s := New()
	tk := s.Begin(DomainProperties)
	s.Dispatch(PropertiesLoaded{
		Ticket:     tk,
		Items:      props("p1", "p2"),
		Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 2},
	})

	st := s.State().Properties
	assert.Equal(t, []string{"p1", "p2"}, st.Items.IDs())
	assert.False(t, st.Status.Loading)
	assert.Equal(t, Cursor{CurrentPage: 1, TotalPages: 1, TotalCount: 2, HasMore: false}, st.Cursor)
}

func TestSuccessReplacesWholesale(t *testing.T) {
	s := New()
	tk := s.Begin(DomainMatches)
	s.Dispatch(MatchesLoaded{Ticket: tk, Items: []domain.Match{{ID: "m1"}, {ID: "m2"}}})
	tk = s.Begin(DomainMatches)
	s.Dispatch(MatchesLoaded{Ticket: tk, Items: []domain.Match{{ID: "m2"}}})

	assert.Equal(t, []string{"m2"}, s.State().Matches.Items.IDs(), "deleted server-side entries must not survive a refresh")
}

func TestOverlappingFetchesLatestIssuedWins(t *testing.T) {
	s := New()
	first := s.Begin(DomainProperties)
	second := s.Begin(DomainProperties)

	// Second response arrives first.
	s.Dispatch(PropertiesLoaded{Ticket: second, Items: props("new")})
	assert.False(t, s.State().Properties.Status.Loading)

	s.Dispatch(PropertiesLoaded{Ticket: first, Items: props("old")})

	st := s.State().Properties
	assert.Equal(t, []string{"new"}, st.Items.IDs())
	assert.False(t, st.Status.Loading)
}

func TestOverlappingFetchesInOrder(t *testing.T) {
	s := New()
	first := s.Begin(DomainProperties)
	second := s.Begin(DomainProperties)

	s.Dispatch(PropertiesLoaded{Ticket: first, Items: props("old")})
	assert.True(t, s.State().Properties.Status.Loading, "the newer request is still in flight")

	s.Dispatch(PropertiesLoaded{Ticket: second, Items: props("new")})
	assert.Equal(t, []string{"new"}, s.State().Properties.Items.IDs())
	assert.False(t, s.State().Properties.Status.Loading)
}

func TestStaleFailureDoesNotClobberSuccess(t *testing.T) {
	s := New()
	first := s.Begin(DomainNotifications)
	second := s.Begin(DomainNotifications)

	s.Dispatch(NotificationsLoaded{Ticket: second, Items: []domain.Notification{{ID: "n1"}}})
	s.Dispatch(Failure{Ticket: first, Message: "timeout"})

	st := s.State().Notifications
	assert.Empty(t, st.Status.Error)
	assert.Equal(t, []string{"n1"}, st.Items.IDs())
}

func TestResetDiscardsInFlightResponses(t *testing.T) {
	s := New()
	tk := s.Begin(DomainBookings)
	s.Dispatch(ResetUserData{})

	st := s.State().Bookings
	assert.False(t, st.Status.Loading)

	s.Dispatch(BookingsLoaded{Ticket: tk, Items: []domain.Booking{{ID: "previous-user"}}})
	assert.Equal(t, 0, s.State().Bookings.Items.Len(), "a response issued before the reset must be dropped")

	next := s.Begin(DomainBookings)
	s.Dispatch(BookingsLoaded{Ticket: next, Items: []domain.Booking{{ID: "b1"}}})
	assert.Equal(t, []string{"b1"}, s.State().Bookings.Items.IDs())
}

func TestResetClearsEveryIdentityScopedSlice(t *testing.T) {
	s := New()
	s.Dispatch(MatchesLoaded{Ticket: s.Begin(DomainMatches), Items: []domain.Match{{ID: "m1"}}})
	s.Dispatch(BookingsLoaded{Ticket: s.Begin(DomainBookings), Items: []domain.Booking{{ID: "b1"}}})
	s.Dispatch(ConversationsLoaded{Ticket: s.Begin(DomainChats), Items: []domain.Conversation{{ID: "c1"}}})
	s.Dispatch(NotificationsLoaded{Ticket: s.Begin(DomainNotifications), Items: []domain.Notification{{ID: "n1"}}})
	s.Dispatch(RecentPropertiesLoaded{Ticket: s.Begin(DomainRecentProperties), Items: props("p1")})
	s.Dispatch(MessageReceived{Message: domain.Message{ID: "x", ConversationID: "c1"}})

	s.Dispatch(ResetUserData{})

	st := s.State()
	assert.Equal(t, 0, st.Matches.Items.Len())
	assert.Equal(t, 0, st.Bookings.Items.Len())
	assert.Equal(t, 0, st.Chats.Conversations.Len())
	assert.Empty(t, st.Chats.Messages)
	assert.Equal(t, 0, st.Notifications.Items.Len())
	assert.Equal(t, 0, st.Notifications.UnreadCount)
	assert.Empty(t, st.Properties.Recent)
}

func TestMarkNotificationRead(t *testing.T) {
	s := New()
	s.Dispatch(NotificationsLoaded{
		Ticket: s.Begin(DomainNotifications),
		Items:  []domain.Notification{{ID: "n1"}, {ID: "n2"}, {ID: "n3", Read: true}},
	})
	require.Equal(t, 2, s.State().Notifications.UnreadCount)

	s.Dispatch(NotificationRead{ID: "n1"})
	st := s.State().Notifications
	assert.Equal(t, 1, st.UnreadCount)
	n1, _ := st.Items.Get("n1")
	assert.True(t, n1.Read)

	s.Dispatch(NotificationRead{ID: "n1"})
	assert.Equal(t, 1, s.State().Notifications.UnreadCount, "marking twice must not decrement twice")

	s.Dispatch(NotificationRead{ID: "missing"})
	assert.Equal(t, 1, s.State().Notifications.UnreadCount)

	s.Dispatch(NotificationRead{ID: "n2"})
	s.Dispatch(NotificationRead{ID: "n2"})
	assert.Equal(t, 0, s.State().Notifications.UnreadCount)
}

func TestNotificationReceivedAndReadAll(t *testing.T) {
	s := New()
	s.Dispatch(NotificationsLoaded{Ticket: s.Begin(DomainNotifications), Items: []domain.Notification{{ID: "n1"}}})
	s.Dispatch(NotificationReceived{Notification: domain.Notification{ID: "n2"}})
	s.Dispatch(NotificationReceived{Notification: domain.Notification{ID: "n2"}})

	st := s.State().Notifications
	assert.Equal(t, []string{"n2", "n1"}, st.Items.IDs())
	assert.Equal(t, 2, st.UnreadCount)

	s.Dispatch(AllNotificationsRead{})
	st = s.State().Notifications
	assert.Equal(t, 0, st.UnreadCount)
	for _, n := range st.Items.Items() {
		assert.True(t, n.Read, n.ID)
	}
}

func TestUpdateMatchStatus(t *testing.T) {
	s := New()
	s.Dispatch(MatchesLoaded{Ticket: s.Begin(DomainMatches), Items: []domain.Match{{ID: "m1", Status: domain.MatchPending}}})

	s.Dispatch(MatchStatusUpdated{ID: "m1", Status: domain.MatchLiked})
	m, _ := s.State().Matches.Items.Get("m1")
	assert.Equal(t, domain.MatchLiked, m.Status)

	rev := s.State().Revision
	s.Dispatch(MatchStatusUpdated{ID: "gone", Status: domain.MatchRejected})
	assert.Equal(t, 1, s.State().Matches.Items.Len())
	assert.Equal(t, rev+1, s.State().Revision)
}

func TestLoadMoreAppendsAndAdvancesCursor(t *testing.T) {
	s := New()
	s.Dispatch(PropertiesLoaded{
		Ticket:     s.Begin(DomainProperties),
		Items:      props("p1", "p2"),
		Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 2, TotalCount: 3},
	})
	require.True(t, s.State().Properties.Cursor.HasMore)
	assert.Equal(t, 2, s.State().Properties.Cursor.NextPage())

	s.Dispatch(PropertiesLoaded{
		Ticket:     s.Begin(DomainProperties),
		Items:      props("p2", "p3"),
		Pagination: domain.Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 3},
		Append:     true,
	})
	st := s.State().Properties
	assert.Equal(t, []string{"p1", "p2", "p3"}, st.Items.IDs())
	assert.Equal(t, 2, st.Cursor.CurrentPage)
	assert.False(t, st.Cursor.HasMore)
}

func TestFilterChangeResetsCursor(t *testing.T) {
	s := New()
	s.Dispatch(PropertiesLoaded{
		Ticket:     s.Begin(DomainProperties),
		Items:      props("p1"),
		Pagination: domain.Pagination{CurrentPage: 3, TotalPages: 5},
	})
	f := domain.PropertyFilters{City: "Leeds"}
	s.Dispatch(PropertyFiltersSet{Filters: f})

	st := s.State().Properties
	assert.Equal(t, 1, st.Cursor.CurrentPage)
	assert.True(t, st.Filters.Equal(f))
}

func TestPropertyDetailPatchesList(t *testing.T) {
	s := New()
	s.Dispatch(PropertiesLoaded{Ticket: s.Begin(DomainProperties), Items: props("p1")})
	s.Dispatch(PropertyLoaded{Ticket: s.Begin(DomainPropertyDetail), Property: domain.Property{ID: "p1", Title: "fresh"}})

	st := s.State().Properties
	require.NotNil(t, st.Selected)
	assert.Equal(t, "fresh", st.Selected.Title)
	p, _ := st.Items.Get("p1")
	assert.Equal(t, "fresh", p.Title)
}

func TestPropertySelected(t *testing.T) {
	s := New()
	s.Dispatch(PropertiesLoaded{Ticket: s.Begin(DomainProperties), Items: props("p1", "p2")})
	s.Dispatch(RecentPropertiesLoaded{Ticket: s.Begin(DomainRecentProperties), Items: props("r1")})

	s.Dispatch(PropertySelected{ID: "p2"})
	require.NotNil(t, s.State().Properties.Selected)
	assert.Equal(t, "p2", s.State().Properties.Selected.ID)

	s.Dispatch(PropertySelected{ID: "r1"})
	require.NotNil(t, s.State().Properties.Selected)
	assert.Equal(t, "r1", s.State().Properties.Selected.ID)

	s.Dispatch(PropertySelected{ID: "missing"})
	assert.Nil(t, s.State().Properties.Selected)

	s.Dispatch(PropertySelected{ID: "p1"})
	s.Dispatch(PropertySelected{})
	assert.Nil(t, s.State().Properties.Selected)
}

func TestBookingCreatedAndCancelled(t *testing.T) {
	s := New()
	s.Dispatch(BookingsLoaded{
		Ticket:     s.Begin(DomainBookings),
		Items:      []domain.Booking{{ID: "b1", Status: domain.BookingPending}},
		Pagination: domain.Pagination{CurrentPage: 1, TotalPages: 1, TotalCount: 1},
	})
	s.Dispatch(BookingCreated{Booking: domain.Booking{ID: "b2", Status: domain.BookingPending}})
	s.Dispatch(BookingUpdated{Booking: domain.Booking{ID: "b1", Status: domain.BookingCancelled}})
	s.Dispatch(BookingUpdated{Booking: domain.Booking{ID: "unknown", Status: domain.BookingCancelled}})

	st := s.State()
	assert.Equal(t, []string{"b2", "b1"}, st.Bookings.Items.IDs())
	assert.Equal(t, 2, st.Bookings.Cursor.TotalCount)
	active := ActiveBookings(st)
	require.Len(t, active, 1)
	assert.Equal(t, "b2", active[0].ID)
}

func TestMessageReceivedDedupesByClientID(t *testing.T) {
	s := New()
	now := time.Now()
	s.Dispatch(ConversationsLoaded{Ticket: s.Begin(DomainChats), Items: []domain.Conversation{{ID: "c1"}}})
	s.Dispatch(MessagesLoaded{Ticket: s.Begin(DomainMessages), ConversationID: "c1", Items: []domain.Message{{ID: "m1", ConversationID: "c1", Body: "hi"}}})

	s.Dispatch(MessageReceived{Message: domain.Message{ID: "m2", ConversationID: "c1", ClientID: "tmp-1", Body: "hello", CreatedAt: now}})
	s.Dispatch(MessageReceived{Message: domain.Message{ID: "m2", ConversationID: "c1", ClientID: "tmp-1", Body: "hello", CreatedAt: now}})

	st := s.State()
	msgs := ActiveMessages(st)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[1].Body)
	c, _ := st.Chats.Conversations.Get("c1")
	assert.Equal(t, "hello", c.LastMessage)
}

func TestAuthTransitions(t *testing.T) {
	s := New()
	assert.False(t, IsAuthenticated(s.State()))

	s.Dispatch(AuthRequest{})
	assert.True(t, s.State().Auth.IsLoading)

	s.Dispatch(AuthFailed{Message: "wrong password"})
	st := s.State().Auth
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "wrong password", st.Error)

	s.Dispatch(AuthSucceeded{User: domain.UserProfile{ID: "u1"}})
	require.NotNil(t, CurrentUser(s.State()))
	assert.True(t, IsAuthenticated(s.State()))
	assert.Empty(t, s.State().Auth.Error)

	s.Dispatch(LoggedOut{})
	st = s.State().Auth
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
	assert.True(t, st.Initialized)
}

func TestSessionRestore(t *testing.T) {
	s := New()
	s.Dispatch(SessionRestore{User: &domain.UserProfile{ID: "u1"}})
	assert.True(t, s.State().Auth.IsAuthenticated)
	assert.True(t, s.State().Auth.Initialized)

	s.Dispatch(SessionRestore{})
	assert.False(t, s.State().Auth.IsAuthenticated)
	assert.Nil(t, s.State().Auth.User)
}

func TestAlertIsShownOnce(t *testing.T) {
	s := New()
	s.Dispatch(AlertShown{Title: "Session Expired", Body: "first"})
	s.Dispatch(AlertShown{Title: "Session Expired", Body: "second"})

	require.NotNil(t, s.State().UI.Alert)
	assert.Equal(t, "first", s.State().UI.Alert.Body)

	s.Dispatch(AlertAcknowledged{})
	assert.Nil(t, s.State().UI.Alert)
}

func TestMatchesByScore(t *testing.T) {
	s := New()
	s.Dispatch(MatchesLoaded{Ticket: s.Begin(DomainMatches), Items: []domain.Match{
		{ID: "low", Score: 40},
		{ID: "gone", Score: 99, Status: domain.MatchRejected},
		{ID: "high", Score: 90},
	}})
	got := MatchesByScore(s.State())
	require.Len(t, got, 2)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "low", got[1].ID)
}

func TestAbandonedSettlesWithoutError(t *testing.T) {
	s := New()
	tk := s.Begin(DomainBookings)
	s.Dispatch(Abandoned{Ticket: tk})

	st := s.State().Bookings.Status
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}
