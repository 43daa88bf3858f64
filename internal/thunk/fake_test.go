package thunk

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/naveenspark/campusnest/internal/session"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

var errNotStubbed = errors.New("not stubbed")

// fakeAPI implements API with overridable functions. Unset calls fail.
type fakeAPI struct {
	login       func(context.Context, client.LoginRequest) (*domain.UserProfile, error)
	register    func(context.Context, client.RegisterRequest) (*domain.UserProfile, error)
	logout      func(context.Context) error
	currentUser func(context.Context) (*domain.UserProfile, error)

	listProperties   func(context.Context, domain.PropertyFilters, int, int) (*client.Page[domain.Property], error)
	recentProperties func(context.Context, int) ([]domain.Property, error)
	getProperty      func(context.Context, string) (*domain.Property, error)

	listMatches       func(context.Context) ([]domain.Match, error)
	updateMatchStatus func(context.Context, string, domain.MatchStatus) (*domain.Match, error)

	listBookings  func(context.Context, int, int) (*client.Page[domain.Booking], error)
	createBooking func(context.Context, client.CreateBookingRequest) (*domain.Booking, error)
	cancelBooking func(context.Context, string) (*domain.Booking, error)

	listConversations func(context.Context) ([]domain.Conversation, error)
	getMessages       func(context.Context, string, int) ([]domain.Message, error)
	sendMessage       func(context.Context, string, string, string) (*domain.Message, error)

	listNotifications func(context.Context) ([]domain.Notification, error)
	markRead          func(context.Context, string) error
	markAllRead       func(context.Context) error

	logouts int32
}

func (f *fakeAPI) Login(ctx context.Context, req client.LoginRequest) (*domain.UserProfile, error) {
	if f.login == nil {
		return nil, errNotStubbed
	}
	return f.login(ctx, req)
}

func (f *fakeAPI) Register(ctx context.Context, req client.RegisterRequest) (*domain.UserProfile, error) {
	if f.register == nil {
		return nil, errNotStubbed
	}
	return f.register(ctx, req)
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	atomic.AddInt32(&f.logouts, 1)
	if f.logout == nil {
		return nil
	}
	return f.logout(ctx)
}

func (f *fakeAPI) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	if f.currentUser == nil {
		return nil, errNotStubbed
	}
	return f.currentUser(ctx)
}

func (f *fakeAPI) ListProperties(ctx context.Context, fl domain.PropertyFilters, page, limit int) (*client.Page[domain.Property], error) {
	if f.listProperties == nil {
		return nil, errNotStubbed
	}
	return f.listProperties(ctx, fl, page, limit)
}

func (f *fakeAPI) RecentProperties(ctx context.Context, limit int) ([]domain.Property, error) {
	if f.recentProperties == nil {
		return nil, errNotStubbed
	}
	return f.recentProperties(ctx, limit)
}

func (f *fakeAPI) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	if f.getProperty == nil {
		return nil, errNotStubbed
	}
	return f.getProperty(ctx, id)
}

func (f *fakeAPI) ListMatches(ctx context.Context) ([]domain.Match, error) {
	if f.listMatches == nil {
		return nil, errNotStubbed
	}
	return f.listMatches(ctx)
}

func (f *fakeAPI) UpdateMatchStatus(ctx context.Context, id string, status domain.MatchStatus) (*domain.Match, error) {
	if f.updateMatchStatus == nil {
		return nil, errNotStubbed
	}
	return f.updateMatchStatus(ctx, id, status)
}

func (f *fakeAPI) ListBookings(ctx context.Context, page, limit int) (*client.Page[domain.Booking], error) {
	if f.listBookings == nil {
		return nil, errNotStubbed
	}
	return f.listBookings(ctx, page, limit)
}

func (f *fakeAPI) CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*domain.Booking, error) {
	if f.createBooking == nil {
		return nil, errNotStubbed
	}
	return f.createBooking(ctx, req)
}

func (f *fakeAPI) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if f.cancelBooking == nil {
		return nil, errNotStubbed
	}
	return f.cancelBooking(ctx, id)
}

func (f *fakeAPI) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	if f.listConversations == nil {
		return nil, errNotStubbed
	}
	return f.listConversations(ctx)
}

func (f *fakeAPI) GetMessages(ctx context.Context, id string, limit int) ([]domain.Message, error) {
	if f.getMessages == nil {
		return nil, errNotStubbed
	}
	return f.getMessages(ctx, id, limit)
}

func (f *fakeAPI) SendMessage(ctx context.Context, id, body, clientID string) (*domain.Message, error) {
	if f.sendMessage == nil {
		return nil, errNotStubbed
	}
	return f.sendMessage(ctx, id, body, clientID)
}

func (f *fakeAPI) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	if f.listNotifications == nil {
		return nil, errNotStubbed
	}
	return f.listNotifications(ctx)
}

func (f *fakeAPI) MarkNotificationRead(ctx context.Context, id string) error {
	if f.markRead == nil {
		return errNotStubbed
	}
	return f.markRead(ctx, id)
}

func (f *fakeAPI) MarkAllNotificationsRead(ctx context.Context) error {
	if f.markAllRead == nil {
		return errNotStubbed
	}
	return f.markAllRead(ctx)
}

// memCache is an in-memory ProfileCache.
type memCache struct {
	mu      sync.Mutex
	user    *domain.UserProfile
	cleared int
}

func (c *memCache) Load() (*domain.UserProfile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, nil
}

func (c *memCache) Save(u domain.UserProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &u
	return nil
}

func (c *memCache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.cleared++
	return nil
}

type harness struct {
	api     *fakeAPI
	store   *store.Store
	monitor *session.Monitor
	cache   *memCache
	d       *Dispatcher
}

func newHarness() *harness {
	api := &fakeAPI{}
	s := store.New()
	m := session.New(s, api.Logout, nil)
	cache := &memCache{}
	return &harness{
		api:     api,
		store:   s,
		monitor: m,
		cache:   cache,
		d:       New(api, s, m, WithProfileCache(cache), WithPageSize(2)),
	}
}

// signIn puts the store in a signed-in state without going through Login.
func (h *harness) signIn() {
	h.store.Dispatch(store.AuthSucceeded{User: domain.UserProfile{ID: "u1", Email: "sam@uni.ac.uk"}})
}
