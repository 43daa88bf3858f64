// Package thunk runs remote operations against the store: each one marks its
// domain as loading, calls the API and records the outcome. A failure caused
// by an expired session is handed to the session monitor and never surfaces
// as a domain error.
package thunk

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/naveenspark/campusnest/internal/session"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// AuthAPI is the account half of the API.
type AuthAPI interface {
	Login(ctx context.Context, req client.LoginRequest) (*domain.UserProfile, error)
	Register(ctx context.Context, req client.RegisterRequest) (*domain.UserProfile, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)
}

// PropertyAPI serves listings.
type PropertyAPI interface {
	ListProperties(ctx context.Context, f domain.PropertyFilters, page, limit int) (*client.Page[domain.Property], error)
	RecentProperties(ctx context.Context, limit int) ([]domain.Property, error)
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
}

// MatchAPI serves suggested properties.
type MatchAPI interface {
	ListMatches(ctx context.Context) ([]domain.Match, error)
	UpdateMatchStatus(ctx context.Context, id string, status domain.MatchStatus) (*domain.Match, error)
}

// BookingAPI serves reservations.
type BookingAPI interface {
	ListBookings(ctx context.Context, page, limit int) (*client.Page[domain.Booking], error)
	CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (*domain.Booking, error)
}

// ChatAPI serves conversations.
type ChatAPI interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	GetMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
	SendMessage(ctx context.Context, conversationID, body, clientID string) (*domain.Message, error)
}

// NotificationAPI serves in-app notifications.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

// API is everything the dispatcher calls. *client.Client implements it.
type API interface {
	AuthAPI
	PropertyAPI
	MatchAPI
	BookingAPI
	ChatAPI
	NotificationAPI
}

// ProfileCache persists the signed-in profile between runs.
type ProfileCache interface {
	Load() (*domain.UserProfile, error)
	Save(u domain.UserProfile) error
	Clear() error
}

const (
	defaultPageSize     = 20
	defaultRecentLimit  = 10
	defaultMessageLimit = 50
)

// Dispatcher runs thunks against one store.
type Dispatcher struct {
	api      API
	store    *store.Store
	monitor  *session.Monitor
	profiles ProfileCache
	log      logrus.FieldLogger
	pageSize int
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// WithProfileCache persists the profile on sign-in and clears it on sign-out.
func WithProfileCache(c ProfileCache) Option {
	return func(d *Dispatcher) { d.profiles = c }
}

// WithPageSize sets the page size of paginated fetches.
func WithPageSize(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.pageSize = n
		}
	}
}

// New creates a dispatcher. monitor may be nil, in which case expired
// sessions are reported like any other failure.
func New(api API, s *store.Store, monitor *session.Monitor, opts ...Option) *Dispatcher {
	silent := logrus.New()
	silent.SetOutput(io.Discard)
	d := &Dispatcher{
		api:      api,
		store:    s,
		monitor:  monitor,
		log:      silent,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Store returns the store the dispatcher writes to.
func (d *Dispatcher) Store() *store.Store { return d.store }

// run performs one fetch cycle for domain dom. On success the action built by
// loaded is dispatched and the payload returned. An expired session resolves
// to the zero value and a nil error; anything else is recorded on the domain
// and returned wrapped with the operation name.
func run[T any](ctx context.Context, d *Dispatcher, op string, dom store.Domain,
	call func(context.Context) (T, error), loaded func(store.Ticket, T) store.Action,
) (T, error) {
	var zero T
	tk := d.store.Begin(dom)
	v, err := call(ctx)
	if err != nil {
		if d.monitor.HandleExpiration(ctx, err) {
			d.store.Dispatch(store.Abandoned{Ticket: tk})
			d.log.WithField("op", op).Debug("session expired during fetch")
			return zero, nil
		}
		d.store.Dispatch(store.Failure{Ticket: tk, Message: client.Message(err)})
		d.log.WithError(err).WithFields(logrus.Fields{"op": op, "domain": dom}).Warn("fetch failed")
		return zero, fmt.Errorf("thunk.%s: %w", op, err)
	}
	d.store.Dispatch(loaded(tk, v))
	return v, nil
}

// mutate performs a per-item change. The store is updated only once the
// server confirms, and only if the user who started the change is still the
// one signed in; a failure is shown as a toast.
func mutate[T any](ctx context.Context, d *Dispatcher, op string,
	call func(context.Context) (T, error), confirmed func(T) store.Action,
) (T, error) {
	var zero T
	epoch := d.store.Epoch()
	v, err := call(ctx)
	if err != nil {
		if d.monitor.HandleExpiration(ctx, err) {
			return zero, nil
		}
		d.store.DispatchIn(epoch, store.ToastShown{Text: client.Message(err)})
		d.log.WithError(err).WithField("op", op).Warn("update failed")
		return zero, fmt.Errorf("thunk.%s: %w", op, err)
	}
	if a := confirmed(v); a != nil && !d.store.DispatchIn(epoch, a) {
		d.log.WithField("op", op).Debug("signed out before the update was confirmed")
	}
	return v, nil
}

// validation reports a request rejected before it reached the server.
func validation(op, msg string) error {
	return fmt.Errorf("thunk.%s: %w", op, &client.Error{Kind: client.KindValidation, Message: msg})
}
