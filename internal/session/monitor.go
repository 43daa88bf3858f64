// Package session decides when a failed call means the session is gone and
// drives the app back to the signed-out state exactly once per expiry.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
)

// LogoutFunc revokes the session server-side.
type LogoutFunc func(ctx context.Context) error

const defaultRevokeTimeout = 10 * time.Second

type state int

const (
	armed state = iota
	handling
	handled
)

// Monitor is the single authority for session expiry. The zero value and a
// nil *Monitor are unbound: they classify errors but never act on them, so
// an expiry shows up as an ordinary error on the screen that hit it.
type Monitor struct {
	store    *store.Store
	logout   LogoutFunc
	notifier Notifier
	log      logrus.FieldLogger
	timeout  time.Duration

	mu    sync.Mutex
	state state
}

// Option customizes a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Monitor) { m.log = log }
}

// WithRevokeTimeout bounds the server-side logout attempt.
func WithRevokeTimeout(d time.Duration) Option {
	return func(m *Monitor) { m.timeout = d }
}

// New binds a monitor to a store. logout and notifier may be nil; without
// notifier the notice is raised in the store's UI slice. A nil store leaves
// the monitor unbound, and expiries are then recorded as ordinary per-screen
// errors with no sign-out.
func New(s *store.Store, logout LogoutFunc, notifier Notifier, opts ...Option) *Monitor {
	m := &Monitor{
		store:    s,
		logout:   logout,
		notifier: notifier,
		log:      logrus.StandardLogger(),
		timeout:  defaultRevokeTimeout,
	}
	if m.notifier == nil && s != nil {
		m.notifier = StoreNotifier{Store: s}
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Classify reports whether err means the session has expired. It is pure and
// nil-safe.
func (m *Monitor) Classify(err error) bool {
	return Expired(err)
}

// Expired reports whether err means the session has expired.
func Expired(err error) bool {
	if err == nil {
		return false
	}
	return client.KindOf(err) == client.KindUnauthorized
}

// HandleExpiration acts on err if it signals an expired session: it signs the
// user out locally, then asks the server to revoke the session (best effort),
// raises one notice and returns true. Further expiries are absorbed silently until
// Rearm. Any other error returns false with no side effect.
func (m *Monitor) HandleExpiration(ctx context.Context, err error) bool {
	if !Expired(err) {
		return false
	}
	if m == nil || m.store == nil {
		logrus.WithError(err).Warn("session expired but no monitor is bound; ignoring")
		return false
	}

	m.mu.Lock()
	if m.state != armed {
		m.mu.Unlock()
		m.log.Debug("session expiry already handled")
		return true
	}
	m.state = handling
	m.mu.Unlock()

	m.log.WithError(err).Info("session expired; logging out")
	m.store.Dispatch(store.LoggedOut{})
	m.revoke(ctx)
	if m.notifier != nil {
		m.notifier.Notify(NoticeTitle, NoticeBody)
	}

	m.mu.Lock()
	m.state = handled
	m.mu.Unlock()
	return true
}

func (m *Monitor) revoke(ctx context.Context) {
	if m.logout == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()
	if err := m.logout(ctx); err != nil {
		m.log.WithError(err).Warn("server logout failed; signing out locally")
	}
}

// Rearm lets the next expiry be handled again. Called after a successful
// login, registration or session restore.
func (m *Monitor) Rearm() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == handling {
		return
	}
	m.state = armed
}

// Armed reports whether the next expiry would trigger a logout.
func (m *Monitor) Armed() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == armed
}

// WithHandling runs op. If it fails because the session expired, the expiry
// is handled, onExpired (if any) is called and the zero value is returned
// with a nil error. Other errors are returned unchanged.
func WithHandling[T any](ctx context.Context, m *Monitor, op func(context.Context) (T, error), onExpired func()) (T, error) {
	v, err := op(ctx)
	if err == nil {
		return v, nil
	}
	if m.HandleExpiration(ctx, err) {
		if onExpired != nil {
			onExpired()
		}
		var zero T
		return zero, nil
	}
	return v, err
}
