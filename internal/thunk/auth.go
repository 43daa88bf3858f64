package thunk

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/naveenspark/campusnest/internal/session"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// Initialize restores the session at startup. The server is asked who the
// cookie belongs to; if it says nobody, the cached profile is dropped. If it
// cannot be reached, the cached profile is trusted until the next call
// proves otherwise, and the network error is returned.
func (d *Dispatcher) Initialize(ctx context.Context) (*domain.UserProfile, error) {
	d.store.Dispatch(store.AuthRequest{})

	u, err := d.api.CurrentUser(ctx)
	if err == nil {
		d.signedIn(*u)
		d.store.Dispatch(store.SessionRestore{User: u})
		return u, nil
	}

	if client.KindOf(err) == client.KindUnauthorized {
		d.clearProfile()
		d.store.Dispatch(store.SessionRestore{})
		return nil, nil
	}

	cached := d.loadProfile()
	d.store.Dispatch(store.SessionRestore{User: cached})
	if cached != nil {
		d.monitor.Rearm()
	}
	d.log.WithError(err).WithField("cached_profile", cached != nil).Warn("could not confirm session")
	return cached, fmt.Errorf("thunk.Initialize: %w", err)
}

// Login signs in with email and password.
func (d *Dispatcher) Login(ctx context.Context, req client.LoginRequest) (*domain.UserProfile, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return nil, d.authFailed("Login", validation("Login", "email and password are required"))
	}
	d.store.Dispatch(store.AuthRequest{})
	u, err := d.api.Login(ctx, req)
	if err != nil {
		return nil, d.authFailed("Login", fmt.Errorf("thunk.Login: %w", err))
	}
	d.signedIn(*u)
	d.store.Dispatch(store.AuthSucceeded{User: *u})
	d.log.WithField("user_id", u.ID).Info("signed in")
	return u, nil
}

// Register creates an account and signs in.
func (d *Dispatcher) Register(ctx context.Context, req client.RegisterRequest) (*domain.UserProfile, error) {
	req.Email = strings.TrimSpace(req.Email)
	switch {
	case req.Email == "" || req.Password == "":
		return nil, d.authFailed("Register", validation("Register", "email and password are required"))
	case req.Role != domain.RoleStudent && req.Role != domain.RoleLandlord:
		return nil, d.authFailed("Register", validation("Register", fmt.Sprintf("unknown role %q", req.Role)))
	}
	d.store.Dispatch(store.AuthRequest{})
	u, err := d.api.Register(ctx, req)
	if err != nil {
		return nil, d.authFailed("Register", fmt.Errorf("thunk.Register: %w", err))
	}
	d.signedIn(*u)
	d.store.Dispatch(store.AuthSucceeded{User: *u})
	d.log.WithField("user_id", u.ID).Info("registered")
	return u, nil
}

// Logout revokes the session. The local session ends even if the server
// cannot be reached.
func (d *Dispatcher) Logout(ctx context.Context) error {
	d.clearProfile()
	d.store.Dispatch(store.LoggedOut{})
	if err := d.api.Logout(ctx); err != nil {
		d.log.WithError(err).Warn("server logout failed; signed out locally")
	}
	return nil
}

// RefreshUser reloads the signed-in profile.
func (d *Dispatcher) RefreshUser(ctx context.Context) (*domain.UserProfile, error) {
	epoch := d.store.Epoch()
	u, err := session.WithHandling(ctx, d.monitor, d.api.CurrentUser, func() {
		d.log.Debug("session expired while refreshing profile")
	})
	if err != nil {
		return nil, fmt.Errorf("thunk.RefreshUser: %w", err)
	}
	if u == nil {
		return nil, nil
	}
	if !d.store.DispatchIn(epoch, store.UserRefreshed{User: *u}) {
		return nil, nil
	}
	d.saveProfile(*u)
	return u, nil
}

func (d *Dispatcher) authFailed(op string, err error) error {
	d.store.Dispatch(store.AuthFailed{Message: client.Message(err)})
	d.log.WithError(err).WithField("op", op).Info("authentication failed")
	return err
}

func (d *Dispatcher) signedIn(u domain.UserProfile) {
	d.saveProfile(u)
	d.monitor.Rearm()
}

func (d *Dispatcher) loadProfile() *domain.UserProfile {
	if d.profiles == nil {
		return nil
	}
	u, err := d.profiles.Load()
	if err != nil {
		d.log.WithError(err).Warn("could not read cached profile")
		return nil
	}
	return u
}

func (d *Dispatcher) saveProfile(u domain.UserProfile) {
	if d.profiles == nil {
		return
	}
	if err := d.profiles.Save(u); err != nil {
		d.log.WithError(err).WithFields(logrus.Fields{"user_id": u.ID}).Warn("could not cache profile")
	}
}

func (d *Dispatcher) clearProfile() {
	if d.profiles == nil {
		return
	}
	if err := d.profiles.Clear(); err != nil {
		d.log.WithError(err).Warn("could not clear cached profile")
	}
}
