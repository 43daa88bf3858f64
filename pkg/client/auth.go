package client

import (
	"context"
	"fmt"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Role       domain.Role `json:"role"`
	University string      `json:"university,omitempty"`
	Phone      string      `json:"phone,omitempty"`
}

// Login signs in and returns the user's profile. The session cookie is
// stored in the client's jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.post(ctx, "/api/auth/login", req, &u); err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("client.Login: %w", errMissingData)
	}
	return &u, nil
}

// Register creates an account and signs in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.post(ctx, "/api/auth/register", req, &u); err != nil {
		return nil, fmt.Errorf("client.Register: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("client.Register: %w", errMissingData)
	}
	return &u, nil
}

// Logout revokes the session cookie server-side.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("client.Logout: %w", err)
	}
	return nil
}

// CurrentUser returns the profile bound to the current session cookie.
func (c *Client) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	var u domain.UserProfile
	if err := c.get(ctx, "/api/auth/me", &u); err != nil {
		return nil, fmt.Errorf("client.CurrentUser: %w", err)
	}
	if u.ID == "" {
		return nil, fmt.Errorf("client.CurrentUser: %w", errMissingData)
	}
	return &u, nil
}
