package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// ListMatches returns the user's AI-generated property matches.
func (c *Client) ListMatches(ctx context.Context) ([]domain.Match, error) {
	var matches []domain.Match
	if err := c.get(ctx, "/api/matches", &matches); err != nil {
		return nil, fmt.Errorf("client.ListMatches: %w", err)
	}
	return matches, nil
}

// UpdateMatchStatus records the user's decision on a match.
func (c *Client) UpdateMatchStatus(ctx context.Context, id string, status domain.MatchStatus) (*domain.Match, error) {
	var m domain.Match
	body := map[string]domain.MatchStatus{"status": status}
	if err := c.patch(ctx, "/api/matches/"+url.PathEscape(id)+"/status", body, &m); err != nil {
		return nil, fmt.Errorf("client.UpdateMatchStatus: %w", err)
	}
	if m.ID == "" {
		m.ID, m.Status = id, status
	}
	return &m, nil
}
