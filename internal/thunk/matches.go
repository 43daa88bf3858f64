package thunk

import (
	"context"
	"fmt"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// FetchMatches loads the user's suggested properties.
func (d *Dispatcher) FetchMatches(ctx context.Context) ([]domain.Match, error) {
	return run(ctx, d, "FetchMatches", store.DomainMatches,
		d.api.ListMatches,
		func(tk store.Ticket, items []domain.Match) store.Action {
			return store.MatchesLoaded{Ticket: tk, Items: items}
		})
}

// UpdateMatchStatus records the user's reaction to a match.
func (d *Dispatcher) UpdateMatchStatus(ctx context.Context, id string, status domain.MatchStatus) (*domain.Match, error) {
	if !domain.ValidMatchStatus(status) {
		return nil, validation("UpdateMatchStatus", fmt.Sprintf("unknown match status %q", status))
	}
	return mutate(ctx, d, "UpdateMatchStatus",
		func(ctx context.Context) (*domain.Match, error) {
			return d.api.UpdateMatchStatus(ctx, id, status)
		},
		func(m *domain.Match) store.Action {
			if m.Status != "" {
				status = m.Status
			}
			return store.MatchStatusUpdated{ID: id, Status: status}
		})
}
