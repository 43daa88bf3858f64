package thunk

import (
	"context"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// FetchProperties loads the first page of listings matching f. Changing
// filters restarts pagination.
func (d *Dispatcher) FetchProperties(ctx context.Context, f domain.PropertyFilters) (*client.Page[domain.Property], error) {
	if !d.store.State().Properties.Filters.Equal(f) {
		d.store.Dispatch(store.PropertyFiltersSet{Filters: f})
	}
	return run(ctx, d, "FetchProperties", store.DomainProperties,
		func(ctx context.Context) (*client.Page[domain.Property], error) {
			return d.api.ListProperties(ctx, f, 1, d.pageSize)
		},
		func(tk store.Ticket, p *client.Page[domain.Property]) store.Action {
			return store.PropertiesLoaded{Ticket: tk, Items: p.Items, Pagination: p.Pagination}
		})
}

// LoadMoreProperties appends the next page for the current filters. It does
// nothing when there is no further page or a fetch is already running.
func (d *Dispatcher) LoadMoreProperties(ctx context.Context) (*client.Page[domain.Property], error) {
	st := d.store.State().Properties
	if !st.Cursor.HasMore || st.Status.Loading {
		return nil, nil
	}
	page, f := st.Cursor.NextPage(), st.Filters
	return run(ctx, d, "LoadMoreProperties", store.DomainProperties,
		func(ctx context.Context) (*client.Page[domain.Property], error) {
			return d.api.ListProperties(ctx, f, page, d.pageSize)
		},
		func(tk store.Ticket, p *client.Page[domain.Property]) store.Action {
			return store.PropertiesLoaded{Ticket: tk, Items: p.Items, Pagination: p.Pagination, Append: true}
		})
}

// FetchRecentProperties loads the newest listings.
func (d *Dispatcher) FetchRecentProperties(ctx context.Context) ([]domain.Property, error) {
	return run(ctx, d, "FetchRecentProperties", store.DomainRecentProperties,
		func(ctx context.Context) ([]domain.Property, error) {
			return d.api.RecentProperties(ctx, defaultRecentLimit)
		},
		func(tk store.Ticket, items []domain.Property) store.Action {
			return store.RecentPropertiesLoaded{Ticket: tk, Items: items}
		})
}

// FetchProperty loads one listing and opens it.
func (d *Dispatcher) FetchProperty(ctx context.Context, id string) (*domain.Property, error) {
	if id == "" {
		return nil, validation("FetchProperty", "property id is required")
	}
	d.store.Dispatch(store.PropertySelected{ID: id})
	return run(ctx, d, "FetchProperty", store.DomainPropertyDetail,
		func(ctx context.Context) (*domain.Property, error) {
			return d.api.GetProperty(ctx, id)
		},
		func(tk store.Ticket, p *domain.Property) store.Action {
			return store.PropertyLoaded{Ticket: tk, Property: *p}
		})
}
