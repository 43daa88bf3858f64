package thunk

import (
	"context"
	"fmt"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// FetchBookings loads a page of bookings. Page 1 replaces the list, later
// pages are appended.
func (d *Dispatcher) FetchBookings(ctx context.Context, page int) (*client.Page[domain.Booking], error) {
	if page < 1 {
		page = 1
	}
	return run(ctx, d, "FetchBookings", store.DomainBookings,
		func(ctx context.Context) (*client.Page[domain.Booking], error) {
			return d.api.ListBookings(ctx, page, d.pageSize)
		},
		func(tk store.Ticket, p *client.Page[domain.Booking]) store.Action {
			return store.BookingsLoaded{Ticket: tk, Items: p.Items, Pagination: p.Pagination, Append: page > 1}
		})
}

// CreateBooking requests a booking.
func (d *Dispatcher) CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*domain.Booking, error) {
	switch {
	case req.PropertyID == "":
		return nil, validation("CreateBooking", "property id is required")
	case req.MoveIn.IsZero():
		return nil, validation("CreateBooking", "move-in date is required")
	case req.MoveOut != nil && !req.MoveOut.After(req.MoveIn):
		return nil, validation("CreateBooking", "move-out must be after move-in")
	}
	return mutate(ctx, d, "CreateBooking",
		func(ctx context.Context) (*domain.Booking, error) {
			return d.api.CreateBooking(ctx, req)
		},
		func(b *domain.Booking) store.Action {
			return store.BookingCreated{Booking: *b}
		})
}

// CancelBooking cancels a pending or confirmed booking.
func (d *Dispatcher) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if b, ok := d.store.State().Bookings.Items.Get(id); ok && !b.Status.Cancellable() {
		return nil, validation("CancelBooking", fmt.Sprintf("a %s booking cannot be cancelled", b.Status))
	}
	return mutate(ctx, d, "CancelBooking",
		func(ctx context.Context) (*domain.Booking, error) {
			return d.api.CancelBooking(ctx, id)
		},
		func(b *domain.Booking) store.Action {
			return store.BookingUpdated{Booking: *b}
		})
}
