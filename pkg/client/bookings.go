package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// CreateBookingRequest is the payload for requesting a booking.
type CreateBookingRequest struct {
	PropertyID string     `json:"propertyId"`
	MoveIn     time.Time  `json:"moveIn"`
	MoveOut    *time.Time `json:"moveOut,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// ListBookings returns one page of the user's bookings.
func (c *Client) ListBookings(ctx context.Context, page, limit int) (*Page[domain.Booking], error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var bookings []domain.Booking
	p, err := c.getPage(ctx, "/api/bookings?"+params.Encode(), &bookings)
	if err != nil {
		return nil, fmt.Errorf("client.ListBookings: %w", err)
	}
	return &Page[domain.Booking]{Items: bookings, Pagination: p}, nil
}

// CreateBooking requests a booking for a property.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.post(ctx, "/api/bookings", req, &b); err != nil {
		return nil, fmt.Errorf("client.CreateBooking: %w", err)
	}
	if b.ID == "" {
		return nil, fmt.Errorf("client.CreateBooking: %w", errMissingData)
	}
	return &b, nil
}

// CancelBooking cancels a booking and returns its updated state.
func (c *Client) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.patch(ctx, "/api/bookings/"+url.PathEscape(id)+"/cancel", nil, &b); err != nil {
		return nil, fmt.Errorf("client.CancelBooking: %w", err)
	}
	if b.ID == "" {
		b.ID, b.Status = id, domain.BookingCancelled
	}
	return &b, nil
}
