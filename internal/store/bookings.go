package store

import "github.com/naveenspark/campusnest/pkg/domain"

// BookingsState holds the user's bookings, newest first.
type BookingsState struct {
	Items  Collection[domain.Booking]
	Status Status
	Cursor Cursor
}

func (s BookingsState) reduce(a Action) BookingsState {
	switch a := a.(type) {
	case Request:
		if a.Ticket.Domain == DomainBookings {
			s.Status = s.Status.request(a.Ticket.Seq)
		}
	case Failure:
		if a.Ticket.Domain == DomainBookings {
			s.Status, _ = s.Status.fail(a.Ticket.Seq, a.Message)
		}
	case BookingsLoaded:
		st, ok := s.Status.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.Status = st
		if a.Append {
			s.Items = s.Items.Append(a.Items, bookingKey)
			if a.Pagination.CurrentPage > s.Cursor.CurrentPage {
				s.Cursor = cursorFrom(a.Pagination)
			}
		} else {
			s.Items = NewCollection(a.Items, bookingKey)
			s.Cursor = cursorFrom(a.Pagination)
		}
	case BookingCreated:
		if !s.Items.Has(a.Booking.ID) {
			s.Cursor.TotalCount++
		}
		s.Items = s.Items.Prepend(a.Booking, bookingKey)
	case BookingUpdated:
		s.Items, _ = s.Items.Replace(a.Booking.ID, a.Booking)
	case ResetUserData:
		return BookingsState{Status: s.Status.reset()}
	}
	return s
}
