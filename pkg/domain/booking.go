package domain

import "time"

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Cancellable reports whether a booking in this status may still be cancelled.
func (s BookingStatus) Cancellable() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a reservation of a property by a student.
type Booking struct {
	ID         string        `json:"id"`
	PropertyID string        `json:"propertyId"`
	Property   *Property     `json:"property,omitempty"`
	StudentID  string        `json:"studentId"`
	Status     BookingStatus `json:"status"`
	MoveIn     time.Time     `json:"moveIn"`
	MoveOut    *time.Time    `json:"moveOut,omitempty"`
	TotalPrice float64       `json:"totalPrice"`
	Message    string        `json:"message,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}
