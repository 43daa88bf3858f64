package domain

import "time"

// Notification is a single in-app notification.
// Type is one of "booking", "match", "message", "system".
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	RefID     string    `json:"refId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
