package domain

import "time"

// MatchStatus is the student's decision on an AI-suggested property.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchViewed   MatchStatus = "viewed"
	MatchLiked    MatchStatus = "liked"
	MatchRejected MatchStatus = "rejected"
)

var validMatchStatuses = map[MatchStatus]bool{
	MatchPending:  true,
	MatchViewed:   true,
	MatchLiked:    true,
	MatchRejected: true,
}

// ValidMatchStatus returns true if s is a known match status.
func ValidMatchStatus(s MatchStatus) bool {
	return validMatchStatuses[s]
}

// Match is an AI-generated pairing of the user with a property.
type Match struct {
	ID         string      `json:"id"`
	PropertyID string      `json:"propertyId"`
	Property   *Property   `json:"property,omitempty"`
	Score      float64     `json:"score"` // 0-100 compatibility
	Reasons    []string    `json:"reasons,omitempty"`
	Status     MatchStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
}
