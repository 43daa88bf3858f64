package store

import (
	"sort"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// IsAuthenticated selects whether a user is signed in.
func IsAuthenticated(s State) bool { return s.Auth.IsAuthenticated }

// CurrentUser selects the signed-in profile, or nil.
func CurrentUser(s State) *domain.UserProfile { return s.Auth.User }

// UnreadNotifications selects the unread badge count.
func UnreadNotifications(s State) int { return s.Notifications.UnreadCount }

// MatchesByScore selects matches not yet rejected, best first.
func MatchesByScore(s State) []domain.Match {
	var out []domain.Match
	for _, m := range s.Matches.Items.Items() {
		if m.Status != domain.MatchRejected {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// ActiveBookings selects bookings that can still be cancelled.
func ActiveBookings(s State) []domain.Booking {
	var out []domain.Booking
	for _, b := range s.Bookings.Items.Items() {
		if b.Status.Cancellable() {
			out = append(out, b)
		}
	}
	return out
}

// ActiveMessages selects the messages of the open conversation.
func ActiveMessages(s State) []domain.Message {
	return s.Chats.Messages[s.Chats.Active]
}
