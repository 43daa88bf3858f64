package domain

import (
	"strings"
	"time"
)

// Role is the account type of a user.
type Role string

const (
	RoleStudent  Role = "student"
	RoleLandlord Role = "landlord"
)

// UserProfile is the non-secret profile of the signed-in user.
// It is the only identity data the client keeps on disk.
type UserProfile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       Role      `json:"role"`
	University string    `json:"university,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	AvatarURL  string    `json:"avatarUrl,omitempty"`
	Verified   bool      `json:"verified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FullName joins first and last name, falling back to the email.
func (u UserProfile) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
