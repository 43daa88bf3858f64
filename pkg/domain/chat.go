package domain

import "time"

// Conversation is a chat thread between the user and another party,
// usually a landlord about one property.
type Conversation struct {
	ID              string     `json:"id"`
	ParticipantID   string     `json:"participantId"`
	ParticipantName string     `json:"participantName"`
	PropertyID      string     `json:"propertyId,omitempty"`
	LastMessage     string     `json:"lastMessage,omitempty"`
	LastMessageAt   *time.Time `json:"lastMessageAt,omitempty"`
	UnreadCount     int        `json:"unreadCount"`
}

// Message is a single chat message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	ClientID       string    `json:"clientId,omitempty"` // echoed back for sends from this device
	CreatedAt      time.Time `json:"createdAt"`
}
