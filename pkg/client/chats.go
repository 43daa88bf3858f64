package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// ListConversations returns the user's chat threads.
func (c *Client) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	var convs []domain.Conversation
	if err := c.get(ctx, "/api/chats", &convs); err != nil {
		return nil, fmt.Errorf("client.ListConversations: %w", err)
	}
	return convs, nil
}

// GetMessages returns the latest messages of a conversation, oldest first.
func (c *Client) GetMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))

	var msgs []domain.Message
	if err := c.get(ctx, "/api/chats/"+url.PathEscape(conversationID)+"/messages?"+params.Encode(), &msgs); err != nil {
		return nil, fmt.Errorf("client.GetMessages: %w", err)
	}
	return msgs, nil
}

// SendMessage posts a message. clientID is echoed back so the sender can
// recognize its own message on the realtime feed.
func (c *Client) SendMessage(ctx context.Context, conversationID, body, clientID string) (*domain.Message, error) {
	var msg domain.Message
	payload := map[string]string{"body": body, "clientId": clientID}
	if err := c.post(ctx, "/api/chats/"+url.PathEscape(conversationID)+"/messages", payload, &msg); err != nil {
		return nil, fmt.Errorf("client.SendMessage: %w", err)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("client.SendMessage: %w", errMissingData)
	}
	return &msg, nil
}
