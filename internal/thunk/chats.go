package thunk

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// FetchConversations loads the user's chat threads.
func (d *Dispatcher) FetchConversations(ctx context.Context) ([]domain.Conversation, error) {
	return run(ctx, d, "FetchConversations", store.DomainChats,
		d.api.ListConversations,
		func(tk store.Ticket, items []domain.Conversation) store.Action {
			return store.ConversationsLoaded{Ticket: tk, Items: items}
		})
}

// FetchMessages opens a conversation and loads its latest messages.
func (d *Dispatcher) FetchMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	if conversationID == "" {
		return nil, validation("FetchMessages", "conversation id is required")
	}
	return run(ctx, d, "FetchMessages", store.DomainMessages,
		func(ctx context.Context) ([]domain.Message, error) {
			return d.api.GetMessages(ctx, conversationID, defaultMessageLimit)
		},
		func(tk store.Ticket, items []domain.Message) store.Action {
			return store.MessagesLoaded{Ticket: tk, ConversationID: conversationID, Items: items}
		})
}

// SendMessage posts body to a conversation. The message carries a client id
// so the copy echoed back on the realtime feed is merged, not duplicated.
func (d *Dispatcher) SendMessage(ctx context.Context, conversationID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, validation("SendMessage", "message is empty")
	}
	clientID := uuid.NewString()
	return mutate(ctx, d, "SendMessage",
		func(ctx context.Context) (*domain.Message, error) {
			return d.api.SendMessage(ctx, conversationID, body, clientID)
		},
		func(m *domain.Message) store.Action {
			msg := *m
			if msg.ClientID == "" {
				msg.ClientID = clientID
			}
			if msg.ConversationID == "" {
				msg.ConversationID = conversationID
			}
			return store.MessageReceived{Message: msg}
		})
}
