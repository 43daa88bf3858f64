package store

import "github.com/naveenspark/campusnest/pkg/domain"

// ChatsState holds conversations and the messages of opened conversations.
type ChatsState struct {
	Conversations Collection[domain.Conversation]
	Status        Status

	// Messages maps conversation id to its messages, oldest first.
	Messages       map[string][]domain.Message
	MessagesStatus Status
	Active         string
}

func (s ChatsState) reduce(a Action) ChatsState {
	switch a := a.(type) {
	case Request:
		switch a.Ticket.Domain {
		case DomainChats:
			s.Status = s.Status.request(a.Ticket.Seq)
		case DomainMessages:
			s.MessagesStatus = s.MessagesStatus.request(a.Ticket.Seq)
		}
	case Failure:
		switch a.Ticket.Domain {
		case DomainChats:
			s.Status, _ = s.Status.fail(a.Ticket.Seq, a.Message)
		case DomainMessages:
			s.MessagesStatus, _ = s.MessagesStatus.fail(a.Ticket.Seq, a.Message)
		}
	case ConversationsLoaded:
		st, ok := s.Status.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.Status = st
		s.Conversations = NewCollection(a.Items, conversationKey)
	case MessagesLoaded:
		st, ok := s.MessagesStatus.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.MessagesStatus = st
		s.Messages = s.withMessages(a.ConversationID, append([]domain.Message(nil), a.Items...))
		s.Active = a.ConversationID
		s.Conversations, _ = s.Conversations.Update(a.ConversationID, func(c domain.Conversation) domain.Conversation {
			c.UnreadCount = 0
			return c
		})
	case MessageReceived:
		m := a.Message
		s.Messages = s.withMessages(m.ConversationID, mergeMessage(s.Messages[m.ConversationID], m))
		s.Conversations, _ = s.Conversations.Update(m.ConversationID, func(c domain.Conversation) domain.Conversation {
			if c.LastMessageAt == nil || !m.CreatedAt.Before(*c.LastMessageAt) {
				at := m.CreatedAt
				c.LastMessage = m.Body
				c.LastMessageAt = &at
			}
			return c
		})
	case ResetUserData:
		return ChatsState{Status: s.Status.reset(), MessagesStatus: s.MessagesStatus.reset()}
	}
	return s
}

func (s ChatsState) withMessages(id string, msgs []domain.Message) map[string][]domain.Message {
	next := make(map[string][]domain.Message, len(s.Messages)+1)
	for k, v := range s.Messages {
		next[k] = v
	}
	next[id] = msgs
	return next
}

// mergeMessage appends m unless a message with the same id, or the same
// client id from this device, is already present; then it replaces it.
func mergeMessage(msgs []domain.Message, m domain.Message) []domain.Message {
	out := append([]domain.Message(nil), msgs...)
	for i, existing := range out {
		if existing.ID == m.ID || (m.ClientID != "" && existing.ClientID == m.ClientID) {
			out[i] = m
			return out
		}
	}
	return append(out, m)
}
