package store

import "github.com/naveenspark/campusnest/pkg/domain"

// NotificationsState holds in-app notifications, newest first.
type NotificationsState struct {
	Items       Collection[domain.Notification]
	Status      Status
	UnreadCount int
}

func (s NotificationsState) reduce(a Action) NotificationsState {
	switch a := a.(type) {
	case Request:
		if a.Ticket.Domain == DomainNotifications {
			s.Status = s.Status.request(a.Ticket.Seq)
		}
	case Failure:
		if a.Ticket.Domain == DomainNotifications {
			s.Status, _ = s.Status.fail(a.Ticket.Seq, a.Message)
		}
	case NotificationsLoaded:
		st, ok := s.Status.succeed(a.Ticket.Seq)
		if !ok {
			return s
		}
		s.Status = st
		s.Items = NewCollection(a.Items, notificationKey)
		s.UnreadCount = 0
		for _, n := range a.Items {
			if !n.Read {
				s.UnreadCount++
			}
		}
	case NotificationRead:
		n, ok := s.Items.Get(a.ID)
		if !ok || n.Read {
			return s
		}
		n.Read = true
		s.Items, _ = s.Items.Replace(a.ID, n)
		if s.UnreadCount > 0 {
			s.UnreadCount--
		}
	case AllNotificationsRead:
		s.Items = s.Items.Map(func(n domain.Notification) domain.Notification {
			n.Read = true
			return n
		})
		s.UnreadCount = 0
	case NotificationReceived:
		if s.Items.Has(a.Notification.ID) {
			return s
		}
		s.Items = s.Items.Prepend(a.Notification, notificationKey)
		if !a.Notification.Read {
			s.UnreadCount++
		}
	case ResetUserData:
		return NotificationsState{Status: s.Status.reset()}
	}
	return s
}
