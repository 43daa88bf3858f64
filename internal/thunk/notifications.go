package thunk

import (
	"context"

	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/domain"
)

// FetchNotifications loads in-app notifications.
func (d *Dispatcher) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	return run(ctx, d, "FetchNotifications", store.DomainNotifications,
		d.api.ListNotifications,
		func(tk store.Ticket, items []domain.Notification) store.Action {
			return store.NotificationsLoaded{Ticket: tk, Items: items}
		})
}

// MarkAsRead marks one notification read.
func (d *Dispatcher) MarkAsRead(ctx context.Context, id string) error {
	_, err := mutate(ctx, d, "MarkAsRead",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, d.api.MarkNotificationRead(ctx, id)
		},
		func(struct{}) store.Action { return store.NotificationRead{ID: id} })
	return err
}

// MarkAllAsRead marks every notification read.
func (d *Dispatcher) MarkAllAsRead(ctx context.Context) error {
	_, err := mutate(ctx, d, "MarkAllAsRead",
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, d.api.MarkAllNotificationsRead(ctx)
		},
		func(struct{}) store.Action { return store.AllNotificationsRead{} })
	return err
}
