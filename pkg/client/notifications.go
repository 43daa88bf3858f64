package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// ListNotifications returns the user's notifications, newest first.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var notifs []domain.Notification
	if err := c.get(ctx, "/api/notifications", &notifs); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	return notifs, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.patch(ctx, "/api/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.patch(ctx, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("client.MarkAllNotificationsRead: %w", err)
	}
	return nil
}
