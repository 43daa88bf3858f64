package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/naveenspark/campusnest/pkg/domain"
)

// Realtime event types.
const (
	EventNotification = "notification"
	EventMessage      = "message"
)

// Event is one push from the realtime feed.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Notification decodes a notification event.
func (e Event) Notification() (*domain.Notification, error) {
	if e.Type != EventNotification {
		return nil, fmt.Errorf("event type %q is not %q", e.Type, EventNotification)
	}
	var n domain.Notification
	if err := json.Unmarshal(e.Data, &n); err != nil {
		return nil, fmt.Errorf("decode notification: %w", err)
	}
	return &n, nil
}

// Message decodes a chat message event.
func (e Event) Message() (*domain.Message, error) {
	if e.Type != EventMessage {
		return nil, fmt.Errorf("event type %q is not %q", e.Type, EventMessage)
	}
	var m domain.Message
	if err := json.Unmarshal(e.Data, &m); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return &m, nil
}

// realtimeURL converts the API base URL to the websocket endpoint.
func (c *Client) realtimeURL() string {
	u := c.baseURL
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/api/realtime"
}

// Listen connects to the realtime feed with the session cookie and calls
// handle for every event until ctx is done or the connection drops.
// A rejected handshake is reported as an Error so session expiry can be
// detected the same way as for REST calls.
func (c *Client) Listen(ctx context.Context, handle func(Event)) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
		Jar:              c.httpClient.Jar,
	}

	conn, resp, err := dialer.DialContext(ctx, c.realtimeURL(), nil)
	if err != nil {
		if resp != nil && resp.StatusCode >= 400 {
			return fmt.Errorf("client.Listen: %w", newStatusError(resp.StatusCode, "realtime handshake rejected"))
		}
		return fmt.Errorf("client.Listen: %w", &Error{Kind: KindNetwork, Message: err.Error(), Err: err})
	}
	defer conn.Close() //nolint:errcheck // best-effort close

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.WriteMessage(websocket.CloseMessage, //nolint:errcheck // closing anyway
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			conn.Close() //nolint:errcheck
		case <-done:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				c.log.WithError(err).Warn("realtime: dropping malformed event")
				continue
			}
			return fmt.Errorf("client.Listen: %w", &Error{Kind: KindNetwork, Message: err.Error(), Err: err})
		}
		c.log.WithFields(logrus.Fields{"type": ev.Type}).Debug("realtime event")
		handle(ev)
	}
}
