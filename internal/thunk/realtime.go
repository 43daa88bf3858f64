package thunk

import (
	"context"
	"fmt"
	"time"

	"github.com/naveenspark/campusnest/internal/session"
	"github.com/naveenspark/campusnest/internal/store"
	"github.com/naveenspark/campusnest/pkg/client"
)

// Feed is the realtime push connection. *client.Client implements it.
type Feed interface {
	Listen(ctx context.Context, handle func(client.Event)) error
}

// Backoff bounds the delay between realtime reconnects.
type Backoff struct {
	Min, Max time.Duration
}

var defaultBackoff = Backoff{Min: time.Second, Max: 30 * time.Second}

// Stream applies realtime events to the store until ctx is done, reconnecting
// when the connection drops. It returns nil when ctx ends or the session
// expired, and an error only for an expired session nobody handled.
func (d *Dispatcher) Stream(ctx context.Context, feed Feed, b Backoff) error {
	if b.Min <= 0 {
		b = defaultBackoff
	}
	delay := b.Min
	// Events belong to the identity signed in when the stream started.
	epoch := d.store.Epoch()
	apply := func(ev client.Event) { d.applyEvent(epoch, ev) }
	for {
		err := feed.Listen(ctx, apply)
		if ctx.Err() != nil {
			return nil
		}
		switch {
		case err == nil:
			delay = b.Min
			d.log.Debug("realtime feed closed by server; reconnecting")
		case d.monitor.HandleExpiration(ctx, err):
			return nil
		case session.Expired(err):
			return fmt.Errorf("thunk.Stream: %w", err)
		default:
			d.log.WithError(err).WithField("retry_in", delay.String()).Warn("realtime feed dropped")
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
		if err != nil {
			delay *= 2
			if b.Max > 0 && delay > b.Max {
				delay = b.Max
			}
		}
	}
}

func (d *Dispatcher) applyEvent(epoch uint64, ev client.Event) {
	switch ev.Type {
	case client.EventNotification:
		n, err := ev.Notification()
		if err != nil {
			d.log.WithError(err).Warn("realtime: bad notification")
			return
		}
		d.store.DispatchIn(epoch, store.NotificationReceived{Notification: *n})
	case client.EventMessage:
		m, err := ev.Message()
		if err != nil {
			d.log.WithError(err).Warn("realtime: bad message")
			return
		}
		d.store.DispatchIn(epoch, store.MessageReceived{Message: *m})
	default:
		d.log.WithField("type", ev.Type).Debug("realtime: ignoring event")
	}
}
