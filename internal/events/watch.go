package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// DefaultDebounce coalesces bursts of change events into one refresh.
const DefaultDebounce = 200 * time.Millisecond

// RefreshFunc reloads whatever the watcher is keeping current.
type RefreshFunc func(ctx context.Context) error

// Watch calls refresh after each burst of messages on topic, waiting for
// debounce of quiet before firing. A signal on reconnect triggers an
// immediate refresh to pick up anything missed while disconnected. Watch
// returns nil when ctx is done or the subscription closes, and the first
// refresh error otherwise.
func Watch(ctx context.Context, sub Subscriber, topic string, debounce time.Duration, reconnect <-chan struct{}, refresh RefreshFunc) error {
	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		return err
	}
	defer cancel()

	timer := time.NewTimer(0)
	timer.Stop()
	select {
	case <-timer.C:
	default:
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			timer.Reset(debounce)
		case <-reconnect:
			slog.Debug("events: reconnected, refreshing", "topic", topic)
			timer.Reset(0)
		case <-timer.C:
			if err := refresh(ctx); err != nil {
				return err
			}
		}
	}
}

// Poll calls refresh every interval until ctx is done.
func Poll(ctx context.Context, interval time.Duration, refresh RefreshFunc) error {
	if interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := refresh(ctx); err != nil {
				return err
			}
		}
	}
}
