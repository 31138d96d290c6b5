package events

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// chanSubscriber is an in-memory Subscriber fed by the test.
type chanSubscriber struct {
	ch    chan []byte
	topic string
}

func (s *chanSubscriber) Subscribe(topic string) (<-chan []byte, func(), error) {
	s.topic = topic
	return s.ch, func() {}, nil
}

func (s *chanSubscriber) Close() error { return nil }

func TestWatch_DebouncesBursts(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan []byte, 16)}
	var refreshes atomic.Int32
	refreshed := make(chan struct{}, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, sub, ResourceTopic(ResourceSlot), 50*time.Millisecond, nil, func(context.Context) error {
			refreshes.Add(1)
			refreshed <- struct{}{}
			return nil
		})
	}()

	for i := 0; i < 5; i++ {
		sub.ch <- []byte(`{}`)
	}

	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for refresh")
	}
	// Give a stray second refresh time to show up.
	time.Sleep(150 * time.Millisecond)
	if n := refreshes.Load(); n != 1 {
		t.Errorf("refreshes = %d, want 1", n)
	}
	if sub.topic != "cafe.slot.*" {
		t.Errorf("topic = %q", sub.topic)
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch returned %v", err)
	}
}

func TestWatch_ReconnectRefreshesImmediately(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan []byte)}
	reconnect := make(chan struct{}, 1)
	refreshed := make(chan struct{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Watch(ctx, sub, TopicAll, time.Hour, reconnect, func(context.Context) error {
			refreshed <- struct{}{}
			return nil
		})
	}()

	reconnect <- struct{}{}
	select {
	case <-refreshed:
	case <-time.After(2 * time.Second):
		t.Fatal("reconnect did not trigger a refresh")
	}
}

func TestWatch_StopsOnClosedChannelAndError(t *testing.T) {
	sub := &chanSubscriber{ch: make(chan []byte)}
	close(sub.ch)
	if err := Watch(context.Background(), sub, TopicAll, time.Millisecond, nil, nil); err != nil {
		t.Errorf("closed channel: err = %v, want nil", err)
	}

	boom := errors.New("boom")
	sub = &chanSubscriber{ch: make(chan []byte, 1)}
	sub.ch <- []byte(`{}`)
	err := Watch(context.Background(), sub, TopicAll, time.Millisecond, nil, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}

func TestPoll(t *testing.T) {
	var n atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Poll(ctx, 10*time.Millisecond, func(context.Context) error {
			if n.Add(1) == 3 {
				cancel()
			}
			return nil
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Poll returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Poll did not stop")
	}
	if n.Load() < 3 {
		t.Errorf("refreshes = %d, want >= 3", n.Load())
	}
}

func TestPoll_RejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		called := false
		err := Poll(context.Background(), interval, func(context.Context) error {
			called = true
			return nil
		})
		if err == nil {
			t.Errorf("Poll(%s) = nil, want error", interval)
		}
		if called {
			t.Errorf("Poll(%s) called refresh", interval)
		}
	}
}
