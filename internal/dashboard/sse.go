package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alfredjeanlab/cafedash/internal/events"
)

const (
	// sseBacklog is how many recent changes are kept for Last-Event-ID replay.
	sseBacklog = 256

	sseKeepaliveInterval = 15 * time.Second
)

// sseEvent is one relayed change.
type sseEvent struct {
	ID    uint64
	Topic string
	Data  []byte
}

// sseHub fans relayed changes out to connected browsers and keeps a short
// backlog for reconnects.
type sseHub struct {
	mu      sync.Mutex
	clients map[*sseClient]struct{}
	nextID  uint64
	backlog []sseEvent
}

type sseClient struct {
	topics []string
	ch     chan sseEvent
}

func newSSEHub() *sseHub {
	return &sseHub{clients: make(map[*sseClient]struct{})}
}

func (h *sseHub) broadcast(topic string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	evt := sseEvent{ID: h.nextID, Topic: topic, Data: payload}
	h.backlog = append(h.backlog, evt)
	if len(h.backlog) > sseBacklog {
		h.backlog = h.backlog[len(h.backlog)-sseBacklog:]
	}

	for c := range h.clients {
		if !c.matches(topic) {
			continue
		}
		select {
		case c.ch <- evt:
		default:
			// Slow browser; it will resync on reconnect.
		}
	}
}

// subscribe registers a client and, when lastID is set, returns the
// matching backlog events after it. Both happen under one lock, so every
// change is either replayed or delivered on the channel, never both.
func (h *sseHub) subscribe(topics []string, lastID *uint64) (*sseClient, []sseEvent) {
	c := &sseClient{topics: topics, ch: make(chan sseEvent, 64)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	if lastID == nil {
		return c, nil
	}
	var replay []sseEvent
	for _, evt := range h.backlogAfter(*lastID) {
		if c.matches(evt.Topic) {
			replay = append(replay, evt)
		}
	}
	return c, replay
}

func (h *sseHub) unsubscribe(c *sseClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// backlogAfter returns backlog events with ID > lastID, oldest first.
// h.mu must be held.
func (h *sseHub) backlogAfter(lastID uint64) []sseEvent {
	var out []sseEvent
	for _, evt := range h.backlog {
		if evt.ID > lastID {
			out = append(out, evt)
		}
	}
	return out
}

func (c *sseClient) matches(topic string) bool {
	if len(c.topics) == 0 {
		return true
	}
	for _, pattern := range c.topics {
		if matchTopic(pattern, topic) {
			return true
		}
	}
	return false
}

// matchTopic matches dot-separated topics with NATS wildcards: "*" is one
// segment, a trailing ">" is one or more.
func matchTopic(pattern, topic string) bool {
	if pattern == topic {
		return true
	}
	pat := strings.Split(pattern, ".")
	top := strings.Split(topic, ".")
	for i, p := range pat {
		if p == ">" {
			return i < len(top)
		}
		if i >= len(top) || (p != "*" && p != top[i]) {
			return false
		}
	}
	return len(pat) == len(top)
}

// Relay forwards every change on sub to connected browsers until ctx is
// cancelled.
func (s *Server) Relay(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicAll)
	if err != nil {
		return fmt.Errorf("subscribing to %s: %w", events.TopicAll, err)
	}
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case data, ok := <-ch:
			if !ok {
				return nil
			}
			var change events.Change
			if err := json.Unmarshal(data, &change); err != nil {
				s.logger.Warn("dropping malformed change", "error", err)
				continue
			}
			s.hub.broadcast(change.Topic(), data)
		}
	}
}

// handleEventStream handles GET /api/events/stream. The optional "topics"
// parameter is a comma-separated list of topic patterns.
func (s *Server) handleEventStream(c *gin.Context) {
	var topics []string
	for _, t := range strings.Split(c.Query("topics"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}

	var lastID *uint64
	if last := c.GetHeader("Last-Event-ID"); last != "" {
		if id, err := strconv.ParseUint(last, 10, 64); err == nil {
			lastID = &id
		}
	}
	sub, replay := s.hub.subscribe(topics, lastID)
	defer s.hub.unsubscribe(sub)

	w := c.Writer
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	if len(replay) > 0 {
		for _, evt := range replay {
			writeSSEEvent(w, evt)
		}
		w.Flush()
	}

	keepalive := time.NewTicker(sseKeepaliveInterval)
	defer keepalive.Stop()
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-sub.ch:
			writeSSEEvent(w, evt)
			w.Flush()
		case <-keepalive.C:
			fmt.Fprint(w, ":keepalive\n\n")
			w.Flush()
		}
	}
}

func writeSSEEvent(w gin.ResponseWriter, evt sseEvent) {
	fmt.Fprintf(w, "id:%d\nevent:%s\ndata:%s\n\n", evt.ID, evt.Topic, evt.Data)
}
