// Package events carries change notifications for cafe resources over NATS.
// Mutating CLI commands publish a Change after the API call succeeds;
// `cafe watch` and the gateway subscribe to refresh open views.
package events

import (
	"context"
	"time"
)

// Resource names used in topics.
const (
	ResourcePet          = "pet"
	ResourceBreed        = "breed"
	ResourceVaccineType  = "vaccine_type"
	ResourceTaskTemplate = "task_template"
	ResourceSlot         = "slot"
	ResourceLeaveRequest = "leave_request"
	ResourceTeam         = "team"
	ResourceShift        = "shift"
	ResourceUser         = "user"
)

// Actions used in topics.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionCancelled = "cancelled"
)

// TopicPrefix is the root of every cafe subject.
const TopicPrefix = "cafe"

// TopicAll matches every cafe change.
const TopicAll = TopicPrefix + ".>"

// Topic returns the subject for a resource/action pair, e.g.
// "cafe.leave_request.approved".
func Topic(resource, action string) string {
	return TopicPrefix + "." + resource + "." + action
}

// ResourceTopic matches every action on one resource, e.g. "cafe.slot.*".
func ResourceTopic(resource string) string {
	return TopicPrefix + "." + resource + ".*"
}

// Change is the payload published for every successful mutation.
type Change struct {
	Resource  string    `json:"resource"`
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	At        time.Time `json:"at"`
}

// Topic returns the subject the change is published on.
func (c Change) Topic() string { return Topic(c.Resource, c.Action) }

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Emit publishes c on its own topic, stamping At when unset.
func Emit(ctx context.Context, pub Publisher, c Change) error {
	if c.At.IsZero() {
		c.At = time.Now().UTC()
	}
	return pub.Publish(ctx, c.Topic(), c)
}
