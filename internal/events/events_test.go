package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
)

func TestTopic(t *testing.T) {
	for _, tc := range []struct {
		got, want string
	}{
		{Topic(ResourcePet, ActionCreated), "cafe.pet.created"},
		{Topic(ResourceLeaveRequest, ActionApproved), "cafe.leave_request.approved"},
		{ResourceTopic(ResourceSlot), "cafe.slot.*"},
		{Change{Resource: ResourceBreed, Action: ActionDeleted}.Topic(), "cafe.breed.deleted"},
		{TopicAll, "cafe.>"},
	} {
		if tc.got != tc.want {
			t.Errorf("topic = %q, want %q", tc.got, tc.want)
		}
	}
}

func TestNoopPublisher_Publish(t *testing.T) {
	pub := &NoopPublisher{}
	err := Emit(context.Background(), pub, Change{Resource: ResourcePet, ID: "1", Action: ActionCreated})
	if err != nil {
		t.Fatalf("NoopPublisher.Publish returned unexpected error: %v", err)
	}
	if err := pub.Close(); err != nil {
		t.Fatalf("NoopPublisher.Close returned unexpected error: %v", err)
	}
}

func TestPublishers_ImplementPublisher(t *testing.T) {
	var _ Publisher = (*NoopPublisher)(nil)
	var _ Publisher = (*NATSPublisher)(nil)
}

func TestNATSPublisher_Emit(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	// Subscribe to capture published messages.
	nc, err := nats.Connect(url)
	if err != nil {
		t.Fatalf("connecting subscriber: %v", err)
	}
	defer nc.Close()

	ch := make(chan *nats.Msg, 1)
	topic := Topic(ResourceLeaveRequest, ActionRejected)
	sub, err := nc.ChanSubscribe(topic, ch)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	defer sub.Unsubscribe() //nolint:errcheck
	nc.Flush()

	change := Change{Resource: ResourceLeaveRequest, ID: "42", Action: ActionRejected, Actor: "7"}
	if err := Emit(context.Background(), pub, change); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	select {
	case msg := <-ch:
		var got Change
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshaling change: %v", err)
		}
		if got.ID != "42" || got.Action != ActionRejected || got.Actor != "7" {
			t.Errorf("change = %+v", got)
		}
		if got.At.IsZero() {
			t.Error("At was not stamped")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
	}
}

func TestNATSPublisher_PublishWithDeadline(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pub.Publish(ctx, Topic(ResourcePet, ActionUpdated), Change{ID: "1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestNATSPublisher_MarshalError(t *testing.T) {
	url := startTestNATS(t)

	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	defer pub.Close()

	if err := pub.Publish(context.Background(), "cafe.pet.created", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}
}
