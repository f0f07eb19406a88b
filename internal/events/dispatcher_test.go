package events

import (
	"context"
	"errors"
	"testing"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var received []Event
	dispatcher.Subscribe(EventAssetCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	dispatcher.Subscribe(EventAssetDeleted, func(_ context.Context, event Event) error {
		t.Errorf("unexpected delivery of %s", event.Type)
		return nil
	})

	err := dispatcher.Publish(context.Background(), Event{
		Type:     EventAssetCreated,
		Resource: "sn-100",
		Actor:    "alice",
	})
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0].Resource != "sn-100" || received[0].Actor != "alice" {
		t.Errorf("event = %+v, want resource sn-100 actor alice", received[0])
	}
}

func TestDispatcherFillsIDAndTimestamp(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var got Event
	dispatcher.Subscribe(EventLicenseInstalled, func(_ context.Context, event Event) error {
		got = event
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventLicenseInstalled}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if got.ID == "" {
		t.Error("event ID not assigned")
	}
	if got.Timestamp.IsZero() {
		t.Error("event timestamp not assigned")
	}
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	dispatcher.Subscribe(EventAssetMoved, func(context.Context, Event) error {
		return errors.New("boom")
	})

	delivered := false
	dispatcher.Subscribe(EventAssetMoved, func(context.Context, Event) error {
		delivered = true
		return nil
	})

	if err := dispatcher.Publish(context.Background(), Event{Type: EventAssetMoved}); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if !delivered {
		t.Error("second handler not invoked after first handler error")
	}
}
