package events

import (
	"testing"
	"time"
)

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventOrderCreated)

	bus.Publish(EventOrderCreated, Payload{"order_id": "X"})

	select {
	case payload := <-sub:
		if payload["order_id"] != "X" {
			t.Errorf("payload = %v", payload)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBusIgnoresOtherEventTypes(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventOrderDeleted)

	bus.Publish(EventOrderCreated, Payload{"order_id": "X"})

	select {
	case payload := <-sub:
		t.Fatalf("unexpected delivery: %v", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(EventOrderUpdated)
	bus.Unsubscribe(EventOrderUpdated, sub)

	if _, open := <-sub; open {
		t.Fatal("channel still open after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	bus.Publish(EventOrderUpdated, Payload{})
}
