package sse

import (
	"testing"
	"time"
)

func TestHubSubscribePublish(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("ent-1")
	defer cleanup()

	hub.Publish(Event{EntrepriseID: "ent-1", Event: EventCycleValidated, Data: "cycle-1"})

	select {
	case ev := <-ch:
		if ev.Event != EventCycleValidated {
			t.Errorf("expected event %q, got %q", EventCycleValidated, ev.Event)
		}
		if ev.Data != "cycle-1" {
			t.Errorf("expected data cycle-1, got %v", ev.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestHubScopesByEntreprise(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("ent-1")
	defer cleanup()

	hub.Publish(Event{EntrepriseID: "ent-2", Event: EventCycleClosed})

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastKeyReceivesAll(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe(BroadcastKey)
	defer cleanup()

	hub.Publish(Event{EntrepriseID: "ent-1", Event: EventBulletinPaid})
	hub.Publish(Event{EntrepriseID: "ent-2", Event: EventCycleClosed})

	for i := 0; i < 2; i++ {
		select {
		case <-ch:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestHubCleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe("ent-1")
	if got := hub.SubscriberCount("ent-1"); got != 1 {
		t.Fatalf("expected 1 subscriber, got %d", got)
	}

	cleanup()
	if got := hub.SubscriberCount("ent-1"); got != 0 {
		t.Fatalf("expected 0 subscribers after cleanup, got %d", got)
	}
}

func TestHubPublishSkipsFullChannel(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("ent-1")
	defer cleanup()

	for i := 0; i < 20; i++ {
		hub.Publish(Event{EntrepriseID: "ent-1", Event: EventAlert})
	}

	// Buffer is 10; the extra publishes must have been dropped, not blocked.
	if len(ch) != cap(ch) {
		t.Errorf("expected channel full at %d, got %d", cap(ch), len(ch))
	}
}
