package sse

import (
	"sync"
)

// Event names relayed to dashboard clients.
const (
	EventCycleValidated = "cycleValidated"
	EventCycleClosed    = "cycleClosed"
	EventBulletinPaid   = "bulletinPaid"
	EventAlert          = "alert"
)

// BroadcastKey subscribes a client to events of every enterprise.
// SUPER_ADMIN dashboards use it.
const BroadcastKey = "*"

// Event is one dashboard push message, scoped to an enterprise.
type Event struct {
	EntrepriseID string
	Event        string
	Data         interface{}
}

// Hub manages dashboard subscribers and event broadcasting. Channels are
// keyed by enterprise id; publishing never blocks the caller.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a subscriber for an enterprise (or BroadcastKey) and
// returns the event channel and a cleanup function.
func (h *Hub) Subscribe(entrepriseID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[entrepriseID] == nil {
		h.subscribers[entrepriseID] = make(map[chan Event]struct{})
	}
	h.subscribers[entrepriseID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[entrepriseID], ch)
		close(ch)
		if len(h.subscribers[entrepriseID]) == 0 {
			delete(h.subscribers, entrepriseID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to every subscriber of the event's enterprise and
// to broadcast subscribers. Full channels are skipped, never waited on:
// a slow dashboard must not stall a lifecycle transition.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.send(h.subscribers[event.EntrepriseID], event)
	if event.EntrepriseID != BroadcastKey {
		h.send(h.subscribers[BroadcastKey], event)
	}
}

func (h *Hub) send(subs map[chan Event]struct{}, event Event) {
	for ch := range subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers for an enterprise.
func (h *Hub) SubscriberCount(entrepriseID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[entrepriseID]; ok {
		return len(subs)
	}
	return 0
}
