package service

import (
	"sync"
)

type EventPublisher interface {
	Publish(tenantID int64, event Event)
}

type Event struct {
	Type    string `json:"type"` // "batch", "regenerate"
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// EventBus fans events out to the subscribers of a tenant. Slow subscribers
// miss events rather than block publishers.
type EventBus struct {
	subscribers map[int64][]chan Event
	closed      bool
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[int64][]chan Event),
	}
}

func (eb *EventBus) Subscribe(tenantID int64) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 16)
	if eb.closed {
		close(ch)
		return ch
	}
	eb.subscribers[tenantID] = append(eb.subscribers[tenantID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(tenantID int64, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[tenantID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[tenantID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
	if len(eb.subscribers[tenantID]) == 0 {
		delete(eb.subscribers, tenantID)
	}
}

func (eb *EventBus) Publish(tenantID int64, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[tenantID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (eb *EventBus) Subscribers(tenantID int64) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[tenantID])
}

// Close ends every subscription. Later subscriptions receive a closed
// channel.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.closed = true
	for tenantID, subs := range eb.subscribers {
		for _, ch := range subs {
			close(ch)
		}
		delete(eb.subscribers, tenantID)
	}
}
