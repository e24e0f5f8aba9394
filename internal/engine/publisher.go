package engine

import (
	"sync"

	"github.com/partscout/partscout/internal/service"
)

// subscriberBuffer bounds each observer's event queue. When a queue is full
// the oldest event is dropped so publishing never blocks row processing; a
// reconnecting observer catches up by polling engine status instead.
const subscriberBuffer = 64

// EventBus is an in-process fan-out publisher with best-effort delivery.
type EventBus struct {
	subscribers map[int]chan service.Event
	nextID      int
	mu          sync.Mutex
}

// NewEventBus creates an empty event bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[int]chan service.Event)}
}

// Subscribe registers an observer and returns its event channel along with
// an unsubscribe function. Unsubscribing closes the channel.
func (b *EventBus) Subscribe() (<-chan service.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan service.Event, subscriberBuffer)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

// Publish delivers the event to every subscriber without blocking. A full
// subscriber queue sheds its oldest event to make room.
func (b *EventBus) Publish(event service.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- event:
			default:
			}
		}
	}
}
