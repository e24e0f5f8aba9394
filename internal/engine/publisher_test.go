package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partscout/partscout/internal/service"
)

func TestEventBus_FanOut(t *testing.T) {
	bus := NewEventBus()

	ch1, unsub1 := bus.Subscribe()
	ch2, unsub2 := bus.Subscribe()
	defer unsub1()
	defer unsub2()

	bus.Publish(service.Event{Type: service.EventProgress, Message: "one"})

	e1 := <-ch1
	e2 := <-ch2
	assert.Equal(t, "one", e1.Message)
	assert.Equal(t, "one", e2.Message)
}

func TestEventBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewEventBus()

	// Must not block or panic.
	bus.Publish(service.Event{Type: service.EventProgress})
}

func TestEventBus_SlowSubscriberDropsOldest(t *testing.T) {
	bus := NewEventBus()

	ch, unsub := bus.Subscribe()
	defer unsub()

	// Overfill the queue without consuming.
	total := subscriberBuffer + 10
	for i := 0; i < total; i++ {
		bus.Publish(service.Event{Type: service.EventProgress, Message: fmt.Sprintf("%d", i)})
	}

	var received []service.Event
	for {
		select {
		case e := <-ch:
			received = append(received, e)
			continue
		default:
		}
		break
	}

	require.Len(t, received, subscriberBuffer, "queue stays bounded")
	assert.Equal(t, fmt.Sprintf("%d", total-1), received[len(received)-1].Message,
		"the newest event survives; oldest are shed")
}

func TestEventBus_UnsubscribeClosesChannel(t *testing.T) {
	bus := NewEventBus()

	ch, unsub := bus.Subscribe()
	unsub()

	_, ok := <-ch
	assert.False(t, ok)

	// Double unsubscribe is a no-op.
	unsub()

	// Publishing after unsubscribe must not reach the closed channel.
	bus.Publish(service.Event{Type: service.EventProgress})
}
