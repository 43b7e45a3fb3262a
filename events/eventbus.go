package events

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mezonai/coins/logx"
)

const defaultSubscriberBuffer = 50

type SubscriberID string

type Subscriber struct {
	ID      SubscriberID
	Channel chan LedgerEvent
}

// EventBus fans events out to subscribers without ever blocking the publisher: a subscriber
// whose buffer is full misses the event.
type EventBus struct {
	subscribers map[SubscriberID]*Subscriber
	mu          sync.RWMutex
	buffer      int
}

func NewEventBus() *EventBus {
	return NewEventBusWithBuffer(defaultSubscriberBuffer)
}

func NewEventBusWithBuffer(buffer int) *EventBus {
	if buffer <= 0 {
		buffer = defaultSubscriberBuffer
	}
	return &EventBus{
		subscribers: make(map[SubscriberID]*Subscriber),
		buffer:      buffer,
	}
}

func (eb *EventBus) generateUUIDID() SubscriberID {
	id := uuid.Must(uuid.NewV7())
	return SubscriberID(id.String())
}

func (eb *EventBus) Subscribe() (SubscriberID, <-chan LedgerEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	id := eb.generateUUIDID()
	ch := make(chan LedgerEvent, eb.buffer)
	eb.subscribers[id] = &Subscriber{
		ID:      id,
		Channel: ch,
	}

	logx.Info("EVENTBUS", fmt.Sprintf("Subscribed | subscriber_id=%s | total_subscribers=%d", id, len(eb.subscribers)))
	return id, ch
}

// Unsubscribe removes a subscription by ID and closes its channel
func (eb *EventBus) Unsubscribe(id SubscriberID) bool {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subscriber, exists := eb.subscribers[id]
	if !exists {
		logx.Warn("EVENTBUS", fmt.Sprintf("Attempted to unsubscribe non-existent subscriber | subscriber_id=%s", id))
		return false
	}

	delete(eb.subscribers, id)
	close(subscriber.Channel)

	logx.Info("EVENTBUS", fmt.Sprintf("Unsubscribed | subscriber_id=%s | remaining_subscribers=%d", id, len(eb.subscribers)))
	return true
}

// Publish delivers event to every subscriber with buffer space and returns how many got it.
func (eb *EventBus) Publish(event LedgerEvent) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	delivered := 0
	for id, subscriber := range eb.subscribers {
		select {
		case subscriber.Channel <- event:
			delivered++
		default:
			logx.Warn("EVENTBUS", fmt.Sprintf("Subscriber channel full | subscriber_id=%s | event_type=%s | tx_hash=%s", id, event.Type(), event.TxHash()))
		}
	}
	logx.Debug("EVENTBUS", fmt.Sprintf("Published | event_type=%s | tx_hash=%s | delivered=%d", event.Type(), event.TxHash(), delivered))
	return delivered
}

// GetTotalSubscriptions returns the total number of active subscriptions
func (eb *EventBus) GetTotalSubscriptions() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.subscribers)
}

// HasSubscriber checks if a subscriber with the given ID exists
func (eb *EventBus) HasSubscriber(id SubscriberID) bool {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	_, exists := eb.subscribers[id]
	return exists
}
