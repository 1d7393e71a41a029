package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers game events to its subscribers on the publishing
// goroutine, in subscription order.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	handlers    int
	logger      zerolog.Logger
}

func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		logger: logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers s. A subscriber with the same ID takes over the
// earlier one's place in the delivery order.
func (eb *EventBus) Subscribe(s Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, existing := range eb.subscribers {
		if existing.ID() == s.ID() {
			eb.subscribers[i] = s
			eb.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber replaced")
			return
		}
	}
	eb.subscribers = append(eb.subscribers, s)
	eb.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber added")
}

// SubscribeFunc registers handler for a single event type.
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) {
	eb.mu.Lock()
	eb.handlers++
	id := fmt.Sprintf("handler-%d", eb.handlers)
	eb.mu.Unlock()

	eb.Subscribe(handlerSubscriber{id: id, eventType: eventType, handle: handler})
}

// Publish hands event to every interested subscriber. Handlers run
// without the bus lock held, so they may subscribe further handlers; those
// only see later events. A panicking handler is logged and skipped.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	targets := make([]Subscriber, len(eb.subscribers))
	copy(targets, eb.subscribers)
	eb.mu.RUnlock()

	eventType := event.Type()
	eb.logger.Trace().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for _, s := range targets {
		if s.InterestedIn(eventType) {
			eb.deliver(s, event)
		}
	}
}

func (eb *EventBus) deliver(s Subscriber, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("subscriber_id", s.ID()).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Subscriber panicked while handling event")
		}
	}()
	s.HandleEvent(event)
}
