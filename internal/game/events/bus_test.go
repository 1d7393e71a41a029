package events

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

func newTestBus() *EventBus {
	return NewEventBus(zerolog.Nop())
}

func TestEventBus(t *testing.T) {
	bus := newTestBus()

	received := false
	var receivedEvent Event

	bus.SubscribeFunc(TypeGameStarted, func(e Event) {
		received = true
		receivedEvent = e
	})

	event := NewGameStartedEvent("test-game", 10, core.StandardFleet(), []string{"Human", "AI"})
	bus.Publish(event)

	assert.True(t, received, "Event handler should have been called")
	require.NotNil(t, receivedEvent)
	assert.Equal(t, TypeGameStarted, receivedEvent.Type())
	assert.Equal(t, "test-game", receivedEvent.GameID())

	started, ok := receivedEvent.(*GameStartedEvent)
	require.True(t, ok)
	assert.Equal(t, []int{2, 3, 3, 4, 5}, started.Fleet)
	assert.Equal(t, []string{"Human", "AI"}, started.Players)
}

func TestEventBusDeliversInSubscriptionOrder(t *testing.T) {
	bus := newTestBus()

	var order []int
	for i := 0; i < 3; i++ {
		bus.SubscribeFunc(TypeShotFired, func(e Event) {
			order = append(order, i)
		})
	}
	bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		order = append(order, 99)
	})

	bus.Publish(NewShotFiredEvent("test-game", 0, 1, "Human", core.NewCoordinate(3, 4), true))

	assert.Equal(t, []int{0, 1, 2}, order)
}

func TestEventBusRecoversFromPanics(t *testing.T) {
	bus := newTestBus()

	called := false
	bus.SubscribeFunc(TypeGameEnded, func(e Event) {
		panic("boom")
	})
	bus.SubscribeFunc(TypeGameEnded, func(e Event) {
		called = true
	})

	assert.NotPanics(t, func() {
		bus.Publish(NewGameEndedEvent("test-game", 0, "Human", time.Second, 40))
	})
	assert.True(t, called, "later handlers still run after a panic")
}

func TestEventBusSubscribeDuringPublish(t *testing.T) {
	bus := newTestBus()

	late := 0
	bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
		bus.SubscribeFunc(TypeTurnChanged, func(e Event) {
			late++
		})
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(NewTurnChangedEvent("test-game", 1, 1, "AI"))
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked while a handler subscribed")
	}
	assert.Equal(t, 0, late, "handlers added mid-publish miss the current event")

	bus.Publish(NewTurnChangedEvent("test-game", 0, 2, "Human"))
	assert.Equal(t, 1, late)
}

// TestSubscriber is a test implementation of Subscriber
type TestSubscriber struct {
	id              string
	interestedTypes map[string]bool
	receivedEvents  []Event
}

func (ts *TestSubscriber) ID() string {
	return ts.id
}

func (ts *TestSubscriber) HandleEvent(e Event) {
	ts.receivedEvents = append(ts.receivedEvents, e)
}

func (ts *TestSubscriber) InterestedIn(eventType string) bool {
	if ts.interestedTypes == nil {
		return true
	}
	return ts.interestedTypes[eventType]
}

func TestEventBusSubscriber(t *testing.T) {
	bus := newTestBus()

	subscriber := &TestSubscriber{
		id: "test-subscriber",
		interestedTypes: map[string]bool{
			TypeGameStarted: true,
			TypeGameEnded:   true,
		},
	}
	bus.Subscribe(subscriber)

	bus.Publish(NewGameStartedEvent("test-game", 10, core.StandardFleet(), nil))
	bus.Publish(NewBoardLockedEvent("test-game", 0, "Human", 17))
	bus.Publish(NewGameEndedEvent("test-game", 0, "Human", time.Minute, 100))

	// Should only receive GameStarted and GameEnded
	require.Len(t, subscriber.receivedEvents, 2)
	assert.Equal(t, TypeGameStarted, subscriber.receivedEvents[0].Type())
	assert.Equal(t, TypeGameEnded, subscriber.receivedEvents[1].Type())
}

func TestEventBusSubscribeReplacesSameID(t *testing.T) {
	bus := newTestBus()

	first := &TestSubscriber{id: "log"}
	second := &TestSubscriber{id: "log"}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewTurnChangedEvent("test-game", 1, 1, "AI"))

	assert.Empty(t, first.receivedEvents)
	assert.Len(t, second.receivedEvents, 1)
}

func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name     string
		event    Event
		expected string
	}{
		{"game started", NewGameStartedEvent("g", 10, nil, nil), TypeGameStarted},
		{"board locked", NewBoardLockedEvent("g", 1, "AI", 17), TypeBoardLocked},
		{"shot fired", NewShotFiredEvent("g", 0, 3, "Human", core.NewCoordinate(0, 0), false), TypeShotFired},
		{"turn changed", NewTurnChangedEvent("g", 1, 3, "AI"), TypeTurnChanged},
		{"game ended", NewGameEndedEvent("g", 1, "AI", time.Second, 60), TypeGameEnded},
		{"state transition", NewStateTransitionEvent("g", "Placing", "Shooting", "boards locked"), TypeStateTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Type())
			assert.Equal(t, "g", tt.event.GameID())
			assert.False(t, tt.event.Timestamp().IsZero())
		})
	}
}

func TestGameStartedEventCopiesInputs(t *testing.T) {
	fleet := core.Fleet{2, 3}
	players := []string{"a", "b"}
	event := NewGameStartedEvent("g", 5, fleet, players)

	fleet[0] = 9
	players[0] = "z"
	assert.Equal(t, []int{2, 3}, event.Fleet)
	assert.Equal(t, []string{"a", "b"}, event.Players)
}
