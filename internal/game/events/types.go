package events

import "time"

// Event is anything published on the bus during a game
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every game event shares
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Game:      gameID,
	}
}

func (e BaseEvent) Type() string         { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string       { return e.Game }

// EventMetadata ties an event to a player and a point in the game
type EventMetadata struct {
	PlayerID int `json:"player_id,omitempty"`
	// Shot number within the game when the event occurred
	Turn int `json:"turn,omitempty"`
}

// EventHandler reacts to a single event
type EventHandler func(Event)

// Subscriber receives the events it declares interest in
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// handlerSubscriber adapts an EventHandler bound to one event type
type handlerSubscriber struct {
	id        string
	eventType string
	handle    EventHandler
}

func (h handlerSubscriber) ID() string                         { return h.id }
func (h handlerSubscriber) HandleEvent(e Event)                { h.handle(e) }
func (h handlerSubscriber) InterestedIn(eventType string) bool { return eventType == h.eventType }
