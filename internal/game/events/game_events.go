package events

import (
	"time"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeBoardLocked     = "board.locked"
	TypeShotFired       = "shot.fired"
	TypeTurnChanged     = "turn.changed"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	BaseEvent
	GridSize int      `json:"grid_size"`
	Fleet    []int    `json:"fleet"`
	Players  []string `json:"players"`
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, gridSize int, fleet core.Fleet, players []string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		GridSize:  gridSize,
		Fleet:     fleet.Clone(),
		Players:   append([]string(nil), players...),
	}
}

// BoardLockedEvent is published when a player confirms their ship placement
type BoardLockedEvent struct {
	BaseEvent
	Metadata  EventMetadata `json:"metadata"`
	Player    string        `json:"player"`
	ShipCells int           `json:"ship_cells"`
}

// NewBoardLockedEvent creates a new BoardLockedEvent
func NewBoardLockedEvent(gameID string, playerID int, player string, shipCells int) *BoardLockedEvent {
	return &BoardLockedEvent{
		BaseEvent: newBase(TypeBoardLocked, gameID),
		Metadata:  EventMetadata{PlayerID: playerID},
		Player:    player,
		ShipCells: shipCells,
	}
}

// ShotFiredEvent is published after a shot has been resolved
type ShotFiredEvent struct {
	BaseEvent
	Metadata EventMetadata   `json:"metadata"`
	Shooter  string          `json:"shooter"`
	Target   core.Coordinate `json:"target"`
	Hit      bool            `json:"hit"`
}

// NewShotFiredEvent creates a new ShotFiredEvent
func NewShotFiredEvent(gameID string, playerID, turn int, shooter string, target core.Coordinate, hit bool) *ShotFiredEvent {
	return &ShotFiredEvent{
		BaseEvent: newBase(TypeShotFired, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		Shooter:   shooter,
		Target:    target,
		Hit:       hit,
	}
}

// TurnChangedEvent is published when the turn passes to the other player
type TurnChangedEvent struct {
	BaseEvent
	Metadata EventMetadata `json:"metadata"`
	Player   string        `json:"player"`
}

// NewTurnChangedEvent creates a new TurnChangedEvent
func NewTurnChangedEvent(gameID string, playerID, turn int, player string) *TurnChangedEvent {
	return &TurnChangedEvent{
		BaseEvent: newBase(TypeTurnChanged, gameID),
		Metadata:  EventMetadata{PlayerID: playerID, Turn: turn},
		Player:    player,
	}
}

// GameEndedEvent is published when one fleet has been destroyed
type GameEndedEvent struct {
	BaseEvent
	Winner     int           `json:"winner"`
	WinnerName string        `json:"winner_name"`
	Duration   time.Duration `json:"duration"`
	TotalShots int           `json:"total_shots"`
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner int, winnerName string, duration time.Duration, totalShots int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent:  newBase(TypeGameEnded, gameID),
		Winner:     winner,
		WinnerName: winnerName,
		Duration:   duration,
		TotalShots: totalShots,
	}
}

// StateTransitionEvent is published when the game state machine transitions between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string `json:"from_phase"`
	ToPhase   string `json:"to_phase"`
	Reason    string `json:"reason"`
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
