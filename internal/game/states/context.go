package states

import (
	"time"

	"github.com/rs/zerolog"
)

// GameContext provides game-specific information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this game instance
	GameID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// PlayerCount is the number of players in the game
	PlayerCount int

	// LockedBoards counts players who have confirmed their placement
	LockedBoards int

	// StartTime is when the first shot could be fired (PhaseShooting entered)
	StartTime time.Time

	// EndTime is when a fleet was destroyed (PhaseEnded entered)
	EndTime time.Time

	// Winner is the index of the winning player, -1 while undecided
	Winner int
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, playerCount int, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:      gameID,
		PlayerCount: playerCount,
		Logger:      logger.With().Str("game_id", gameID).Logger(),
		Winner:      -1,
	}
}

// AllBoardsLocked returns true once every player has confirmed placement
func (gc *GameContext) AllBoardsLocked() bool {
	return gc.PlayerCount > 0 && gc.LockedBoards == gc.PlayerCount
}

// GetElapsedTime returns the shooting time so far, or the total once the game ended
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}
