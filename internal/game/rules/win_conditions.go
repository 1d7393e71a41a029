package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// FleetDestroyed reports whether a board has no intact Ship cell left
func FleetDestroyed(g Grid) bool {
	return g.Count(core.Ship) == 0
}

// CheckGameOver returns the index of the first player whose opponent board
// has no Ship cell left, or -1 when nobody has won yet.
// targets[i] is the board player i is shooting at.
func (wc *WinConditionChecker) CheckGameOver(targets []Grid) (bool, int) {
	wc.logger.Debug().Msg("Checking game over conditions")

	for i, target := range targets {
		if FleetDestroyed(target) {
			wc.logger.Info().Int("winner_player_index", i).Msg("Winner determined")
			return true, i
		}
	}
	return false, -1
}
