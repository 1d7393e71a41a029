package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidSize        = errors.New("board size must be positive")
	ErrInvalidFleet       = errors.New("fleet entries must be positive")
	ErrInvalidCellState   = errors.New("invalid cell state")
	ErrBoardLocked        = errors.New("board is locked")
	ErrNoShipsLeft        = errors.New("no ships left to place")
	ErrNoCellsRemaining   = errors.New("no cells remaining to fire at")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrNoRoomForShip      = errors.New("no room for ship")
	ErrIllegalBoard       = errors.New("board does not match fleet")
	ErrSizeMismatch       = errors.New("board sizes do not match")
	ErrGameOver           = errors.New("game is over")
	ErrNotYourTurn        = errors.New("not this player's turn")
	ErrWrongPhase         = errors.New("action not allowed in current phase")
	ErrInvalidPlayer      = errors.New("invalid player index")
	ErrAlreadyFired       = errors.New("cell has already been fired at")
	ErrNoStrategy         = errors.New("scripted player needs a targeting strategy")
)

// WrapCellError adds the coordinate to an error raised for a single cell
func WrapCellError(x, y int, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("cell (%d,%d): %w", x, y, err)
}

// WrapPlayerError adds the player name to an error raised by a player action
func WrapPlayerError(player string, err error) error {
	if err == nil {
		return nil
	}
	if player == "" {
		return fmt.Errorf("player action: %w", err)
	}
	return fmt.Errorf("player %s: %w", player, err)
}
