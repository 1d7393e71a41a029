package states

import (
	"fmt"
	"time"
)

// PlacingState represents fleet placement
type PlacingState struct{}

func NewPlacingState() State {
	return &PlacingState{}
}

func (s *PlacingState) Phase() GamePhase {
	return PhasePlacing
}

func (s *PlacingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Waiting for fleet placement")
	return nil
}

func (s *PlacingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("locked_boards", ctx.LockedBoards).
		Msg("Placement complete")
	return nil
}

func (s *PlacingState) Validate(ctx *GameContext) error {
	if ctx.PlayerCount != 2 {
		return fmt.Errorf("a game needs exactly 2 players, got %d", ctx.PlayerCount)
	}
	return nil
}

// ShootingState represents active gameplay
type ShootingState struct{}

func NewShootingState() State {
	return &ShootingState{}
}

func (s *ShootingState) Phase() GamePhase {
	return PhaseShooting
}

func (s *ShootingState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Shooting started")
	return nil
}

func (s *ShootingState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting shooting state")
	return nil
}

func (s *ShootingState) Validate(ctx *GameContext) error {
	if !ctx.AllBoardsLocked() {
		return fmt.Errorf("cannot start shooting: %d of %d boards locked", ctx.LockedBoards, ctx.PlayerCount)
	}
	return nil
}

// EndedState represents a completed game
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Info().
		Int("winner", ctx.Winner).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if ctx.Winner < 0 || ctx.Winner >= ctx.PlayerCount {
		return fmt.Errorf("ended state requires a winner, got %d", ctx.Winner)
	}
	return nil
}
