package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/placement"
	"github.com/mitchelldurbincs/battleship/internal/game/rules"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
)

// Engine runs one game between two players. It is not safe for concurrent
// use; run independent games on independent engines.
type Engine struct {
	gs            *GameState
	logger        zerolog.Logger
	gameID        string
	eventBus      *events.EventBus
	stateMachine  *states.StateMachine
	fleetChecker  *rules.FleetChecker
	winCondition  *rules.WinConditionChecker
	turnProcessor *TurnProcessor
	placer        *placement.Generator
	winner        int
}

// NewEngine creates a game from the given configuration
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

func (e *Engine) GameID() string               { return e.gameID }
func (e *Engine) Phase() states.GamePhase      { return e.stateMachine.CurrentPhase() }
func (e *Engine) IsGameOver() bool             { return e.Phase().IsTerminal() }
func (e *Engine) CurrentPlayer() int           { return e.gs.Current }
func (e *Engine) EventBus() *events.EventBus   { return e.eventBus }
func (e *Engine) History() []states.Transition { return e.stateMachine.GetHistory() }

// Winner returns the index of the winning player, or -1 while the game is running
func (e *Engine) Winner() int {
	return e.winner
}

// Player returns a copy of the given player
func (e *Engine) Player(id int) (Player, error) {
	if err := e.checkPlayer(id); err != nil {
		return Player{}, err
	}
	return e.gs.Players[id].Clone(), nil
}

func (e *Engine) checkPlayer(id int) error {
	if id < 0 || id >= len(e.gs.Players) {
		return fmt.Errorf("%w: %d", core.ErrInvalidPlayer, id)
	}
	return nil
}

// TogglePlacement switches a cell of a human player's fleet between water and ship
func (e *Engine) TogglePlacement(playerID, x, y int) error {
	if err := e.checkPlayer(playerID); err != nil {
		return err
	}
	p := &e.gs.Players[playerID]
	if !e.Phase().CanPlaceShips() {
		return core.WrapPlayerError(p.Name, fmt.Errorf("%w: %s", core.ErrWrongPhase, e.Phase()))
	}
	return core.WrapPlayerError(p.Name, p.Own.Toggle(x, y))
}

// AutoPlace replaces a player's unlocked fleet with a random legal one
func (e *Engine) AutoPlace(playerID int) error {
	if err := e.checkPlayer(playerID); err != nil {
		return err
	}
	p := &e.gs.Players[playerID]
	if !e.Phase().CanPlaceShips() {
		return core.WrapPlayerError(p.Name, fmt.Errorf("%w: %s", core.ErrWrongPhase, e.Phase()))
	}
	if err := p.Own.Clear(); err != nil {
		return core.WrapPlayerError(p.Name, err)
	}
	return core.WrapPlayerError(p.Name, e.placer.PlaceFleet(p.Own))
}

// ConfirmPlacement locks a player's fleet once it is legal. When the last
// fleet is locked the game moves to shooting and any scripted player whose
// turn it is fires right away.
func (e *Engine) ConfirmPlacement(ctx context.Context, playerID int) error {
	started, err := e.lockFleet(playerID)
	if err != nil || !started {
		return err
	}
	return e.playScriptedTurns(ctx)
}

// lockFleet locks a legal fleet and reports whether shooting has started
func (e *Engine) lockFleet(playerID int) (bool, error) {
	if err := e.checkPlayer(playerID); err != nil {
		return false, err
	}
	p := &e.gs.Players[playerID]
	if !e.Phase().CanPlaceShips() {
		return false, core.WrapPlayerError(p.Name, fmt.Errorf("%w: %s", core.ErrWrongPhase, e.Phase()))
	}
	if p.Own.Locked() {
		return false, core.WrapPlayerError(p.Name, core.ErrBoardLocked)
	}
	if !e.fleetChecker.IsLegal(p.Own) {
		e.logger.Debug().
			Str("player", p.Name).
			Int("ship_cells", p.Own.PlacedShips()).
			Msg("Rejected illegal placement")
		return false, core.WrapPlayerError(p.Name, core.ErrIllegalBoard)
	}

	p.Own.Lock()
	gameCtx := e.stateMachine.GetContext()
	gameCtx.LockedBoards++
	e.eventBus.Publish(events.NewBoardLockedEvent(e.gameID, playerID, p.Name, p.Own.PlacedShips()))

	if !gameCtx.AllBoardsLocked() {
		return false, nil
	}
	if err := e.stateMachine.TransitionTo(states.PhaseShooting, "all fleets locked"); err != nil {
		return false, err
	}
	return true, nil
}

// Fire resolves a shot by the given player, then lets scripted opponents
// take their turns. It reports whether the shot hit a ship.
func (e *Engine) Fire(ctx context.Context, playerID int, target core.Coordinate) (bool, error) {
	hit, err := e.turnProcessor.ProcessShot(ctx, playerID, target)
	if err != nil {
		return false, err
	}
	return hit, e.playScriptedTurns(ctx)
}

// Run plays a game between two scripted players to the end
func (e *Engine) Run(ctx context.Context) (Result, error) {
	for _, p := range e.gs.Players {
		if p.Human {
			return Result{}, core.WrapPlayerError(p.Name, fmt.Errorf("%w: run needs two scripted players", core.ErrInvalidPlayer))
		}
	}
	if err := e.playScriptedTurns(ctx); err != nil {
		return Result{}, err
	}
	if !e.IsGameOver() {
		return Result{}, fmt.Errorf("game stopped in %s phase: %w", e.Phase(), core.ErrWrongPhase)
	}
	return e.Result(), nil
}

// playScriptedTurns fires for scripted players until a human is to move or the game ends
func (e *Engine) playScriptedTurns(ctx context.Context) error {
	for e.Phase().CanFire() {
		p := &e.gs.Players[e.gs.Current]
		if p.Human {
			return nil
		}

		target, err := p.Strategy.ChooseShotLocation()
		if err != nil {
			return core.WrapPlayerError(p.Name, err)
		}
		if _, err := e.turnProcessor.ProcessShot(ctx, p.ID, target); err != nil {
			return err
		}
	}
	return nil
}
