package game

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/rules"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
)

// TurnProcessor handles the orchestration of a single shot
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessShot validates and resolves one shot, then either ends the game or
// passes the turn to the other player.
func (tp *TurnProcessor) ProcessShot(ctx context.Context, playerID int, target core.Coordinate) (bool, error) {
	if err := tp.checkContext(ctx); err != nil {
		return false, err
	}

	if err := tp.validateShot(playerID, target); err != nil {
		return false, err
	}

	hit, err := tp.resolveShot(playerID, target)
	if err != nil {
		return false, err
	}

	if err := tp.endTurn(); err != nil {
		return hit, err
	}
	return hit, nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("shot", tp.engine.gs.Shots).
			Msg("Game cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}

// validateShot ensures the player may fire at the target right now
func (tp *TurnProcessor) validateShot(playerID int, target core.Coordinate) error {
	phase := tp.engine.stateMachine.CurrentPhase()
	if phase.IsTerminal() {
		return core.ErrGameOver
	}
	if !phase.CanFire() {
		tp.logger.Warn().
			Str("current_phase", phase.String()).
			Int("player_id", playerID).
			Msg("Attempted to fire in a phase that cannot receive shots")
		return fmt.Errorf("%w: %s", core.ErrWrongPhase, phase)
	}
	if err := tp.engine.checkPlayer(playerID); err != nil {
		return err
	}

	p := &tp.engine.gs.Players[playerID]
	if tp.engine.gs.Current != playerID {
		return core.WrapPlayerError(p.Name, core.ErrNotYourTurn)
	}
	if !p.View.InBounds(target.X, target.Y) {
		return core.WrapPlayerError(p.Name, core.WrapCellError(target.X, target.Y, core.ErrInvalidCoordinates))
	}
	if p.View.CellAt(target) != core.Unknown {
		return core.WrapPlayerError(p.Name, core.WrapCellError(target.X, target.Y, core.ErrAlreadyFired))
	}
	return nil
}

// resolveShot fires at the opponent fleet and records the outcome on the shooter's view
func (tp *TurnProcessor) resolveShot(playerID int, target core.Coordinate) (bool, error) {
	gs := tp.engine.gs
	shooter := &gs.Players[playerID]

	hit, err := gs.opponent(playerID).Own.Fire(target.X, target.Y)
	if err != nil {
		return false, core.WrapPlayerError(shooter.Name, err)
	}

	shooter.Strategy.ReactToShotResult(target, hit)

	result := core.Missed
	if hit {
		result = core.Sunken
	}
	if err := shooter.View.SetCell(target.X, target.Y, result); err != nil {
		return hit, core.WrapPlayerError(shooter.Name, err)
	}

	shooter.ShotsFired++
	if !hit {
		shooter.ShotsMissed++
	}
	gs.Shots++

	tp.logger.Debug().
		Int("shot", gs.Shots).
		Str("shooter", shooter.Name).
		Stringer("target", target).
		Bool("hit", hit).
		Msg("Shot resolved")

	tp.engine.eventBus.Publish(events.NewShotFiredEvent(tp.engine.gameID, playerID, gs.Shots, shooter.Name, target, hit))
	return hit, nil
}

// endTurn checks for a winner and otherwise hands the turn over
func (tp *TurnProcessor) endTurn() error {
	e := tp.engine
	gs := e.gs

	targets := make([]rules.Grid, len(gs.Players))
	for i := range gs.Players {
		targets[i] = gs.opponent(i).Own
	}

	if over, winner := e.winCondition.CheckGameOver(targets); over {
		return tp.finishGame(winner)
	}

	gs.Current = 1 - gs.Current
	next := &gs.Players[gs.Current]
	e.eventBus.Publish(events.NewTurnChangedEvent(e.gameID, next.ID, gs.Shots, next.Name))
	return nil
}

func (tp *TurnProcessor) finishGame(winner int) error {
	e := tp.engine
	p := &e.gs.Players[winner]

	gameCtx := e.stateMachine.GetContext()
	gameCtx.Winner = winner
	if err := e.stateMachine.TransitionTo(states.PhaseEnded, fmt.Sprintf("%s destroyed the opposing fleet", p.Name)); err != nil {
		return err
	}

	e.winner = winner
	p.View.Lock()

	accuracy, _ := p.Accuracy()
	tp.logger.Info().
		Str("winner", p.Name).
		Int("total_shots", e.gs.Shots).
		Float64("accuracy", accuracy).
		Msg("Fleet destroyed")

	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, p.Name, gameCtx.GetElapsedTime(), e.gs.Shots))
	return nil
}
