package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/placement"
	"github.com/mitchelldurbincs/battleship/internal/game/rules"
	"github.com/mitchelldurbincs/battleship/internal/game/states"
	"github.com/mitchelldurbincs/battleship/internal/game/strategy"
)

// PlayerConfig describes one side of a game
type PlayerConfig struct {
	Name  string
	Human bool
	// Strategy names the targeting strategy of a scripted player.
	// Empty means hunt_target. Humans always get the null strategy.
	Strategy string
}

// GameConfig holds everything needed to set up a game
type GameConfig struct {
	GameID   string
	Size     int
	Fleet    core.Fleet
	Players  [2]PlayerConfig
	Rng      core.Random
	Logger   zerolog.Logger
	EventBus *events.EventBus
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize creates a game. Scripted players have already placed and
// locked their fleets when it returns, so a game between two scripted
// players starts in the shooting phase.
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled before setup")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()

	if err := ei.validate(); err != nil {
		return nil, err
	}

	engine := ei.createEngine()

	if err := ei.initializePlayers(engine); err != nil {
		return nil, fmt.Errorf("player setup failed: %w", err)
	}

	if err := engine.stateMachine.Start(); err != nil {
		return nil, fmt.Errorf("state machine initialization failed: %w", err)
	}

	names := []string{engine.gs.Players[0].Name, engine.gs.Players[1].Name}
	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, ei.config.Size, ei.config.Fleet, names))

	if err := ei.placeScriptedFleets(engine); err != nil {
		return nil, fmt.Errorf("fleet placement failed: %w", err)
	}

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("grid_size", ei.config.Size).
		Ints("fleet", ei.config.Fleet).
		Strs("players", names).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}

	if ei.config.Size == 0 {
		ei.config.Size = core.DefaultGridSize
	}

	if ei.config.Fleet == nil {
		ei.config.Fleet = core.StandardFleet()
	}

	for i := range ei.config.Players {
		p := &ei.config.Players[i]
		if p.Name == "" {
			p.Name = fmt.Sprintf("Player %d", i+1)
		}
		if !p.Human && p.Strategy == "" {
			p.Strategy = strategy.NameHuntTarget
		}
	}

	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus(ei.logger)
	}
}

func (ei *EngineInitializer) validate() error {
	if ei.config.Size < 0 {
		return fmt.Errorf("%w: %d", core.ErrInvalidSize, ei.config.Size)
	}
	if err := ei.config.Fleet.Validate(); err != nil {
		return err
	}
	if total, cells := ei.config.Fleet.Total(), ei.config.Size*ei.config.Size; total > cells {
		return fmt.Errorf("%w: %d ship cells do not fit on %d cells", core.ErrInvalidFleet, total, cells)
	}
	return nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine() *Engine {
	gameLogger := ei.logger.With().Str("game_id", ei.config.GameID).Logger()

	gameContext := states.NewGameContext(ei.config.GameID, len(ei.config.Players), ei.logger)
	stateMachine := states.NewStateMachine(gameContext, ei.config.EventBus)

	engine := &Engine{
		gs: &GameState{
			Players: make([]Player, len(ei.config.Players)),
		},
		logger:       gameLogger,
		gameID:       ei.config.GameID,
		eventBus:     ei.config.EventBus,
		stateMachine: stateMachine,
		fleetChecker: rules.NewFleetChecker(gameLogger),
		winCondition: rules.NewWinConditionChecker(gameLogger),
		placer:       placement.NewGenerator(ei.config.Rng, gameLogger),
		winner:       -1,
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}

// initializePlayers creates the boards and strategies of both players
func (ei *EngineInitializer) initializePlayers(engine *Engine) error {
	for i, pc := range ei.config.Players {
		own, err := core.NewFleetBoard(ei.config.Size, ei.config.Fleet)
		if err != nil {
			return err
		}
		view, err := core.NewViewBoard(ei.config.Size)
		if err != nil {
			return err
		}

		var strat strategy.Strategy = strategy.NullStrategy{}
		if !pc.Human {
			strat, err = strategy.New(pc.Strategy, view, ei.config.Rng, engine.logger)
			if err != nil {
				return core.WrapPlayerError(pc.Name, err)
			}
			if _, isNull := strat.(strategy.NullStrategy); isNull {
				return core.WrapPlayerError(pc.Name, core.ErrNoStrategy)
			}
		}

		engine.gs.Players[i] = Player{
			ID:       i,
			Name:     pc.Name,
			Human:    pc.Human,
			Own:      own,
			View:     view,
			Strategy: strat,
		}

		ei.logger.Debug().
			Int("player_id", i).
			Str("player", pc.Name).
			Bool("human", pc.Human).
			Str("strategy", strat.Name()).
			Msg("Player initialized")
	}
	return nil
}

// placeScriptedFleets places and locks the fleet of every scripted player
func (ei *EngineInitializer) placeScriptedFleets(engine *Engine) error {
	for i := range engine.gs.Players {
		p := &engine.gs.Players[i]
		if p.Human {
			continue
		}
		if err := engine.placer.PlaceFleet(p.Own); err != nil {
			return core.WrapPlayerError(p.Name, err)
		}
		if _, err := engine.lockFleet(i); err != nil {
			return err
		}
	}
	return nil
}
