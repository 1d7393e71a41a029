package strategy

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Names accepted by New
const (
	NameHuntTarget = "hunt_target"
	NameNone       = "none"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy chooses where a player fires next.
// ChooseShotLocation and ReactToShotResult are called in strict alternation.
type Strategy interface {
	// Name identifies the strategy in logs
	Name() string
	// ChooseShotLocation returns the next cell to fire at
	ChooseShotLocation() (core.Coordinate, error)
	// ReactToShotResult is called right after every shot this player fires
	ReactToShotResult(c core.Coordinate, hit bool)
}

// View is the read access a strategy has to the opponent board it fires at
type View interface {
	Size() int
	InBounds(x, y int) bool
	CardinalNeighbors(x, y int) []core.Coordinate
}

// New builds a strategy by name. A nil rng is replaced by a time-seeded one.
func New(name string, view View, rng core.Random, logger zerolog.Logger) (Strategy, error) {
	switch name {
	case NameHuntTarget:
		return NewHuntTarget(view, rng, logger), nil
	case NameNone:
		return NullStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

func defaultRNG(rng core.Random) core.Random {
	if rng == nil {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rng
}
