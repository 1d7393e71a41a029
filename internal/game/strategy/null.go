package strategy

import "github.com/mitchelldurbincs/battleship/internal/game/core"

// NullStrategy is used by players whose shots come from outside, such as a
// human clicking cells. It always proposes the origin and ignores results.
type NullStrategy struct{}

func (NullStrategy) Name() string { return "None" }

func (NullStrategy) ChooseShotLocation() (core.Coordinate, error) {
	return core.NewCoordinate(0, 0), nil
}

func (NullStrategy) ReactToShotResult(core.Coordinate, bool) {}
