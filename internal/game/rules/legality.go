package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Grid is the read access the legality check needs from a board
type Grid interface {
	Size() int
	Fleet() core.Fleet
	Cell(x, y int) core.CellState
	Count(state core.CellState) int
}

// FleetChecker decides whether the Ship cells of a board match its fleet.
//
// Each fleet entry is searched for independently: the board is scanned
// row-major and, from every non-water cell, a vertical run (growing x) and a
// horizontal run (growing y) are measured separately. An entry is satisfied by
// the first start cell whose run reaches exactly its length. Cells are not
// consumed, so equal-length entries may be satisfied by the same run; the
// final Ship cell count against the fleet total is what rejects that case.
type FleetChecker struct {
	logger zerolog.Logger
}

// NewFleetChecker creates a checker that traces its search at trace level
func NewFleetChecker(logger zerolog.Logger) *FleetChecker {
	return &FleetChecker{
		logger: logger.With().Str("component", "FleetChecker").Logger(),
	}
}

// IsLegal checks a board with a silent checker
func IsLegal(g Grid) bool {
	return NewFleetChecker(zerolog.Nop()).IsLegal(g)
}

// IsLegal reports whether every fleet entry is matched by a straight run and
// the number of Ship cells equals the fleet total.
func (fc *FleetChecker) IsLegal(g Grid) bool {
	fleet := g.Fleet()

	for i, length := range fleet {
		fc.logger.Trace().Int("ship", i).Int("length", length).Msg("Searching for ship")

		start, found := fc.findRun(g, length)
		if !found {
			fc.logger.Debug().Int("ship", i).Int("length", length).Msg("Ship not found, board is not legal")
			return false
		}
		fc.logger.Trace().Int("ship", i).Stringer("start", start).Msg("Ship found")
	}

	placed := g.Count(core.Ship)
	if placed != fleet.Total() {
		fc.logger.Debug().
			Int("placed", placed).
			Int("expected", fleet.Total()).
			Msg("Ship cell count does not match fleet")
		return false
	}
	return true
}

// findRun returns the first start cell, in row-major order, from which a
// run of exactly length Ship cells can be grown.
func (fc *FleetChecker) findRun(g Grid, length int) (core.Coordinate, bool) {
	size := g.Size()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			if g.Cell(x, y) == core.Water {
				continue
			}

			vertical := measureRun(g, x, y, 1, 0, length)
			horizontal := measureRun(g, x, y, 0, 1, length)
			fc.logger.Trace().
				Int("x", x).
				Int("y", y).
				Int("vertical", vertical).
				Int("horizontal", horizontal).
				Msg("Measured runs")

			if vertical == length || horizontal == length {
				return core.NewCoordinate(x, y), true
			}
		}
	}
	return core.Coordinate{}, false
}

// measureRun grows a run from (x, y) in direction (dx, dy), counting the start
// cell, and stops at length cells or at the first non-Ship or off-board cell.
func measureRun(g Grid, x, y, dx, dy, length int) int {
	size := g.Size()
	run := 1
	for run < length {
		nx, ny := x+dx*run, y+dy*run
		if nx < 0 || nx >= size || ny < 0 || ny >= size || g.Cell(nx, ny) != core.Ship {
			break
		}
		run++
	}
	return run
}
