package placement

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Orientation is the direction a ship extends from its first cell
type Orientation int

const (
	Vertical   Orientation = iota // along increasing x
	Horizontal                    // along increasing y
)

func (o Orientation) String() string {
	switch o {
	case Vertical:
		return "Vertical"
	case Horizontal:
		return "Horizontal"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// ShipCells lists the cells a ship of the given length covers from (x, y)
func ShipCells(x, y, length int, o Orientation) ([]core.Coordinate, error) {
	var step core.Coordinate
	switch o {
	case Vertical:
		step = core.NewCoordinate(1, 0)
	case Horizontal:
		step = core.NewCoordinate(0, 1)
	default:
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidOrientation, o)
	}

	cells := make([]core.Coordinate, 0, length)
	c := core.NewCoordinate(x, y)
	for i := 0; i < length; i++ {
		cells = append(cells, c)
		c = c.Add(step)
	}
	return cells, nil
}

// CanPlaceShipAt reports whether every cell of the ship is on the board and water
func CanPlaceShipAt(b *core.Board, x, y, length int, o Orientation) (bool, error) {
	cells, err := ShipCells(x, y, length, o)
	if err != nil {
		return false, err
	}
	for _, c := range cells {
		if !b.InBounds(c.X, c.Y) || b.CellAt(c) != core.Water {
			return false, nil
		}
	}
	return true, nil
}

// PlaceShip turns the given water cells into ship cells
func PlaceShip(b *core.Board, cells []core.Coordinate) error {
	for _, c := range cells {
		if err := b.Toggle(c.X, c.Y); err != nil {
			return err
		}
	}
	return nil
}

// Generator places fleets at random with a deterministic RNG
type Generator struct {
	rng    core.Random
	logger zerolog.Logger
}

// NewGenerator creates a new fleet generator
func NewGenerator(rng core.Random, logger zerolog.Logger) *Generator {
	return &Generator{
		rng:    rng,
		logger: logger.With().Str("component", "FleetGenerator").Logger(),
	}
}

// PlaceFleet places every ship of the board's fleet
func (g *Generator) PlaceFleet(b *core.Board) error {
	for i, length := range b.Fleet() {
		if err := g.PlaceShipRandomly(b, length); err != nil {
			return fmt.Errorf("ship #%d: %w", i, err)
		}
	}
	g.logger.Debug().Int("ship_cells", b.PlacedShips()).Msg("Fleet placed")
	return nil
}

// PlaceShipRandomly tries every cell in random order, vertical first, and
// places the ship at the first spot that fits.
func (g *Generator) PlaceShipRandomly(b *core.Board, length int) error {
	for _, c := range g.shuffledCells(b.Size()) {
		for _, o := range []Orientation{Vertical, Horizontal} {
			ok, err := CanPlaceShipAt(b, c.X, c.Y, length, o)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			cells, _ := ShipCells(c.X, c.Y, length, o)
			g.logger.Trace().
				Int("length", length).
				Stringer("start", c).
				Stringer("orientation", o).
				Msg("Placing ship")
			return PlaceShip(b, cells)
		}
	}
	return fmt.Errorf("%w: length %d on a %dx%d board", core.ErrNoRoomForShip, length, b.Size(), b.Size())
}

func (g *Generator) shuffledCells(size int) []core.Coordinate {
	cells := make([]core.Coordinate, 0, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			cells = append(cells, core.NewCoordinate(x, y))
		}
	}
	for i := len(cells) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells
}
