package core

import (
	"fmt"
	"strings"
)

// Board is a square grid of cell states together with the fleet it must hold.
// Cells are stored row-major: index = x*size + y.
type Board struct {
	size   int
	fleet  Fleet
	cells  []CellState
	locked bool
}

// NewBoard creates a board with every cell set to initial
func NewBoard(size int, fleet Fleet, initial CellState) (*Board, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	if err := fleet.Validate(); err != nil {
		return nil, err
	}
	if !initial.IsValid() {
		return nil, ErrInvalidCellState
	}

	b := &Board{
		size:  size,
		fleet: fleet.Clone(),
		cells: make([]CellState, size*size),
	}
	for i := range b.cells {
		b.cells[i] = initial
	}
	return b, nil
}

// NewFleetBoard creates an all-water board owned by a player who must place fleet on it
func NewFleetBoard(size int, fleet Fleet) (*Board, error) {
	return NewBoard(size, fleet, Water)
}

// NewViewBoard creates an all-unknown board tracking shots at an opponent
func NewViewBoard(size int) (*Board, error) {
	return NewBoard(size, nil, Unknown)
}

func (b *Board) Size() int { return b.size }

// Fleet returns a copy of the ship lengths the board must hold
func (b *Board) Fleet() Fleet { return b.fleet.Clone() }

func (b *Board) Locked() bool { return b.locked }

// Lock freezes ship placement. Firing is still allowed.
func (b *Board) Lock() { b.locked = true }

func (b *Board) idx(x, y int) int { return NewCoordinate(x, y).ToIndex(b.size) }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// Cell returns the state at (x, y). Coordinates off the board read as Water.
func (b *Board) Cell(x, y int) CellState {
	if !b.InBounds(x, y) {
		return Water
	}
	return b.cells[b.idx(x, y)]
}

// CellAt is Cell for a Coordinate
func (b *Board) CellAt(c Coordinate) CellState {
	return b.Cell(c.X, c.Y)
}

// SetCell writes a single cell
func (b *Board) SetCell(x, y int, state CellState) error {
	if !b.InBounds(x, y) {
		return WrapCellError(x, y, ErrInvalidCoordinates)
	}
	if !state.IsValid() {
		return WrapCellError(x, y, ErrInvalidCellState)
	}
	b.cells[b.idx(x, y)] = state
	return nil
}

// CardinalNeighbors returns the four cells around (x, y), unfiltered.
// Use InBounds to drop the ones that fall off the board.
func (b *Board) CardinalNeighbors(x, y int) []Coordinate {
	return NewCoordinate(x, y).Neighbors()
}

// RandomCoordinate returns a uniformly random in-bounds coordinate
func (b *Board) RandomCoordinate(rng Random) Coordinate {
	return NewCoordinate(rng.Intn(b.size), rng.Intn(b.size))
}

// Count returns how many cells are in the given state
func (b *Board) Count(state CellState) int {
	n := 0
	for _, s := range b.cells {
		if s == state {
			n++
		}
	}
	return n
}

// PlacedShips is the number of cells currently in Ship state
func (b *Board) PlacedShips() int { return b.Count(Ship) }

// TotalShips is the number of ship cells the fleet requires
func (b *Board) TotalShips() int { return b.fleet.Total() }

// ShipsLeft is the number of ship cells still to be placed, never negative
func (b *Board) ShipsLeft() int {
	return max(b.TotalShips()-b.PlacedShips(), 0)
}

// Toggle switches (x, y) between Water and Ship during placement
func (b *Board) Toggle(x, y int) error {
	if b.locked {
		return WrapCellError(x, y, ErrBoardLocked)
	}
	if !b.InBounds(x, y) {
		return WrapCellError(x, y, ErrInvalidCoordinates)
	}

	i := b.idx(x, y)
	if b.cells[i] == Water {
		if b.ShipsLeft() == 0 {
			return WrapCellError(x, y, ErrNoShipsLeft)
		}
		b.cells[i] = Ship
		return nil
	}
	b.cells[i] = Water
	return nil
}

// Clear turns every cell back to Water so placement can start over
func (b *Board) Clear() error {
	if b.locked {
		return ErrBoardLocked
	}
	for i := range b.cells {
		b.cells[i] = Water
	}
	return nil
}

// Fire resolves a shot at (x, y) against this board.
// Water and already-missed cells become Missed and report no hit;
// anything else becomes Sunken and reports a hit.
func (b *Board) Fire(x, y int) (bool, error) {
	if !b.InBounds(x, y) {
		return false, WrapCellError(x, y, ErrInvalidCoordinates)
	}

	i := b.idx(x, y)
	switch b.cells[i] {
	case Water, Missed:
		b.cells[i] = Missed
		return false, nil
	default:
		b.cells[i] = Sunken
		return true, nil
	}
}

// Clone returns a deep copy of the board
func (b *Board) Clone() *Board {
	out := &Board{
		size:   b.size,
		fleet:  b.fleet.Clone(),
		cells:  make([]CellState, len(b.cells)),
		locked: b.locked,
	}
	copy(out.cells, b.cells)
	return out
}

// String renders the board one row per line
func (b *Board) String() string {
	var sb strings.Builder

	sb.WriteString("   ")
	for y := 0; y < b.size; y++ {
		sb.WriteString(fmt.Sprintf("%2d", y))
	}
	sb.WriteString("\n")

	for x := 0; x < b.size; x++ {
		sb.WriteString(fmt.Sprintf("%2d ", x))
		for y := 0; y < b.size; y++ {
			sb.WriteString(" " + b.Cell(x, y).Symbol())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
