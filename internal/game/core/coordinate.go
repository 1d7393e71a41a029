package core

import "fmt"

// Coordinate represents a cell position on a board.
// X is the row and Y is the column.
type Coordinate struct {
	X, Y int
}

// NewCoordinate creates a new coordinate with the given x and y values
func NewCoordinate(x, y int) Coordinate {
	return Coordinate{X: x, Y: y}
}

// FromIndex creates a coordinate from a row-major cell index
func FromIndex(idx, size int) Coordinate {
	return Coordinate{
		X: idx / size,
		Y: idx % size,
	}
}

// IsValid checks if the coordinate is within a square board of the given size
func (c Coordinate) IsValid(size int) bool {
	return c.X >= 0 && c.X < size && c.Y >= 0 && c.Y < size
}

// ToIndex converts the coordinate to a row-major cell index
func (c Coordinate) ToIndex(size int) int {
	return c.X*size + c.Y
}

// Neighbors returns the four cardinal neighbors in North, South, West, East order.
// Callers that stack these rely on East being last.
func (c Coordinate) Neighbors() []Coordinate {
	return []Coordinate{
		c.Move(North),
		c.Move(South),
		c.Move(West),
		c.Move(East),
	}
}

// Add returns a new coordinate that is the sum of this coordinate and another
func (c Coordinate) Add(other Coordinate) Coordinate {
	return Coordinate{
		X: c.X + other.X,
		Y: c.Y + other.Y,
	}
}

// String returns a string representation of the coordinate
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction represents a cardinal direction
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// DirectionVectors provides coordinate offsets for each direction
var DirectionVectors = map[Direction]Coordinate{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
	East:  {X: 1, Y: 0},
}

// Move returns a new coordinate moved one step in the given direction
func (c Coordinate) Move(direction Direction) Coordinate {
	if offset, ok := DirectionVectors[direction]; ok {
		return c.Add(offset)
	}
	return c
}
