package core

import "fmt"

// CellState is the state of a single grid cell.
type CellState int

const (
	Water   CellState = iota // empty sea
	Ship                     // an intact ship segment, only on owned boards
	Sunken                   // a ship segment that was hit
	Unknown                  // not fired upon yet, only on opponent views
	Missed                   // water that was fired upon
)

// String returns the name of the cell state
func (s CellState) String() string {
	switch s {
	case Water:
		return "Water"
	case Ship:
		return "Ship"
	case Sunken:
		return "Sunken"
	case Unknown:
		return "Unknown"
	case Missed:
		return "Missed"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsValid reports whether s is one of the defined cell states
func (s CellState) IsValid() bool {
	return s >= Water && s <= Missed
}

// Symbol returns the single character used when printing a board
func (s CellState) Symbol() string {
	switch s {
	case Water:
		return "~"
	case Ship:
		return "B"
	case Sunken:
		return "X"
	case Missed:
		return "o"
	default:
		return "?"
	}
}
