package core

// Ship lengths of the standard fleet
const (
	Destroyer       = 2
	Cruiser         = 3
	Submarine       = 3
	Battleship      = 4
	AircraftCarrier = 5
)

// DefaultGridSize is the side length of a standard board
const DefaultGridSize = 10

// Fleet is the ordered list of ship lengths a board must contain.
// Duplicate lengths are separate ships.
type Fleet []int

// StandardFleet returns a fresh copy of the classic five-ship fleet
func StandardFleet() Fleet {
	return Fleet{Destroyer, Cruiser, Submarine, Battleship, AircraftCarrier}
}

// Total returns the number of ship cells the fleet occupies
func (f Fleet) Total() int {
	total := 0
	for _, length := range f {
		total += length
	}
	return total
}

// Validate checks that every ship length is positive
func (f Fleet) Validate() error {
	for _, length := range f {
		if length <= 0 {
			return ErrInvalidFleet
		}
	}
	return nil
}

// Clone returns an independent copy of the fleet
func (f Fleet) Clone() Fleet {
	if f == nil {
		return nil
	}
	out := make(Fleet, len(f))
	copy(out, f)
	return out
}
