package core

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serialized form of a board.
// Cells are indexed [x][y] and hold CellState integer values.
type Snapshot struct {
	Size   int           `json:"size"`
	Fleet  []int         `json:"fleet"`
	Cells  [][]CellState `json:"cells"`
	Locked bool          `json:"locked,omitempty"`
}

// Snapshot captures the board state
func (b *Board) Snapshot() Snapshot {
	cells := make([][]CellState, b.size)
	for x := 0; x < b.size; x++ {
		cells[x] = make([]CellState, b.size)
		copy(cells[x], b.cells[x*b.size:(x+1)*b.size])
	}
	return Snapshot{
		Size:   b.size,
		Fleet:  b.fleet.Clone(),
		Cells:  cells,
		Locked: b.locked,
	}
}

// FromSnapshot rebuilds a board, validating dimensions and cell values
func FromSnapshot(s Snapshot) (*Board, error) {
	b, err := NewBoard(s.Size, Fleet(s.Fleet), Water)
	if err != nil {
		return nil, err
	}
	if len(s.Cells) != s.Size {
		return nil, fmt.Errorf("snapshot has %d rows, want %d: %w", len(s.Cells), s.Size, ErrInvalidSize)
	}
	for x, row := range s.Cells {
		if len(row) != s.Size {
			return nil, fmt.Errorf("snapshot row %d has %d cells, want %d: %w", x, len(row), s.Size, ErrInvalidSize)
		}
		for y, state := range row {
			if err := b.SetCell(x, y, state); err != nil {
				return nil, err
			}
		}
	}
	b.locked = s.Locked
	return b, nil
}

// MarshalJSON encodes the board as a Snapshot
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Snapshot())
}

// UnmarshalJSON decodes a Snapshot into the board
func (b *Board) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	restored, err := FromSnapshot(s)
	if err != nil {
		return err
	}
	*b = *restored
	return nil
}
