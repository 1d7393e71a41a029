package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// BoardFromRows builds a board from rows of cell state values, indexed [x][y]
func BoardFromRows(tb testing.TB, fleet core.Fleet, rows [][]int) *core.Board {
	tb.Helper()

	cells := make([][]core.CellState, len(rows))
	for x, row := range rows {
		cells[x] = make([]core.CellState, len(row))
		for y, v := range row {
			cells[x][y] = core.CellState(v)
		}
	}

	b, err := core.FromSnapshot(core.Snapshot{
		Size:  len(rows),
		Fleet: fleet,
		Cells: cells,
	})
	require.NoError(tb, err)
	return b
}

// EmptyBoard creates an all-water board for the given fleet
func EmptyBoard(tb testing.TB, size int, fleet core.Fleet) *core.Board {
	tb.Helper()
	b, err := core.NewFleetBoard(size, fleet)
	require.NoError(tb, err)
	return b
}
