package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/testutil"
)

// fixedRandom always returns the same value, clamped to the requested range
type fixedRandom struct{ value int }

func (f fixedRandom) Intn(n int) int {
	if f.value >= n {
		return n - 1
	}
	return f.value
}

func newView(t *testing.T, size int) *core.Board {
	t.Helper()
	view, err := core.NewViewBoard(size)
	require.NoError(t, err)
	return view
}

func newHuntTarget(t *testing.T, size int, seed int64) *HuntTarget {
	t.Helper()
	return NewHuntTarget(newView(t, size), testutil.NewTestRNG(seed), testutil.NopLogger())
}

func TestHuntTarget_HuntPhaseStaysInBounds(t *testing.T) {
	for seed := int64(0); seed < 1000; seed++ {
		h := newHuntTarget(t, 10, seed)
		assert.False(t, h.InTargetPhase())

		c, err := h.ChooseShotLocation()
		require.NoError(t, err)
		require.True(t, c.IsValid(10), "seed %d produced %v", seed, c)
	}
}

func TestHuntTarget_TargetPhaseAfterHit(t *testing.T) {
	h := newHuntTarget(t, 10, 1)

	h.ReactToShotResult(core.NewCoordinate(5, 5), true)

	assert.True(t, h.InTargetPhase())
	assert.Equal(t, []core.Coordinate{{5, 4}, {5, 6}, {4, 5}, {6, 5}}, h.PotentialTargets())

	next, err := h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{6, 5}, next, "last pushed candidate fires first")

	next, err = h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{4, 5}, next)
	assert.Len(t, h.PotentialTargets(), 2)
}

func TestHuntTarget_HitOnCorner(t *testing.T) {
	h := newHuntTarget(t, 10, 1)
	h.ReactToShotResult(core.NewCoordinate(0, 0), true)
	assert.Equal(t, []core.Coordinate{{0, 1}, {1, 0}}, h.PotentialTargets())

	h = newHuntTarget(t, 10, 1)
	h.ReactToShotResult(core.NewCoordinate(9, 9), true)
	assert.Equal(t, []core.Coordinate{{9, 8}, {8, 9}}, h.PotentialTargets())
}

func TestHuntTarget_Miss(t *testing.T) {
	t.Run("in hunt phase", func(t *testing.T) {
		h := newHuntTarget(t, 10, 1)
		h.ReactToShotResult(core.NewCoordinate(0, 0), false)

		assert.Empty(t, h.PotentialTargets())
		assert.Equal(t, []core.Coordinate{{0, 0}}, h.AlreadyHit())
	})

	t.Run("in target phase", func(t *testing.T) {
		h := newHuntTarget(t, 10, 1)
		h.ReactToShotResult(core.NewCoordinate(3, 3), true)
		before := h.PotentialTargets()

		h.ReactToShotResult(core.NewCoordinate(7, 7), false)
		assert.Equal(t, before, h.PotentialTargets())
		assert.Len(t, h.AlreadyHit(), 2)
	})
}

func TestHuntTarget_SkipsFiredNeighbors(t *testing.T) {
	h := newHuntTarget(t, 10, 1)
	h.ReactToShotResult(core.NewCoordinate(5, 4), false)
	h.ReactToShotResult(core.NewCoordinate(4, 5), true)
	h.ReactToShotResult(core.NewCoordinate(5, 5), true)

	targets := h.PotentialTargets()
	require.Len(t, targets, 6)
	assert.NotContains(t, targets, core.Coordinate{5, 4})
	assert.NotContains(t, targets, core.Coordinate{4, 5}, "the earlier hit is not queued again")
	assert.Equal(t, []core.Coordinate{{5, 6}, {6, 5}}, targets[4:])
}

func TestHuntTarget_DropsStaleTargets(t *testing.T) {
	h := newHuntTarget(t, 10, 1)
	h.ReactToShotResult(core.NewCoordinate(5, 5), true)
	h.ReactToShotResult(core.NewCoordinate(6, 5), false)

	next, err := h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{4, 5}, next)
}

func TestHuntTarget_RandomFallbackSkipsFiredCells(t *testing.T) {
	h := NewHuntTarget(newView(t, 3), fixedRandom{0}, testutil.NopLogger())
	h.ReactToShotResult(core.NewCoordinate(0, 0), false)
	h.ReactToShotResult(core.NewCoordinate(0, 1), false)

	c, err := h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{0, 2}, c, "first unfired cell in row-major order")

	h = NewHuntTarget(newView(t, 3), fixedRandom{100}, testutil.NopLogger())
	h.ReactToShotResult(core.NewCoordinate(2, 2), false)
	c, err = h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{2, 1}, c, "last unfired cell in row-major order")
}

func TestHuntTarget_NoCellsRemaining(t *testing.T) {
	h := newHuntTarget(t, 2, 1)
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			h.ReactToShotResult(core.NewCoordinate(x, y), false)
		}
	}

	_, err := h.ChooseShotLocation()
	assert.ErrorIs(t, err, core.ErrNoCellsRemaining)
}

func TestHuntTarget_OutOfBoundsResultIsRecordedOnly(t *testing.T) {
	h := newHuntTarget(t, 2, 1)
	h.ReactToShotResult(core.NewCoordinate(-1, 0), true)

	assert.Len(t, h.AlreadyHit(), 1)
	assert.Equal(t, []core.Coordinate{{0, 0}}, h.PotentialTargets())

	h.ReactToShotResult(core.NewCoordinate(0, 0), false)
	h.ReactToShotResult(core.NewCoordinate(0, 1), false)
	h.ReactToShotResult(core.NewCoordinate(1, 0), false)
	c, err := h.ChooseShotLocation()
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{1, 1}, c)
}

func TestHuntTarget_SweepsEveryCellOnce(t *testing.T) {
	size := 6
	board := testutil.BoardFromRows(t, core.Fleet{3, 2}, [][]int{
		{0, 0, 0, 0, 0, 0},
		{0, 1, 1, 1, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0},
	})
	h := newHuntTarget(t, size, 99)

	seen := make(map[core.Coordinate]bool)
	for {
		c, err := h.ChooseShotLocation()
		if err != nil {
			require.ErrorIs(t, err, core.ErrNoCellsRemaining)
			break
		}
		require.False(t, seen[c], "cell %v fired twice", c)
		seen[c] = true

		hit, err := board.Fire(c.X, c.Y)
		require.NoError(t, err)
		h.ReactToShotResult(c, hit)
	}

	assert.Len(t, seen, size*size)
	assert.Equal(t, 0, board.Count(core.Ship))
	assert.False(t, h.InTargetPhase())
}

func TestHuntTarget_Deterministic(t *testing.T) {
	sequence := func() []core.Coordinate {
		h := newHuntTarget(t, 8, 2024)
		var shots []core.Coordinate
		for i := 0; i < 20; i++ {
			c, err := h.ChooseShotLocation()
			require.NoError(t, err)
			shots = append(shots, c)
			h.ReactToShotResult(c, i%3 == 0)
		}
		return shots
	}
	assert.Equal(t, sequence(), sequence())
}

func TestHuntTarget_NilRNG(t *testing.T) {
	h := NewHuntTarget(newView(t, 4), nil, testutil.NopLogger())
	c, err := h.ChooseShotLocation()
	require.NoError(t, err)
	assert.True(t, c.IsValid(4))
}
