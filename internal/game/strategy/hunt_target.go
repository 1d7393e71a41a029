package strategy

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// HuntTarget fires at random until it hits something, then works through
// the cells around every hit before going back to random fire.
//
// The target phase is not stored: it is simply a non-empty candidate stack.
// Candidates are popped last-in first-out, so the neighbors of the most
// recent hit are tried first.
type HuntTarget struct {
	view   View
	rng    core.Random
	logger zerolog.Logger

	potentialTargets []core.Coordinate
	alreadyHit       []core.Coordinate
	fired            map[core.Coordinate]struct{}
}

// NewHuntTarget creates a strategy firing at view
func NewHuntTarget(view View, rng core.Random, logger zerolog.Logger) *HuntTarget {
	return &HuntTarget{
		view:   view,
		rng:    defaultRNG(rng),
		logger: logger.With().Str("component", "HuntTarget").Logger(),
		fired:  make(map[core.Coordinate]struct{}),
	}
}

func (h *HuntTarget) Name() string { return "Hunt & Target" }

// InTargetPhase reports whether candidate cells are queued
func (h *HuntTarget) InTargetPhase() bool {
	return len(h.potentialTargets) > 0
}

// PotentialTargets returns a copy of the candidate stack, bottom first
func (h *HuntTarget) PotentialTargets() []core.Coordinate {
	out := make([]core.Coordinate, len(h.potentialTargets))
	copy(out, h.potentialTargets)
	return out
}

// AlreadyHit returns a copy of every coordinate reported through ReactToShotResult
func (h *HuntTarget) AlreadyHit() []core.Coordinate {
	out := make([]core.Coordinate, len(h.alreadyHit))
	copy(out, h.alreadyHit)
	return out
}

// ChooseShotLocation pops the most recent candidate, skipping candidates
// that were fired upon after being queued. With no candidate left it picks
// uniformly among the cells not fired upon yet.
func (h *HuntTarget) ChooseShotLocation() (core.Coordinate, error) {
	for len(h.potentialTargets) > 0 {
		last := len(h.potentialTargets) - 1
		target := h.potentialTargets[last]
		h.potentialTargets = h.potentialTargets[:last]

		if h.hasFired(target) {
			h.logger.Debug().Stringer("target", target).Msg("Dropping stale target")
			continue
		}
		h.logger.Debug().
			Stringer("target", target).
			Int("remaining", len(h.potentialTargets)).
			Msg("Target mode shot")
		return target, nil
	}

	c, err := h.randomUnfired()
	if err != nil {
		return core.Coordinate{}, err
	}
	h.logger.Debug().Stringer("target", c).Msg("Hunt mode shot")
	return c, nil
}

// ReactToShotResult records the shot and, on a hit, queues the in-bounds
// neighbors that have not been fired upon.
func (h *HuntTarget) ReactToShotResult(c core.Coordinate, hit bool) {
	h.alreadyHit = append(h.alreadyHit, c)
	if h.view.InBounds(c.X, c.Y) {
		h.fired[c] = struct{}{}
	}

	if !hit {
		return
	}

	for _, n := range h.view.CardinalNeighbors(c.X, c.Y) {
		if !h.view.InBounds(n.X, n.Y) || h.hasFired(n) {
			continue
		}
		h.potentialTargets = append(h.potentialTargets, n)
	}
	h.logger.Debug().
		Stringer("hit", c).
		Interface("potential_targets", h.potentialTargets).
		Msg("Queued potential targets")
}

func (h *HuntTarget) hasFired(c core.Coordinate) bool {
	_, ok := h.fired[c]
	return ok
}

// randomUnfired picks the k-th unfired cell in row-major order for a random k
func (h *HuntTarget) randomUnfired() (core.Coordinate, error) {
	size := h.view.Size()
	remaining := size*size - len(h.fired)
	if remaining <= 0 {
		return core.Coordinate{}, core.ErrNoCellsRemaining
	}

	k := h.rng.Intn(remaining)
	for i := 0; i < size*size; i++ {
		c := core.FromIndex(i, size)
		if h.hasFired(c) {
			continue
		}
		if k == 0 {
			return c, nil
		}
		k--
	}
	return core.Coordinate{}, core.ErrNoCellsRemaining
}
