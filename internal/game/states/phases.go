package states

import "fmt"

// GamePhase represents the current phase of a game
type GamePhase int

const (
	// PhasePlacing - Players arrange and lock their fleets
	PhasePlacing GamePhase = iota

	// PhaseShooting - Players alternate firing at each other
	PhaseShooting

	// PhaseEnded - One fleet has been destroyed
	PhaseEnded
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhasePlacing:
		return "Placing"
	case PhaseShooting:
		return "Shooting"
	case PhaseEnded:
		return "Ended"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanFire returns true if shots can be fired in this phase
func (p GamePhase) CanFire() bool {
	return p == PhaseShooting
}

// CanPlaceShips returns true if boards may still be edited in this phase
func (p GamePhase) CanPlaceShips() bool {
	return p == PhasePlacing
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhasePlacing:
		return []GamePhase{PhaseShooting}
	case PhaseShooting:
		return []GamePhase{PhaseEnded}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}
