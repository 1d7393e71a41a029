package game

import (
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/strategy"
)

// Player is one side of a game
type Player struct {
	ID    int
	Name  string
	Human bool

	// Own is the fleet this player defends
	Own *core.Board
	// View is what this player has learned about the opponent fleet
	View *core.Board

	Strategy    strategy.Strategy
	ShotsFired  int
	ShotsMissed int
}

// Hits returns the number of shots that struck a ship
func (p *Player) Hits() int {
	return p.ShotsFired - p.ShotsMissed
}

// Accuracy returns the share of fired shots that hit a ship.
// ok is false until the player has fired at least once.
func (p *Player) Accuracy() (accuracy float64, ok bool) {
	if p.ShotsFired == 0 {
		return 0, false
	}
	return float64(p.Hits()) / float64(p.ShotsFired), true
}

// Clone returns a copy whose boards can be read without touching the game
func (p Player) Clone() Player {
	p.Own = p.Own.Clone()
	p.View = p.View.Clone()
	return p
}

type GameState struct {
	Shots   int // shots fired by both players
	Current int // index of the player whose turn it is
	Players []Player
}

func (gs *GameState) opponent(id int) *Player {
	return &gs.Players[1-id]
}
