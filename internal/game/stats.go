package game

import "time"

// Result summarizes a finished (or running) game
type Result struct {
	GameID     string
	Winner     int // -1 while nobody has won
	WinnerName string
	Shots      int
	Fired      [2]int
	Hits       [2]int
	// Accuracy per player, 0 for a player who never fired
	Accuracy [2]float64
	Duration time.Duration
}

// Result reports the shot accounting of both players
func (e *Engine) Result() Result {
	r := Result{
		GameID:   e.gameID,
		Winner:   e.winner,
		Shots:    e.gs.Shots,
		Duration: e.stateMachine.GetContext().GetElapsedTime(),
	}
	if e.winner >= 0 {
		r.WinnerName = e.gs.Players[e.winner].Name
	}
	for i := range e.gs.Players {
		p := &e.gs.Players[i]
		r.Fired[i] = p.ShotsFired
		r.Hits[i] = p.Hits()
		r.Accuracy[i], _ = p.Accuracy()
	}
	return r
}
