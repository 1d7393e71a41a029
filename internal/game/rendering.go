package game

import (
	"fmt"
	"strings"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorGray  = "\033[90m"
)

var cellColors = map[core.CellState]string{
	core.Water:   ColorCyan,
	core.Ship:    ColorBlue,
	core.Sunken:  ColorRed,
	core.Missed:  ColorGray,
	core.Unknown: ColorReset,
}

// Board renders what a player sees: the opponent view on the left and
// their own fleet on the right.
func (e *Engine) Board(playerID int, color bool) (string, error) {
	if err := e.checkPlayer(playerID); err != nil {
		return "", err
	}
	p := &e.gs.Players[playerID]
	opponent := e.gs.opponent(playerID)

	left := renderBoard(p.View, color)
	right := renderBoard(p.Own, color)
	width := 3 + 2*p.View.Size()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s   %s\n", width, opponent.Name, p.Name)
	for i := range left {
		fmt.Fprintf(&sb, "%s   %s\n", left[i], right[i])
	}

	accuracy, ok := p.Accuracy()
	if ok {
		fmt.Fprintf(&sb, "shots: %d  hits: %d  accuracy: %.0f%%\n", p.ShotsFired, p.Hits(), accuracy*100)
	} else {
		sb.WriteString("shots: 0\n")
	}
	return sb.String(), nil
}

// renderBoard returns the lines of a board with a column header and row labels
func renderBoard(b *core.Board, color bool) []string {
	size := b.Size()
	lines := make([]string, 0, size+1)

	var header strings.Builder
	header.WriteString("   ")
	for y := 0; y < size; y++ {
		fmt.Fprintf(&header, "%2d", y)
	}
	lines = append(lines, header.String())

	for x := 0; x < size; x++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%2d ", x)
		for y := 0; y < size; y++ {
			state := b.Cell(x, y)
			row.WriteByte(' ')
			if color {
				row.WriteString(cellColors[state])
				row.WriteString(state.Symbol())
				row.WriteString(ColorReset)
			} else {
				row.WriteString(state.Symbol())
			}
		}
		lines = append(lines, row.String())
	}
	return lines
}
