package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
)

const humanSeat = 0

var errQuit = errors.New("game abandoned")

type playOptions struct {
	seed    int64
	noColor bool
}

func newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play against the computer",
		Long: `play places your fleet at random and lets you fire at the computer's
board by typing a row and a column, for example "3 7" or "3,7".
Type "quit" to give up.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config.Get()
			if !cmd.Flags().Changed("seed") {
				opts.seed = c.AI.Seed
			}
			if opts.seed == 0 {
				opts.seed = time.Now().UnixNano()
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			err := play(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), c, *opts)
			if errors.Is(err, errQuit) {
				fmt.Fprintln(cmd.OutOrStdout(), "bye")
				return nil
			}
			return err
		},
	}

	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Seed for fleet placement and the computer's shots (0 picks a time-based seed)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")

	return cmd
}

// play runs one human-versus-computer game over a line-based terminal
func play(ctx context.Context, in io.Reader, out io.Writer, c *config.Config, opts playOptions) error {
	engine, err := game.NewEngine(ctx, game.GameConfig{
		Size:  c.Game.GridSize,
		Fleet: core.Fleet(c.Game.Fleet),
		Players: [2]game.PlayerConfig{
			{Name: c.Game.HumanName, Human: true},
			{Name: c.Game.AIName, Strategy: c.AI.Strategy},
		},
		Rng:    rand.New(rand.NewSource(opts.seed)),
		Logger: log.Logger,
	})
	if err != nil {
		return err
	}

	engine.EventBus().SubscribeFunc(events.TypeShotFired, func(e events.Event) {
		shot, ok := e.(*events.ShotFiredEvent)
		if !ok || shot.Metadata.PlayerID == humanSeat {
			return
		}
		fmt.Fprintf(out, "%s fires at %s: %s\n", shot.Shooter, shot.Target, hitOrMiss(shot.Hit))
	})

	if err := engine.AutoPlace(humanSeat); err != nil {
		return err
	}
	if err := engine.ConfirmPlacement(ctx, humanSeat); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for !engine.IsGameOver() {
		board, err := engine.Board(humanSeat, !opts.noColor)
		if err != nil {
			return err
		}
		fmt.Fprint(out, "\n"+board)
		fmt.Fprint(out, "fire at (row col): ")

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return errQuit
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "q" {
			return errQuit
		}

		target, err := parseTarget(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		hit, err := engine.Fire(ctx, humanSeat, target)
		switch {
		case errors.Is(err, core.ErrInvalidCoordinates), errors.Is(err, core.ErrAlreadyFired):
			fmt.Fprintln(out, err)
			continue
		case err != nil:
			return err
		}
		fmt.Fprintf(out, "you fire at %s: %s\n", target, hitOrMiss(hit))
	}

	board, err := engine.Board(humanSeat, !opts.noColor)
	if err != nil {
		return err
	}
	fmt.Fprint(out, "\n"+board)

	result := engine.Result()
	fmt.Fprintf(out, "%s wins after %d shots\n", result.WinnerName, result.Shots)
	return nil
}

// parseTarget reads "row col" or "row,col"
func parseTarget(s string) (core.Coordinate, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})
	if len(fields) != 2 {
		return core.Coordinate{}, fmt.Errorf("want a row and a column, got %q", s)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return core.Coordinate{}, fmt.Errorf("bad row %q", fields[0])
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return core.Coordinate{}, fmt.Errorf("bad column %q", fields[1])
	}
	return core.NewCoordinate(x, y), nil
}

func hitOrMiss(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
