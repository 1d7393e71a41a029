package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/events"
	"github.com/mitchelldurbincs/battleship/internal/game/events/subscribers"
)

type simulateOptions struct {
	games   int
	workers int
	seed    int64
	events     bool
	eventTypes []string
	asJSON     bool
}

// Summary aggregates the results of a batch of games
type Summary struct {
	Games        int           `json:"games"`
	Seed         int64         `json:"seed"`
	Players      [2]string     `json:"players"`
	Wins         [2]int        `json:"wins"`
	AverageShots float64       `json:"average_shots"`
	MinShots     int           `json:"min_shots"`
	MaxShots     int           `json:"max_shots"`
	Accuracy     [2]float64    `json:"accuracy"`
	Elapsed      time.Duration `json:"elapsed_ns"`
}

func newSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play computer-versus-computer games and report statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := config.Get()

			// Flags win over config values
			if !cmd.Flags().Changed("games") {
				opts.games = c.Simulate.Games
			}
			if !cmd.Flags().Changed("workers") {
				opts.workers = c.Simulate.Workers
			}
			if !cmd.Flags().Changed("seed") {
				opts.seed = c.AI.Seed
			}
			if opts.games <= 0 || opts.workers <= 0 {
				return fmt.Errorf("games and workers must be positive, got %d and %d", opts.games, opts.workers)
			}
			if opts.seed == 0 {
				opts.seed = time.Now().UnixNano()
			}

			summary, err := simulate(cmd.Context(), c, *opts, log.Logger)
			if err != nil {
				return err
			}
			if opts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(cmd.OutOrStdout(), summary)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.games, "games", "n", 0, "Number of games (default from simulate.games)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Games played in parallel (default from simulate.workers)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Base seed, game i uses seed+i (0 picks a time-based seed)")
	cmd.Flags().BoolVar(&opts.events, "events", false, "Log every game event at debug level")
	cmd.Flags().StringSliceVar(&opts.eventTypes, "event-types", nil, "With --events, only log these event types (e.g. shot.fired,game.ended)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

// simulate plays opts.games independent games on a bounded pool of workers
func simulate(ctx context.Context, c *config.Config, opts simulateOptions, logger zerolog.Logger) (Summary, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger = logger.With().Str("component", "Simulator").Logger()
	players := [2]string{c.Game.AIName + " 1", c.Game.AIName + " 2"}

	start := time.Now()
	results := make([]game.Result, opts.games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers)

	for i := 0; i < opts.games; i++ {
		g.Go(func() error {
			var bus *events.EventBus
			if opts.events {
				bus = events.NewEventBus(logger)
				logSub := subscribers.NewLoggerSubscriber(fmt.Sprintf("game-%d", i), logger, zerolog.DebugLevel)
				logSub.SetEventFilter(opts.eventTypes)
				// Full event payloads only at trace level
				logSub.SetDevMode(logger.GetLevel() == zerolog.TraceLevel || zerolog.GlobalLevel() == zerolog.TraceLevel)
				bus.Subscribe(logSub)
			}

			engine, err := game.NewEngine(gctx, game.GameConfig{
				Size:  c.Game.GridSize,
				Fleet: core.Fleet(c.Game.Fleet),
				Players: [2]game.PlayerConfig{
					{Name: players[0], Strategy: c.AI.Strategy},
					{Name: players[1], Strategy: c.AI.Strategy},
				},
				Rng:      rand.New(rand.NewSource(opts.seed + int64(i))),
				Logger:   logger,
				EventBus: bus,
			})
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			result, err := engine.Run(gctx)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := summarize(results)
	summary.Seed = opts.seed
	summary.Players = players
	summary.Elapsed = time.Since(start)

	logger.Info().
		Int("games", summary.Games).
		Ints("wins", summary.Wins[:]).
		Float64("average_shots", summary.AverageShots).
		Dur("elapsed", summary.Elapsed).
		Msg("Simulation finished")

	return summary, nil
}

// summarize folds finished games into win counts, shot counts and accuracy
func summarize(results []game.Result) Summary {
	s := Summary{Games: len(results)}
	if len(results) == 0 {
		return s
	}

	var totalShots int
	var fired, hits [2]int
	s.MinShots = results[0].Shots
	for _, r := range results {
		if r.Winner >= 0 && r.Winner < len(s.Wins) {
			s.Wins[r.Winner]++
		}
		totalShots += r.Shots
		s.MinShots = min(s.MinShots, r.Shots)
		s.MaxShots = max(s.MaxShots, r.Shots)
		for i := range fired {
			fired[i] += r.Fired[i]
			hits[i] += r.Hits[i]
		}
	}

	s.AverageShots = float64(totalShots) / float64(len(results))
	for i := range fired {
		if fired[i] > 0 {
			s.Accuracy[i] = float64(hits[i]) / float64(fired[i])
		}
	}
	return s
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "games:   %d (seed %d)\n", s.Games, s.Seed)
	for i, name := range s.Players {
		fmt.Fprintf(w, "%-12s wins: %d  accuracy: %.1f%%\n", name, s.Wins[i], s.Accuracy[i]*100)
	}
	fmt.Fprintf(w, "shots:   avg %.1f  min %d  max %d\n", s.AverageShots, s.MinShots, s.MaxShots)
	fmt.Fprintf(w, "elapsed: %s\n", s.Elapsed.Round(time.Millisecond))
}
