package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/config"
	"github.com/mitchelldurbincs/battleship/internal/game"
	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// runCmd executes the root command and returns stdout
func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSimulateCommand(t *testing.T) {
	args := []string{"simulate", "-n", "6", "-w", "3", "--seed", "7", "--json", "--log-level", "error"}

	out, err := runCmd(t, "", args...)
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 6, summary.Games)
	assert.Equal(t, int64(7), summary.Seed)
	assert.Equal(t, 6, summary.Wins[0]+summary.Wins[1])
	assert.GreaterOrEqual(t, summary.MinShots, core.StandardFleet().Total())
	assert.LessOrEqual(t, summary.MaxShots, 2*core.DefaultGridSize*core.DefaultGridSize)
	assert.LessOrEqual(t, float64(summary.MinShots), summary.AverageShots)
	assert.GreaterOrEqual(t, float64(summary.MaxShots), summary.AverageShots)
	for i := range summary.Accuracy {
		assert.Greater(t, summary.Accuracy[i], 0.0)
		assert.LessOrEqual(t, summary.Accuracy[i], 1.0)
	}

	// Same seed, same games, whatever the worker count
	out, err = runCmd(t, "", "simulate", "-n", "6", "-w", "1", "--seed", "7", "--json", "--log-level", "error")
	require.NoError(t, err)
	var again Summary
	require.NoError(t, json.Unmarshal([]byte(out), &again))
	assert.Equal(t, summary.Wins, again.Wins)
	assert.Equal(t, summary.AverageShots, again.AverageShots)
	assert.Equal(t, summary.Accuracy, again.Accuracy)
}

func TestSimulateCommand_TextOutput(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", `
game:
  grid_size: 5
  fleet: [3, 2]
  ai_name: Bot
simulate:
  games: 4
  workers: 2
ai:
  seed: 3
log:
  level: error
`)
	out, err := runCmd(t, "", "--config", cfgPath, "--watch-config", "simulate", "--events")
	require.NoError(t, err)
	assert.Contains(t, out, "games:   4 (seed 3)")
	assert.Contains(t, out, "Bot 1")
	assert.Contains(t, out, "Bot 2")
}

func TestSimulate_EventTypesFilter(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	c := &config.Config{
		Game: config.GameConfig{GridSize: 5, Fleet: []int{3, 2}, AIName: "Bot"},
		AI:   config.AIConfig{Strategy: config.StrategyHuntTarget},
	}
	opts := simulateOptions{games: 2, workers: 1, seed: 11, events: true, eventTypes: []string{"game.ended"}}

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	summary, err := simulate(context.Background(), c, opts, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Games)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"event_type":"game.ended"`))
	assert.NotContains(t, out, `"event_type":"shot.fired"`)
	assert.NotContains(t, out, "event_data", "payloads are only attached at trace level")
}

func TestSimulateCommand_Errors(t *testing.T) {
	_, err := runCmd(t, "", "simulate", "-n", "0")
	assert.Error(t, err)

	_, err = runCmd(t, "", "simulate", "--log-level", "loud")
	assert.Error(t, err)

	_, err = runCmd(t, "", "simulate", "extra")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name    string
		results []game.Result
		want    Summary
	}{
		{
			name: "no games",
			want: Summary{},
		},
		{
			name: "two games",
			results: []game.Result{
				{Winner: 0, Shots: 40, Fired: [2]int{20, 20}, Hits: [2]int{17, 10}},
				{Winner: 1, Shots: 60, Fired: [2]int{30, 30}, Hits: [2]int{13, 17}},
			},
			want: Summary{
				Games:        2,
				Wins:         [2]int{1, 1},
				AverageShots: 50,
				MinShots:     40,
				MaxShots:     60,
				Accuracy:     [2]float64{0.6, 0.54},
			},
		},
		{
			name: "player that never fired",
			results: []game.Result{
				{Winner: 0, Shots: 1, Fired: [2]int{1, 0}, Hits: [2]int{0, 0}},
			},
			want: Summary{
				Games:        1,
				Wins:         [2]int{1, 0},
				AverageShots: 1,
				MinShots:     1,
				MaxShots:     1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(tt.results)
			assert.Equal(t, tt.want.Games, got.Games)
			assert.Equal(t, tt.want.Wins, got.Wins)
			assert.InDelta(t, tt.want.AverageShots, got.AverageShots, 1e-9)
			assert.Equal(t, tt.want.MinShots, got.MinShots)
			assert.Equal(t, tt.want.MaxShots, got.MaxShots)
			assert.InDelta(t, tt.want.Accuracy[0], got.Accuracy[0], 1e-9)
			assert.InDelta(t, tt.want.Accuracy[1], got.Accuracy[1], 1e-9)
		})
	}
}

func TestCheckCommand(t *testing.T) {
	legal := writeFile(t, "legal.json", `{"size": 4, "fleet": [3, 2], "cells": [
		[1, 1, 1, 0],
		[0, 0, 0, 0],
		[0, 0, 0, 1],
		[0, 0, 0, 1]
	]}`)
	illegal := writeFile(t, "illegal.json", `{"size": 3, "fleet": [3], "cells": [
		[1, 0, 0],
		[1, 1, 0],
		[0, 0, 0]
	]}`)
	broken := writeFile(t, "broken.json", `{"size": 2, "fleet": [1], "cells": [[0, 7], [0, 0]]}`)

	t.Run("legal", func(t *testing.T) {
		out, err := runCmd(t, "", "check", legal)
		require.NoError(t, err)
		assert.Contains(t, out, "legal.json: legal")
		assert.Contains(t, out, "ship cells: 5/5")
	})

	t.Run("illegal", func(t *testing.T) {
		out, err := runCmd(t, "", "check", illegal)
		assert.ErrorIs(t, err, core.ErrIllegalBoard)
		assert.Contains(t, out, "illegal.json: illegal")
	})

	t.Run("quiet", func(t *testing.T) {
		out, err := runCmd(t, "", "check", "-q", illegal)
		assert.ErrorIs(t, err, core.ErrIllegalBoard)
		assert.Empty(t, out)
	})

	t.Run("bad cell state", func(t *testing.T) {
		_, err := runCmd(t, "", "check", broken)
		assert.ErrorIs(t, err, core.ErrInvalidCellState)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runCmd(t, "", "check", filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("needs a file", func(t *testing.T) {
		_, err := runCmd(t, "", "check")
		assert.Error(t, err)
	})
}

func smallConfig() *config.Config {
	return &config.Config{
		Game: config.GameConfig{GridSize: 2, Fleet: []int{1}, HumanName: "You", AIName: "Bot"},
		AI:   config.AIConfig{Strategy: config.StrategyHuntTarget},
	}
}

func TestPlay(t *testing.T) {
	// Sweeping every cell always finds the single enemy ship
	input := "oops\n9 9\n0 0\n0 0\n0 1\n1 0\n1 1\n"

	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader(input), &out, smallConfig(), playOptions{seed: 5, noColor: true})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `want a row and a column, got "oops"`)
	assert.Contains(t, text, "invalid coordinates")
	assert.Contains(t, text, "you fire at (0,0)")
	assert.Contains(t, text, "wins after")
	assert.NotContains(t, text, game.ColorReset)
}

func TestPlay_Quit(t *testing.T) {
	var out bytes.Buffer
	err := play(context.Background(), strings.NewReader("quit\n"), &out, smallConfig(), playOptions{seed: 1, noColor: true})
	assert.ErrorIs(t, err, errQuit)

	err = play(context.Background(), strings.NewReader(""), &out, smallConfig(), playOptions{seed: 1, noColor: true})
	assert.ErrorIs(t, err, errQuit, "closed input abandons the game")
}

func TestPlayCommand(t *testing.T) {
	cfgPath := writeFile(t, "config.yaml", `
game:
  grid_size: 2
  fleet: [1]
log:
  level: error
`)
	out, err := runCmd(t, "0 0\n0 1\n1 0\n1 1\n", "--config", cfgPath, "play", "--seed", "9", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "wins after")

	out, err = runCmd(t, "q\n", "--config", cfgPath, "play", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "bye")
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    core.Coordinate
		wantErr bool
	}{
		{in: "3 7", want: core.NewCoordinate(3, 7)},
		{in: "3,7", want: core.NewCoordinate(3, 7)},
		{in: " 0 ,  9 ", want: core.NewCoordinate(0, 9)},
		{in: "-1 2", want: core.NewCoordinate(-1, 2)},
		{in: "3", wantErr: true},
		{in: "a b", wantErr: true},
		{in: "1 b", wantErr: true},
		{in: "1 2 3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTarget(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	var buf bytes.Buffer
	require.NoError(t, setupLogging(&buf, config.LogConfig{Level: "info", Format: config.FormatJSON}))
	log.Info().Str("component", "test").Msg("hello")
	log.Debug().Msg("hidden")
	assert.Contains(t, buf.String(), `"message":"hello"`)
	assert.NotContains(t, buf.String(), "hidden")

	assert.Error(t, setupLogging(&buf, config.LogConfig{Level: "loud", Format: config.FormatJSON}))
}

func TestReloadLogLevel(t *testing.T) {
	previous := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(previous)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	reloadLogLevel(&config.Config{Log: config.LogConfig{Level: "warn", Format: config.FormatJSON}})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	reloadLogLevel(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel(), "an unknown level keeps the current one")
}
