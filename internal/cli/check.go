package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/game/rules"
)

func newCheckCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <board.json>",
		Short: "Check whether a saved board holds exactly its fleet",
		Long: `check loads a board snapshot and reports whether its ship cells form one
straight run per fleet entry with no cells left over.

A snapshot looks like {"size": 3, "fleet": [2], "cells": [[1,1,0],[0,0,0],[0,0,0]]}
where cells are indexed [row][column] and 0 is water, 1 ship, 2 sunken,
3 unknown and 4 missed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := loadBoard(args[0])
			if err != nil {
				return err
			}
			return checkBoard(cmd.OutOrStdout(), args[0], board, quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only report through the exit status")

	return cmd
}

func loadBoard(path string) (*core.Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading board: %w", err)
	}
	var board core.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, fmt.Errorf("decoding board %s: %w", path, err)
	}
	return &board, nil
}

// checkBoard prints the verdict and returns ErrIllegalBoard for an illegal board
func checkBoard(w io.Writer, name string, board *core.Board, quiet bool) error {
	checker := rules.NewFleetChecker(log.Logger)
	legal := checker.IsLegal(board)

	if !quiet {
		fmt.Fprint(w, board.String())
		fmt.Fprintf(w, "fleet: %v  ship cells: %d/%d\n", board.Fleet(), board.PlacedShips(), board.TotalShips())
		if legal {
			fmt.Fprintf(w, "%s: legal\n", name)
		} else {
			fmt.Fprintf(w, "%s: illegal\n", name)
		}
	}

	if !legal {
		return fmt.Errorf("%s: %w", name, core.ErrIllegalBoard)
	}
	return nil
}
