package cli

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mitchelldurbincs/battleship/internal/config"
)

type rootOptions struct {
	configPath string
	env        string
	envFile    string
	logLevel   string
	logFormat  string
	watch      bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "battleship",
		Short: "Battleship with a hunt and target computer player",
		Long: `battleship plays the classic fleet game in the terminal.

It can run batches of computer-versus-computer games, check whether a saved
board holds a legal fleet, or let you play against the computer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file with BATTLESHIP_* variables")
	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "", "Environment overlay, loads config.<env>.yaml")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (env: BATTLESHIP_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: console, json (env: BATTLESHIP_LOG_FORMAT)")

	rootCmd.PersistentFlags().BoolVar(&opts.watch, "watch-config", false, "Re-apply the log level when the config file changes")

	rootCmd.AddCommand(newSimulateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPlayCmd())

	return rootCmd
}

// load reads the configuration, applies flag overrides and sets up logging
func (o *rootOptions) load(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(o.envFile); err != nil {
		return err
	}
	if err := config.Init(o.configPath); err != nil {
		return err
	}
	if err := config.LoadEnvironmentConfig(o.env); err != nil {
		return err
	}
	if o.logLevel != "" {
		if err := config.Set("log.level", o.logLevel); err != nil {
			return err
		}
	}
	if o.logFormat != "" {
		if err := config.Set("log.format", o.logFormat); err != nil {
			return err
		}
	}
	if err := setupLogging(cmd.ErrOrStderr(), config.Get().Log); err != nil {
		return err
	}

	if o.watch && config.ConfigFilePath() != "" {
		config.WatchConfig(reloadLogLevel, func(err error) {
			log.Warn().Err(err).Msg("Ignoring invalid config change")
		})
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
