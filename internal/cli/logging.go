package cli

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/battleship/internal/config"
)

// setupLogging sets the global level and points the global logger at w
func setupLogging(w io.Writer, c config.LogConfig) error {
	if err := applyLogLevel(c.Level); err != nil {
		return err
	}

	if c.Format == config.FormatJSON {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return nil
	}

	// Pretty console output
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
	return nil
}

// applyLogLevel only touches zerolog's atomic global level, so it is safe
// to call while other goroutines are logging.
func applyLogLevel(name string) error {
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

// reloadLogLevel handles a config file change. Only the level is applied;
// a new log.format takes effect on the next run.
func reloadLogLevel(c *config.Config) {
	if err := applyLogLevel(c.Log.Level); err != nil {
		log.Warn().Err(err).Msg("Keeping previous log level")
		return
	}
	log.Info().Str("level", c.Log.Level).Msg("Config reloaded")
}
