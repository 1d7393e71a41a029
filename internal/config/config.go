package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
)

// Config holds all configuration for the application
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	AI       AIConfig       `mapstructure:"ai"`
	Log      LogConfig      `mapstructure:"log"`
	Simulate SimulateConfig `mapstructure:"simulate"`
}

// GameConfig holds the board and fleet settings
type GameConfig struct {
	GridSize  int    `mapstructure:"grid_size"`
	Fleet     []int  `mapstructure:"fleet"`
	HumanName string `mapstructure:"human_name"`
	AIName    string `mapstructure:"ai_name"`
}

// AIConfig holds settings for scripted players
type AIConfig struct {
	Strategy string `mapstructure:"strategy"`
	// Seed for placement and targeting; 0 picks a time-based seed
	Seed int64 `mapstructure:"seed"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SimulateConfig holds batch simulation settings
type SimulateConfig struct {
	Games   int `mapstructure:"games"`
	Workers int `mapstructure:"workers"`
}

const (
	EnvPrefix = "BATTLESHIP"

	StrategyHuntTarget = "hunt_target"

	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
	mu  sync.RWMutex

	// Environment files merged over the base config, in load order
	overlays []string
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.grid_size", core.DefaultGridSize)
	v.SetDefault("game.fleet", []int(core.StandardFleet()))
	v.SetDefault("game.human_name", "Player")
	v.SetDefault("game.ai_name", "Computer")

	v.SetDefault("ai.strategy", StrategyHuntTarget)
	v.SetDefault("ai.seed", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", FormatConsole)

	v.SetDefault("simulate.games", 100)
	v.SetDefault("simulate.workers", 4)
}

// Init initializes the configuration
func Init(configPath string) error {
	nv := viper.New()
	setViperDefaults(nv)

	if configPath != "" {
		nv.SetConfigFile(configPath)
	} else {
		nv.SetConfigName("config")
		nv.SetConfigType("yaml")
		nv.AddConfigPath(".")
		nv.AddConfigPath("./config")
		nv.AddConfigPath("/etc/battleship")
	}

	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()

	if err := nv.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case configPath != "" && isMissingFile(err):
			// Specific file requested but not found - use defaults
		case errors.As(err, &notFound):
			// No config in the default locations - use defaults
		default:
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := decode(nv)
	if err != nil {
		return err
	}

	mu.Lock()
	v, cfg = nv, c
	overlays = nil
	mu.Unlock()
	return nil
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// LoadDotEnv exports the variables of a .env file so BATTLESHIP_* entries
// reach the next Init. Variables already set in the environment win.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !isMissingFile(err) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()

	if c == nil {
		// Initialize with defaults if not already initialized
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
		mu.RLock()
		c = cfg
		mu.RUnlock()
	}
	return c
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	mu.RLock()
	defer mu.RUnlock()
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml from the working directory
// over the loaded configuration. The base file stays the one reported by
// ConfigFilePath and watched by WatchConfig; the overlay is re-applied
// after every reload of it.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	nv := GetViper()
	envFile := fmt.Sprintf("config.%s.yaml", env)
	if err := mergeOverlay(nv, envFile); err != nil {
		return err
	}

	mu.Lock()
	overlays = append(overlays, envFile)
	mu.Unlock()
	return reload(nv)
}

// mergeOverlay reads path on its own viper and merges its settings into nv,
// leaving nv's config file untouched. A missing file is skipped.
func mergeOverlay(nv *viper.Viper, path string) error {
	ov := viper.New()
	ov.SetConfigFile(path)
	if err := ov.ReadInConfig(); err != nil {
		if isMissingFile(err) {
			return nil
		}
		return fmt.Errorf("error merging environment config %s: %w", path, err)
	}
	return nv.MergeConfigMap(ov.AllSettings())
}

// refresh re-applies the environment overlays after nv re-read its base
// file, then decodes the result.
func refresh(nv *viper.Viper) error {
	mu.RLock()
	paths := append([]string(nil), overlays...)
	mu.RUnlock()

	for _, path := range paths {
		if err := mergeOverlay(nv, path); err != nil {
			return err
		}
	}
	return reload(nv)
}

// Set allows runtime config updates. The change is rejected if the
// resulting configuration is invalid.
func Set(key string, value interface{}) error {
	nv := GetViper()
	nv.Set(key, value)
	return reload(nv)
}

func reload(nv *viper.Viper) error {
	c, err := decode(nv)
	if err != nil {
		return err
	}
	mu.Lock()
	cfg = c
	mu.Unlock()
	return nil
}

// GetString gets a string value from config
func GetString(key string) string {
	return GetViper().GetString(key)
}

// GetInt gets an int value from config
func GetInt(key string) int {
	return GetViper().GetInt(key)
}

// GetBool gets a bool value from config
func GetBool(key string) bool {
	return GetViper().GetBool(key)
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the base config file. Environment
// overlays are merged again on each change. Invalid edits are reported
// through onError and the previous configuration stays active.
func WatchConfig(onChange func(*Config), onError func(error)) {
	nv := GetViper()
	// viper has already re-read the base file when this runs
	nv.OnConfigChange(func(e fsnotify.Event) {
		if err := refresh(nv); err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(Get())
		}
	})
	nv.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.GridSize <= 0 {
		return fmt.Errorf("game.grid_size must be positive")
	}
	fleet := core.Fleet(c.Game.Fleet)
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("game.fleet: %w", err)
	}
	if total, cells := fleet.Total(), c.Game.GridSize*c.Game.GridSize; total > cells {
		return fmt.Errorf("game.fleet needs %d cells but the grid only has %d", total, cells)
	}
	if c.Game.HumanName == "" || c.Game.AIName == "" {
		return fmt.Errorf("game.human_name and game.ai_name must not be empty")
	}

	if c.AI.Strategy != StrategyHuntTarget {
		return fmt.Errorf("ai.strategy must be %q, got %q", StrategyHuntTarget, c.AI.Strategy)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != FormatConsole && c.Log.Format != FormatJSON {
		return fmt.Errorf("log.format must be %q or %q", FormatConsole, FormatJSON)
	}

	if c.Simulate.Games <= 0 {
		return fmt.Errorf("simulate.games must be positive")
	}
	if c.Simulate.Workers <= 0 {
		return fmt.Errorf("simulate.workers must be positive")
	}

	return nil
}
