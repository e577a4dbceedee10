package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the full simulator configuration, loaded from YAML.
type Config struct {
	Runner  RunnerConfig  `mapstructure:"runner"`
	Game    GameConfig    `mapstructure:"game"`
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// RunnerConfig controls the batch of simulations.
type RunnerConfig struct {
	Runs       int    `mapstructure:"runs"`
	Workers    int    `mapstructure:"workers"`
	Seed       int64  `mapstructure:"seed"`
	OutputPath string `mapstructure:"output_path"`
}

// GameConfig carries the per-game rule knobs.
type GameConfig struct {
	BoardSize        int                     `mapstructure:"board_size"`
	ZoneFrequencies  map[string]int          `mapstructure:"zone_frequencies"`
	MaxTurns         int                     `mapstructure:"max_turns"`
	Seats            []string                `mapstructure:"seats"`
	ChallengeDice    DiceConfig              `mapstructure:"challenge_dice"`
	MovementDice     DiceConfig              `mapstructure:"movement_dice"`
	Bounds           map[string]BoundsConfig `mapstructure:"bounds"`
	Elimination      EliminationConfig       `mapstructure:"elimination"`
	InterferenceCost map[string]int          `mapstructure:"interference_cost"`
}

// DiceConfig declares a dice pool.
type DiceConfig struct {
	Count int `mapstructure:"count"`
	Sides int `mapstructure:"sides"`
}

// BoundsConfig declares a resource's floor and ceiling.
type BoundsConfig struct {
	Floor   int `mapstructure:"floor"`
	Ceiling int `mapstructure:"ceiling"`
}

// EliminationConfig carries the elimination rule knobs.
type EliminationConfig struct {
	NerveFloor      int  `mapstructure:"nerve_floor"`
	NerveGraceTurns int  `mapstructure:"nerve_grace_turns"`
	DebtFloor       int  `mapstructure:"debt_floor"`
	EmergencySale   bool `mapstructure:"emergency_sale"`
}

// DataConfig points at the card, profile and goal data files.
type DataConfig struct {
	CardsPath    string `mapstructure:"cards_path"`
	ProfilesPath string `mapstructure:"profiles_path"`
	GoalsPath    string `mapstructure:"goals_path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads and validates configuration from the given file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("runner.runs", 1000)
	v.SetDefault("runner.workers", 0)
	v.SetDefault("runner.seed", 1)
	v.SetDefault("runner.output_path", "summary.json")

	v.SetDefault("game.board_size", 40)
	v.SetDefault("game.max_turns", 100)
	v.SetDefault("game.challenge_dice.count", 1)
	v.SetDefault("game.challenge_dice.sides", 6)
	v.SetDefault("game.movement_dice.count", 1)
	v.SetDefault("game.movement_dice.sides", 6)
	v.SetDefault("game.elimination.nerve_floor", 0)
	v.SetDefault("game.elimination.debt_floor", 0)
	v.SetDefault("game.elimination.emergency_sale", true)

	v.SetDefault("data.cards_path", "data/cards.json")
	v.SetDefault("data.profiles_path", "data/profiles.json")
	v.SetDefault("data.goals_path", "data/goals.json")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks the configuration for values no simulation can run with.
func (c *Config) Validate() error {
	if c.Runner.Runs <= 0 {
		return fmt.Errorf("runner.runs must be positive, got %d", c.Runner.Runs)
	}
	if c.Runner.Workers < 0 {
		return fmt.Errorf("runner.workers must not be negative, got %d", c.Runner.Workers)
	}
	if c.Game.BoardSize < 2 {
		return fmt.Errorf("game.board_size must be at least 2, got %d", c.Game.BoardSize)
	}
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive, got %d", c.Game.MaxTurns)
	}
	if len(c.Game.Seats) < 2 {
		return fmt.Errorf("game.seats needs at least 2 entries, got %d", len(c.Game.Seats))
	}
	if c.Data.CardsPath == "" || c.Data.ProfilesPath == "" || c.Data.GoalsPath == "" {
		return fmt.Errorf("data paths must all be set")
	}
	return nil
}
