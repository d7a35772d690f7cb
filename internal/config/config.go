// Package config loads engine and tooling configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Database DatabaseConfig `mapstructure:"database"`
	Replay   ReplayConfig   `mapstructure:"replay"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig holds match setup parameters.
type EngineConfig struct {
	Seed                    uint64 `mapstructure:"seed"`
	StartingLife            int    `mapstructure:"starting_life"`
	StartingHand            int    `mapstructure:"starting_hand"`
	TerritoryRevealTurns    int    `mapstructure:"territory_reveal_turns"`
	SecondPlayerEnergyBonus bool   `mapstructure:"second_player_energy_bonus"`
}

// CatalogConfig selects where card definitions are read from.
type CatalogConfig struct {
	Source string `mapstructure:"source"` // builtin, file or postgres
	Path   string `mapstructure:"path"`
}

// DatabaseConfig configures the optional Postgres catalog store.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ReplayConfig controls on-disk match journals.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

const envPrefix = "RIFT"

// Catalog sources.
const (
	SourceBuiltin  = "builtin"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("engine.seed", 0)
	v.SetDefault("engine.starting_life", 6)
	v.SetDefault("engine.starting_hand", 5)
	v.SetDefault("engine.territory_reveal_turns", 3)
	v.SetDefault("engine.second_player_energy_bonus", true)

	v.SetDefault("catalog.source", SourceBuiltin)
	v.SetDefault("catalog.path", "")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("replay.enabled", false)
	v.SetDefault("replay.directory", "replays")
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults alone always decode.
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads the YAML file at path, when path is non-empty, and overlays RIFT_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and cross-field requirements.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}

	if c.Engine.StartingLife <= 0 {
		return fmt.Errorf("engine.starting_life must be positive, got %d", c.Engine.StartingLife)
	}
	if c.Engine.StartingHand < 0 {
		return fmt.Errorf("engine.starting_hand must not be negative, got %d", c.Engine.StartingHand)
	}
	if c.Engine.TerritoryRevealTurns < 0 {
		return fmt.Errorf("engine.territory_reveal_turns must not be negative, got %d", c.Engine.TerritoryRevealTurns)
	}

	switch c.Catalog.Source {
	case SourceBuiltin:
	case SourceFile:
		if c.Catalog.Path == "" {
			return errors.New("catalog.path is required when catalog.source is file")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.New("database.url is required when catalog.source is postgres")
		}
	default:
		return fmt.Errorf("catalog.source: unsupported source %q", c.Catalog.Source)
	}

	if c.Replay.Enabled && c.Replay.Directory == "" {
		return errors.New("replay.directory is required when replay.enabled is set")
	}
	return nil
}
