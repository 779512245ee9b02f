// Package daemon manages the Paws daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Streak    StreakConfig    `toml:"streak"`
	Quests    QuestsConfig    `toml:"quests"`
	Leveling  LevelingConfig  `toml:"leveling"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StreakConfig controls the daily-streak tracker.
type StreakConfig struct {
	// Timezone is the IANA zone day boundaries are computed in.
	// Empty means UTC.
	Timezone string `toml:"timezone"`
}

// QuestsConfig controls the quest engine.
type QuestsConfig struct {
	// AdvanceDelay is how long a completed batch lingers before the next
	// one activates, e.g. "2s". Empty or "0" advances immediately.
	AdvanceDelay string `toml:"advance_delay"`
}

// LevelingConfig overrides the XP curve.
type LevelingConfig struct {
	// Steps are the per-level XP costs; empty keeps the built-in curve.
	Steps []int64 `toml:"steps"`
	// Increment is the flat per-level cost past the last step.
	Increment int64 `toml:"increment"`
}

// TelemetryConfig controls metrics exposure.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := pawsHome()
	return Config{
		API: APIConfig{
			Host: "127.0.0.1",
			Port: 7465,
		},
		Streak: StreakConfig{
			Timezone: "",
		},
		Quests: QuestsConfig{
			AdvanceDelay: "2s",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "paws.log"),
		},
	}
}

// LoadConfig reads config from ~/.paws/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(pawsHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.paws/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(pawsHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// AdvanceDelayDuration parses the configured batch-advance delay.
func (c QuestsConfig) AdvanceDelayDuration() time.Duration {
	return parseDuration(c.AdvanceDelay, 0)
}

// parseDuration parses a duration string, returning a fallback on error.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// pawsHome returns the Paws data directory.
func pawsHome() string {
	if env := os.Getenv("PAWS_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paws")
}

// PawsHome is exported for use by other packages.
func PawsHome() string {
	return pawsHome()
}
