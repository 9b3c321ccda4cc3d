// Package config loads application settings from an optional YAML file
// and MALECON_-prefixed environment variables. Missing settings fall
// back to playable defaults, so a bare binary always starts.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// DefaultVariant is used when a game is started without naming one.
	DefaultVariant string `mapstructure:"default_variant"`

	// MaxScore of 0 keeps each variant's own target.
	MaxScore int `mapstructure:"max_score"`

	// ThinkDelayMs paces interactive AI turns.
	ThinkDelayMs int `mapstructure:"think_delay_ms"`

	// MaxDrawsPerRound caps boneyard fishing in draw variants; 0 is
	// unlimited.
	MaxDrawsPerRound int `mapstructure:"max_draws_per_round"`

	// Personality is the AI preset for computer seats.
	Personality string `mapstructure:"personality"`

	// DBPath locates the profile database. Empty disables persistence.
	DBPath string `mapstructure:"db_path"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// AutoplayThreads sizes the batch self-play worker pool.
	AutoplayThreads int `mapstructure:"autoplay_threads"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_variant", "block")
	v.SetDefault("max_score", 0)
	v.SetDefault("think_delay_ms", 800)
	v.SetDefault("max_draws_per_round", 0)
	v.SetDefault("personality", "casual")
	v.SetDefault("db_path", "malecon.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("autoplay_threads", 4)
}

// Load reads the config file at path, or searches the working directory
// for malecon.yaml when path is empty. Environment variables win over
// the file; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("malecon")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("malecon")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
