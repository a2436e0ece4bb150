package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings are defaults read from odb.yaml in the working directory or
// from ODB_* environment variables. Command line flags override them.
type Settings struct {
	Registry string `mapstructure:"registry"`
	Strict   bool   `mapstructure:"strict"`
	MaxDepth int    `mapstructure:"max_depth"`
	Color    string `mapstructure:"color"`
}

func LoadSettings(dir string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("registry", "")
	v.SetDefault("strict", false)
	v.SetDefault("max_depth", 64)
	v.SetDefault("color", "auto")

	v.SetConfigName("odb")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix("ODB")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	switch s.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("color must be auto, always or never, got: %s", s.Color)
	}
	if s.MaxDepth <= 0 {
		return nil, fmt.Errorf("max_depth must be positive, got: %d", s.MaxDepth)
	}
	return &s, nil
}
