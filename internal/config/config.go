// Package config loads runtime settings from a YAML file, environment
// variables, and defaults, in that order of precedence.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr             string  `mapstructure:"listen_addr"`
	SeedFile               string  `mapstructure:"seed_file"`
	TariffPerKWh           float64 `mapstructure:"tariff_per_kwh"`
	EmissionFactorKgPerKWh float64 `mapstructure:"emission_factor_kg_per_kwh"`
	MaxStepSeconds         float64 `mapstructure:"max_step_seconds"`
	HistoryPerDevice       int     `mapstructure:"history_per_device"`
}

// Load reads configuration from the given file path. An empty path
// loads defaults (plus any HORIZON_* environment overrides); a missing
// file at an explicit path is an error.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("horizon")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("seed_file", "seed.json")
	v.SetDefault("tariff_per_kwh", 0.38)
	v.SetDefault("emission_factor_kg_per_kwh", 0.45)
	v.SetDefault("max_step_seconds", 60.0)
	v.SetDefault("history_per_device", 500)
}
