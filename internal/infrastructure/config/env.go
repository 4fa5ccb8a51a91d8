package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// RuntimeConfig holds sandbox process settings read from the environment.
// Command-line flags override these.
type RuntimeConfig struct {
	ConfigDir string `env:"KINECORE_CONFIG_DIR" envDefault:"configs"`
	Character string `env:"KINECORE_CHARACTER" envDefault:"character"`
	Stage     string `env:"KINECORE_STAGE" envDefault:"demo"`
	LogLevel  string `env:"KINECORE_LOG_LEVEL" envDefault:"info"`
	Watch     bool   `env:"KINECORE_WATCH" envDefault:"true"`
	TickRate  int    `env:"KINECORE_TICK_RATE" envDefault:"60"`
	Scale     int    `env:"KINECORE_SCALE" envDefault:"2"`
	ScreenW   int    `env:"KINECORE_SCREEN_WIDTH" envDefault:"480"`
	ScreenH   int    `env:"KINECORE_SCREEN_HEIGHT" envDefault:"272"`
}

// LoadRuntime reads RuntimeConfig from the environment
func LoadRuntime() (*RuntimeConfig, error) {
	var cfg RuntimeConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}
	if cfg.TickRate <= 0 {
		return nil, fmt.Errorf("KINECORE_TICK_RATE must be positive, got %d", cfg.TickRate)
	}
	return &cfg, nil
}
