// Package config loads application settings from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// --- Server ---
	Port        int    `envconfig:"PORT" default:"5000"`
	AppLogLevel string `envconfig:"APP_LOG_LEVEL" default:"info"`

	// --- Database ---
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// --- Auth ---
	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpire time.Duration `envconfig:"JWT_EXPIRE" default:"24h"`

	// --- Rewards ---
	StartingCoins  int `envconfig:"STARTING_COINS" default:"50"`
	ActRewardCoins int `envconfig:"ACT_REWARD_COINS" default:"10"`
	JoinBonusCoins int `envconfig:"JOIN_BONUS_COINS" default:"5"`

	// --- AI suggestions ---
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.JWTExpire <= 0 {
		return fmt.Errorf("JWT_EXPIRE must be positive")
	}
	if c.StartingCoins < 0 || c.ActRewardCoins < 0 || c.JoinBonusCoins < 0 {
		return fmt.Errorf("coin amounts must not be negative")
	}
	return nil
}

// Load reads the environment and fills the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
