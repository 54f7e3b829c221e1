// Package config loads the bot's environment-driven configuration.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvTest collapses every cooldown to zero so commands can be exercised
// back to back.
const EnvTest = "test"

// Config holds every runtime setting for the bot
type Config struct {
	// Env selects the runtime mode ("production" or "test")
	Env string `env:"APP_ENV" envDefault:"production"`

	// DiscordToken authenticates the bot with Discord
	DiscordToken string `env:"DISCORD_TOKEN,required"`

	// ApplicationID is the Discord application ID for command registration
	ApplicationID string `env:"APPLICATION_ID"`

	// GuildID optionally scopes command registration to one guild
	GuildID string `env:"GUILD_ID"`

	// RedisAddr is the address of the durable store
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// RedisPassword is the optional Redis password
	RedisPassword string `env:"REDIS_PASSWORD"`

	// CatalogPath is the JSON card catalog file loaded at startup
	CatalogPath string `env:"CATALOG_PATH" envDefault:"cards.json"`

	// MetricsAddr, when set, serves Prometheus metrics on /metrics
	MetricsAddr string `env:"METRICS_ADDR"`

	// DrawCooldown gates single card draws
	DrawCooldown time.Duration `env:"DRAW_COOLDOWN" envDefault:"15m"`

	// PackCooldown gates pack opening
	PackCooldown time.Duration `env:"PACK_COOLDOWN" envDefault:"10m"`

	// PickCooldown gates pick sessions
	PickCooldown time.Duration `env:"PICK_COOLDOWN" envDefault:"30m"`
}

// Load parses the configuration from the environment
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}

	if cfg.Env == EnvTest {
		cfg.DrawCooldown = 0
		cfg.PackCooldown = 0
		cfg.PickCooldown = 0
	}

	return &cfg, nil
}
