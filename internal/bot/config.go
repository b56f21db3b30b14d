package bot

import (
	"fmt"
	"strings"
	"time"

	"researchbot/internal/grok"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Token may be empty; the process then serves only the web server.
	Token   string `env:"DISCORD_TOKEN"`
	GuildID string `env:"GUILD_ID"`

	GrokAPIKey  string        `env:"GROK_API_KEY,required,notEmpty"`
	GrokModel   string        `env:"GROK_MODEL" envDefault:"grok-4-1-fast-reasoning"`
	GrokAPIURL  string        `env:"GROK_API_URL" envDefault:"https://api.x.ai/v1/chat/completions"`
	GrokTimeout time.Duration `env:"GROK_TIMEOUT" envDefault:"90s"`

	Port         string `env:"PORT" envDefault:"8080"`
	TriggerEmoji string `env:"TRIGGER_EMOJI" envDefault:"🤖"`
	RedisURL     string `env:"REDIS_URL"`
	Production   bool   `env:"IS_PROD"`
}

func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg.Token = strings.TrimSpace(cfg.Token)
	cfg.GuildID = strings.TrimSpace(cfg.GuildID)
	cfg.GrokAPIKey = strings.TrimSpace(cfg.GrokAPIKey)
	cfg.GrokModel = strings.TrimSpace(cfg.GrokModel)
	cfg.GrokAPIURL = strings.TrimRight(strings.TrimSpace(cfg.GrokAPIURL), "/")
	cfg.Port = strings.TrimSpace(cfg.Port)

	if cfg.GrokAPIKey == "" {
		return Config{}, fmt.Errorf("GROK_API_KEY environment variable is missing")
	}
	if err := grok.ValidateModel(cfg.GrokModel); err != nil {
		return Config{}, err
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.TriggerEmoji == "" {
		cfg.TriggerEmoji = "🤖"
	}

	return cfg, nil
}
