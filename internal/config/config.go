// Package config assembles the application configuration: the reusable
// core sections plus the database, dialogue-state, and bot sections this
// binary adds.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	coreconfig "github.com/xuelxng/exchange-bot/core/config"
	coredatabase "github.com/xuelxng/exchange-bot/core/database"
)

// State backends for the per-user dialogue sessions.
const (
	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
)

// RedisConfig connects the Redis dialogue-state backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

// StateConfig selects where dialogue sessions live.
type StateConfig struct {
	Backend string      `yaml:"backend" envconfig:"STATE_BACKEND"`
	Redis   RedisConfig `yaml:"redis"`
	// TTL expires abandoned Redis sessions; zero keeps them forever.
	// The memory backend ignores it.
	TTL time.Duration `yaml:"ttl" envconfig:"STATE_TTL"`
}

// BotConfig holds the exchange-bot specific settings.
type BotConfig struct {
	// ReviewChatID is the chat completed orders are forwarded to.
	ReviewChatID int64 `yaml:"review_chat_id" envconfig:"REVIEW_CHAT_ID"`
	// DefaultLanguage serves users whose language preference is unknown.
	DefaultLanguage string `yaml:"default_language" envconfig:"DEFAULT_LANGUAGE"`
}

// Config is the full application configuration.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	State    StateConfig         `yaml:"state"`
	Bot      BotConfig           `yaml:"bot"`
}

// CoreConfig exposes the embedded core sections to the shared runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// Load reads YAML then applies environment overrides, then validates.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the app sections and defers to the core for its own.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return err
	}

	backend := strings.ToLower(strings.TrimSpace(cfg.State.Backend))
	if backend == "" {
		backend = StateBackendMemory
	}
	switch backend {
	case StateBackendMemory:
	case StateBackendRedis:
		if strings.TrimSpace(cfg.State.Redis.Addr) == "" {
			return fmt.Errorf("state.redis.addr is required when state.backend is 'redis'")
		}
	default:
		return fmt.Errorf("invalid state.backend %q; allowed: memory, redis", cfg.State.Backend)
	}
	cfg.State.Backend = backend

	if cfg.State.TTL < 0 {
		return fmt.Errorf("state.ttl must be >= 0")
	}
	if cfg.Bot.ReviewChatID == 0 {
		return fmt.Errorf("bot.review_chat_id is required")
	}
	if cfg.Bot.DefaultLanguage == "" {
		cfg.Bot.DefaultLanguage = "ru"
	}
	return nil
}
