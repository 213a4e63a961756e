package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/xuelxng/exchange-bot/core/config"
)

func validConfig() *Config {
	return &Config{
		Core: coreconfig.Config{
			Telegram: coreconfig.TelegramConfig{Token: "123:abc"},
		},
		Bot: BotConfig{ReviewChatID: -400123},
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, StateBackendMemory, cfg.State.Backend)
	assert.Equal(t, "ru", cfg.Bot.DefaultLanguage)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Core.Telegram.RunMode)
}

func TestNormalizeRedisBackendNeedsAddr(t *testing.T) {
	cfg := validConfig()
	cfg.State.Backend = "redis"
	assert.Error(t, Normalize(cfg))

	cfg.State.Redis.Addr = "localhost:6379"
	assert.NoError(t, Normalize(cfg))
}

func TestNormalizeRejectsUnknownBackend(t *testing.T) {
	cfg := validConfig()
	cfg.State.Backend = "etcd"
	assert.Error(t, Normalize(cfg))
}

func TestNormalizeRequiresReviewChat(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.ReviewChatID = 0
	assert.Error(t, Normalize(cfg))
}
