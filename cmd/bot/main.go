package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/xuelxng/exchange-bot/core/cmd"
	"github.com/xuelxng/exchange-bot/internal/bot"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        bot.LoadConfig,
		Bootstrap:         bot.Bootstrap,
	})
	if err != nil {
		log.Fatalf("exchange-bot: %v", err)
	}
}
