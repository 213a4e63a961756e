package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/core/logger"
	"github.com/xuelxng/exchange-bot/internal/repository"
	"github.com/xuelxng/exchange-bot/internal/texts"
)

type defaultCurrency struct {
	symbol string
	name   string
	rate   float64
}

type defaultPair struct {
	from string
	to   string
	rate float64
}

var defaultCurrencies = []defaultCurrency{
	{symbol: "kzt", name: "🇰🇿 KZT", rate: 1.0},
	{symbol: "rub", name: "🇷🇺 RUB", rate: 1.0},
}

// 1 KZT = 0.240 RUB, 1 RUB = 4.167 KZT.
var defaultPairs = []defaultPair{
	{from: "kzt", to: "rub", rate: 0.240},
	{from: "rub", to: "kzt", rate: 4.167},
}

var defaultCategories = map[string]map[string]string{
	"goods":         {"en": "Goods", "ru": "Товары"},
	"digital_goods": {"en": "Digital Goods", "ru": "Цифровые товары"},
	"bookings":      {"en": "Bookings", "ru": "Бронирование"},
}

// Run populates reference data: the default currencies, an inactive pair
// for every ordered currency combination, the two activated default pairs,
// payment categories, and the builtin text catalog. Every step is
// idempotent; running at each startup leaves existing data untouched.
func Run(ctx context.Context, db *sqlx.DB) error {
	start := time.Now()

	currencies := repository.NewCurrencies(db)
	pairs := repository.NewPairs(db)
	categories := repository.NewCategories(db)
	textStore := repository.NewTexts(db)

	for _, c := range defaultCurrencies {
		if _, err := currencies.Upsert(ctx, c.symbol, c.name, c.rate); err != nil {
			return fmt.Errorf("seed currency %s: %w", c.symbol, err)
		}
	}

	created, err := pairs.CreateMissing(ctx)
	if err != nil {
		return fmt.Errorf("seed pairs: %w", err)
	}

	for _, p := range defaultPairs {
		// First run only: later rate edits are operator data, not ours
		// to overwrite.
		if created == 0 {
			continue
		}
		if err := pairs.Activate(ctx, p.from, p.to, p.rate); err != nil {
			return fmt.Errorf("seed pair %s->%s: %w", p.from, p.to, err)
		}
	}

	for uniqueName, translations := range defaultCategories {
		for lang, name := range translations {
			if err := categories.Upsert(ctx, uniqueName, name, lang); err != nil {
				return fmt.Errorf("seed category %s/%s: %w", uniqueName, lang, err)
			}
		}
	}

	seededTexts, err := seedTexts(ctx, textStore)
	if err != nil {
		return err
	}

	logger.SEED.LogAttrs(ctx, slog.LevelInfo, "seed complete",
		slog.String("event", "seed.done"),
		slog.Int64("pairs_created", created),
		slog.Int("texts_seeded", seededTexts),
		slog.Duration("duration", logger.Took(start)))
	return nil
}

// seedTexts writes builtin texts that have no stored row yet. Existing
// rows are operator overrides and are left alone.
func seedTexts(ctx context.Context, store *repository.Texts) (int, error) {
	keys := texts.BuiltinKeys()
	seeded := 0
	for _, lang := range []string{"en", "ru"} {
		stored, err := store.ResolveSet(ctx, keys, lang)
		if err != nil {
			return 0, fmt.Errorf("seed texts %s: %w", lang, err)
		}
		for _, key := range keys {
			if _, ok := stored[key]; ok {
				continue
			}
			entry := texts.BuiltinEntry(key)
			content, ok := entry[lang]
			if !ok {
				continue
			}
			if err := store.Set(ctx, key, lang, content); err != nil {
				return 0, fmt.Errorf("seed text %s/%s: %w", key, lang, err)
			}
			seeded++
		}
	}
	return seeded, nil
}
