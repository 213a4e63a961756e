package texts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuelxng/exchange-bot/core/logger"
)

const fallbackLanguage = "en"

// Store is the slice of the record store the resolver needs.
type Store interface {
	ResolveSet(ctx context.Context, keys []string, language string) (map[string]string, error)
}

// Resolver resolves symbolic text keys to localized strings. Lookup order
// for each key: stored override, builtin catalog in the requested
// language, builtin English, then a placeholder naming the key. The
// resolver never fails a caller over a missing key.
type Resolver struct {
	store Store
}

func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns a value for every requested key.
func (r *Resolver) Resolve(ctx context.Context, keys []string, language string) map[string]string {
	out := make(map[string]string, len(keys))

	if r.store != nil {
		stored, err := r.store.ResolveSet(ctx, keys, language)
		if err == nil {
			for k, v := range stored {
				out[k] = v
			}
		} else {
			// Builtins still serve the request.
			logger.SVCTexts.LogAttrs(ctx, slog.LevelWarn, "text store unavailable",
				slog.String("event", "texts.store_error"),
				slog.String("err", err.Error()))
		}
	}

	for _, key := range keys {
		if _, ok := out[key]; ok {
			continue
		}
		out[key] = builtinOrPlaceholder(key, language)
	}
	return out
}

func builtinOrPlaceholder(key, language string) string {
	if entry := builtin[key]; entry != nil {
		if v, ok := entry[language]; ok {
			return v
		}
		if v, ok := entry[fallbackLanguage]; ok {
			return v
		}
	}
	if language == "ru" {
		return fmt.Sprintf("Нужно добавить текст в базу данных для '%s'.", key)
	}
	return fmt.Sprintf("Text needs to be added to the database for '%s'.", key)
}

// Fill substitutes {name} placeholders in a template. Unknown placeholders
// are left as-is so a broken override is visible rather than silently
// truncated.
func Fill(template string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
