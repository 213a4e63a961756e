package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/internal/models"
)

// Texts stores operator overrides for localized texts.
type Texts struct {
	db *sqlx.DB
}

func NewTexts(db *sqlx.DB) *Texts {
	return &Texts{db: db}
}

// Set inserts or replaces the override for (uniqueName, language).
func (r *Texts) Set(ctx context.Context, uniqueName, language, content string) error {
	const query = `
		INSERT INTO text_items (unique_name, language_code, content)
		VALUES ($1, $2, $3)
		ON CONFLICT (unique_name, language_code) DO UPDATE
		SET content = EXCLUDED.content`

	if _, err := r.db.ExecContext(ctx, query, uniqueName, language, content); err != nil {
		return fmt.Errorf("set text %s/%s: %w", uniqueName, language, err)
	}
	return nil
}

// ResolveSet fetches all stored overrides for the given keys in one
// language. Keys without an override are simply absent from the result.
func (r *Texts) ResolveSet(ctx context.Context, keys []string, language string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}
	query, args, err := sqlx.In(`
		SELECT unique_name, language_code, content
		FROM text_items
		WHERE unique_name IN (?) AND language_code = ?`, keys, language)
	if err != nil {
		return nil, fmt.Errorf("build text query: %w", err)
	}

	var rows []models.TextItem
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("resolve texts %s: %w", language, err)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.UniqueName] = row.Content
	}
	return out, nil
}
