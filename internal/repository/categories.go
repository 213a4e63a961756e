package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/internal/models"
)

// Categories stores localized payment-order categories.
type Categories struct {
	db *sqlx.DB
}

func NewCategories(db *sqlx.DB) *Categories {
	return &Categories{db: db}
}

// Upsert inserts or refreshes the localized name for (uniqueName, language).
func (r *Categories) Upsert(ctx context.Context, uniqueName, name, language string) error {
	const query = `
		INSERT INTO payment_categories (unique_name, name, language)
		VALUES ($1, $2, $3)
		ON CONFLICT (unique_name, language) DO UPDATE
		SET name = EXCLUDED.name`

	if _, err := r.db.ExecContext(ctx, query, uniqueName, name, language); err != nil {
		return fmt.Errorf("upsert category %s/%s: %w", uniqueName, language, err)
	}
	return nil
}

// ListActive returns active categories for one language, in catalog order.
func (r *Categories) ListActive(ctx context.Context, language string) ([]models.PaymentCategory, error) {
	const query = `
		SELECT * FROM payment_categories
		WHERE is_active AND language = $1
		ORDER BY id`

	var out []models.PaymentCategory
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list categories %s: %w", language, err)
	}
	return out, nil
}

// Get resolves a category by key and language.
func (r *Categories) Get(ctx context.Context, uniqueName, language string) (models.PaymentCategory, error) {
	const query = `
		SELECT * FROM payment_categories
		WHERE unique_name = $1 AND language = $2`

	var c models.PaymentCategory
	if err := r.db.GetContext(ctx, &c, query, uniqueName, language); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PaymentCategory{}, ErrNotFound
		}
		return models.PaymentCategory{}, fmt.Errorf("category %s/%s: %w", uniqueName, language, err)
	}
	return c, nil
}
