package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/internal/models"
)

// Currencies stores the currency catalog.
type Currencies struct {
	db *sqlx.DB
}

func NewCurrencies(db *sqlx.DB) *Currencies {
	return &Currencies{db: db}
}

// Upsert inserts the currency or refreshes its name and rate. Returns the
// stored row.
func (r *Currencies) Upsert(ctx context.Context, symbol, name string, rate float64) (models.Currency, error) {
	const query = `
		INSERT INTO currencies (symbol, name, rate)
		VALUES ($1, $2, $3)
		ON CONFLICT (symbol) DO UPDATE
		SET name = EXCLUDED.name
		RETURNING *`

	var c models.Currency
	if err := r.db.GetContext(ctx, &c, query, symbol, name, rate); err != nil {
		return models.Currency{}, fmt.Errorf("upsert currency %s: %w", symbol, err)
	}
	return c, nil
}

// BySymbol looks a currency up by its short symbol.
func (r *Currencies) BySymbol(ctx context.Context, symbol string) (models.Currency, error) {
	const query = `SELECT * FROM currencies WHERE symbol = $1`

	var c models.Currency
	if err := r.db.GetContext(ctx, &c, query, symbol); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Currency{}, ErrNotFound
		}
		return models.Currency{}, fmt.Errorf("currency %s: %w", symbol, err)
	}
	return c, nil
}

// ListActive returns active currencies in catalog order.
func (r *Currencies) ListActive(ctx context.Context) ([]models.Currency, error) {
	const query = `SELECT * FROM currencies WHERE is_active ORDER BY id`

	var out []models.Currency
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list currencies: %w", err)
	}
	return out, nil
}
