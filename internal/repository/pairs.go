package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/core/logger"
	"github.com/xuelxng/exchange-bot/internal/models"
)

// Pairs stores directed currency pairs.
type Pairs struct {
	db *sqlx.DB
}

func NewPairs(db *sqlx.DB) *Pairs {
	return &Pairs{db: db}
}

// CreateMissing inserts an inactive pair for every ordered currency
// combination that does not exist yet. New pairs inherit the source
// currency's base rate. Safe to run on every startup.
func (r *Pairs) CreateMissing(ctx context.Context) (int64, error) {
	const query = `
		INSERT INTO currency_pairs (from_currency_id, to_currency_id, rate, is_active)
		SELECT f.id, t.id, f.rate, FALSE
		FROM currencies f
		CROSS JOIN currencies t
		WHERE f.id <> t.id
		ON CONFLICT (from_currency_id, to_currency_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("create missing pairs: %w", err)
	}
	created, _ := res.RowsAffected()
	if created > 0 {
		logger.SVCCatalog.LogAttrs(ctx, slog.LevelInfo, "pairs created",
			slog.String("event", "pairs.create_missing"),
			slog.Int64("created", created))
	}
	return created, nil
}

// Activate enables the directed pair between two symbols and sets its rate.
func (r *Pairs) Activate(ctx context.Context, fromSymbol, toSymbol string, rate float64) error {
	const query = `
		UPDATE currency_pairs p
		SET rate = $3, is_active = TRUE
		FROM currencies f, currencies t
		WHERE p.from_currency_id = f.id AND p.to_currency_id = t.id
		  AND f.symbol = $1 AND t.symbol = $2`

	res, err := r.db.ExecContext(ctx, query, fromSymbol, toSymbol, rate)
	if err != nil {
		return fmt.Errorf("activate pair %s->%s: %w", fromSymbol, toSymbol, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRate updates an existing pair's rate without touching its active flag.
func (r *Pairs) SetRate(ctx context.Context, fromSymbol, toSymbol string, rate float64) error {
	const query = `
		UPDATE currency_pairs p
		SET rate = $3
		FROM currencies f, currencies t
		WHERE p.from_currency_id = f.id AND p.to_currency_id = t.id
		  AND f.symbol = $1 AND t.symbol = $2`

	res, err := r.db.ExecContext(ctx, query, fromSymbol, toSymbol, rate)
	if err != nil {
		return fmt.Errorf("set pair rate %s->%s: %w", fromSymbol, toSymbol, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns the published pairs joined with currency names, in a
// stable order for the rates screen.
func (r *Pairs) ListActive(ctx context.Context) ([]models.CurrencyPairView, error) {
	const query = `
		SELECT p.id,
		       f.symbol AS from_symbol, f.name AS from_name,
		       t.symbol AS to_symbol,   t.name AS to_name,
		       p.rate
		FROM currency_pairs p
		JOIN currencies f ON f.id = p.from_currency_id
		JOIN currencies t ON t.id = p.to_currency_id
		WHERE p.is_active
		ORDER BY f.symbol, t.symbol`

	var out []models.CurrencyPairView
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("list active pairs: %w", err)
	}
	return out, nil
}
