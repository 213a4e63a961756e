package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/internal/models"
)

// AppConfigs stores typed application settings. Raw rows are decoded into
// models.ConfigValue before they leave this package.
type AppConfigs struct {
	db *sqlx.DB
}

func NewAppConfigs(db *sqlx.DB) *AppConfigs {
	return &AppConfigs{db: db}
}

// Get returns the decoded value for the key.
func (r *AppConfigs) Get(ctx context.Context, uniqueName string) (models.ConfigValue, error) {
	const query = `SELECT * FROM app_config WHERE unique_name = $1`

	var row models.AppConfig
	if err := r.db.GetContext(ctx, &row, query, uniqueName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ConfigValue{}, ErrNotFound
		}
		return models.ConfigValue{}, fmt.Errorf("config %s: %w", uniqueName, err)
	}
	return row.Decode()
}

// Set stores the raw value and its declared type, replacing any previous
// value for the key.
func (r *AppConfigs) Set(ctx context.Context, uniqueName, value string, typ models.ConfigType, formatHint *string) error {
	const query = `
		INSERT INTO app_config (unique_name, value, type, format_hint)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (unique_name) DO UPDATE
		SET value = EXCLUDED.value,
		    type = EXCLUDED.type,
		    format_hint = EXCLUDED.format_hint`

	if _, err := r.db.ExecContext(ctx, query, uniqueName, value, string(typ), formatHint); err != nil {
		return fmt.Errorf("set config %s: %w", uniqueName, err)
	}
	return nil
}
