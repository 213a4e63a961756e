package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/xuelxng/exchange-bot/core/logger"
	"github.com/xuelxng/exchange-bot/internal/models"
)

// Users stores Telegram accounts.
type Users struct {
	db *sqlx.DB
}

func NewUsers(db *sqlx.DB) *Users {
	return &Users{db: db}
}

// Profile carries the mutable fields refreshed from each Telegram update.
type Profile struct {
	Username  *string
	FirstName *string
	LastName  *string
}

// GetOrCreate returns the user for tgID, inserting a fresh row on first
// contact. Profile fields are refreshed on every call so renames propagate.
func (r *Users) GetOrCreate(ctx context.Context, tgID int64, p Profile) (models.User, error) {
	const query = `
		INSERT INTO users (tg_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tg_id) DO UPDATE
		SET username   = EXCLUDED.username,
		    first_name = EXCLUDED.first_name,
		    last_name  = EXCLUDED.last_name,
		    updated_at = NOW()
		RETURNING *`

	var u models.User
	if err := r.db.GetContext(ctx, &u, query, tgID, p.Username, p.FirstName, p.LastName); err != nil {
		return models.User{}, fmt.Errorf("get or create user %d: %w", tgID, err)
	}
	logger.SVCUsers.LogAttrs(ctx, slog.LevelDebug, "user upserted",
		slog.String("event", "user.upsert"),
		slog.Int64("user_id", tgID))
	return u, nil
}

// ByTelegramID looks a user up by the external Telegram id.
func (r *Users) ByTelegramID(ctx context.Context, tgID int64) (models.User, error) {
	const query = `SELECT * FROM users WHERE tg_id = $1`

	var u models.User
	if err := r.db.GetContext(ctx, &u, query, tgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, fmt.Errorf("user by tg_id %d: %w", tgID, err)
	}
	return u, nil
}

// List returns all users ordered by creation time.
func (r *Users) List(ctx context.Context) ([]models.User, error) {
	const query = `SELECT * FROM users ORDER BY created_at`

	var users []models.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// SetLanguage persists the user's interface language.
func (r *Users) SetLanguage(ctx context.Context, tgID int64, lang string) error {
	return r.setFlag(ctx, tgID, "language", lang)
}

// AgreeTerms marks the terms-of-service gate as passed.
func (r *Users) AgreeTerms(ctx context.Context, tgID int64) error {
	return r.setFlag(ctx, tgID, "agreed_terms", true)
}

// SetBanned toggles the ban flag. Banned users' updates are dropped at the
// middleware level.
func (r *Users) SetBanned(ctx context.Context, tgID int64, banned bool) error {
	return r.setFlag(ctx, tgID, "is_banned", banned)
}

// SetAdmin toggles the admin flag.
func (r *Users) SetAdmin(ctx context.Context, tgID int64, admin bool) error {
	return r.setFlag(ctx, tgID, "is_admin", admin)
}

// Delete removes the user record entirely.
func (r *Users) Delete(ctx context.Context, tgID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE tg_id = $1`, tgID)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", tgID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Users) setFlag(ctx context.Context, tgID int64, column string, value any) error {
	// column is always one of our own literals, never user input.
	query := fmt.Sprintf(`UPDATE users SET %s = $1, updated_at = NOW() WHERE tg_id = $2`, column)
	res, err := r.db.ExecContext(ctx, query, value, tgID)
	if err != nil {
		return fmt.Errorf("update user %d %s: %w", tgID, column, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
