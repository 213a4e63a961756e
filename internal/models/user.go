package models

import (
	"strings"
	"time"
)

// User is a Telegram account known to the bot. TelegramID is the stable
// external identity; ID is the local surrogate key.
type User struct {
	ID          int64     `db:"id"`
	TelegramID  int64     `db:"tg_id"`
	Username    *string   `db:"username"`
	FirstName   *string   `db:"first_name"`
	LastName    *string   `db:"last_name"`
	Language    string    `db:"language"`
	IsAdmin     bool      `db:"is_admin"`
	IsBanned    bool      `db:"is_banned"`
	AgreedTerms bool      `db:"agreed_terms"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// DisplayName picks the best human-readable name we have for the user.
// Returns "" when the profile carries no name at all; callers substitute
// their own generic label.
func (u User) DisplayName() string {
	var parts []string
	if u.FirstName != nil && *u.FirstName != "" {
		parts = append(parts, *u.FirstName)
	}
	if u.LastName != nil && *u.LastName != "" {
		parts = append(parts, *u.LastName)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}
	if u.Username != nil && *u.Username != "" {
		return *u.Username
	}
	return ""
}
