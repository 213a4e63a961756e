package models

// PaymentCategory is a localized payment-order category. The same
// UniqueName appears once per language; menus filter by the user's
// language.
type PaymentCategory struct {
	ID         int64  `db:"id"`
	UniqueName string `db:"unique_name"`
	Name       string `db:"name"`
	Language   string `db:"language"`
	IsActive   bool   `db:"is_active"`
}

// TextItem is a single localized text override stored by operators.
// Built-in defaults cover keys that have no stored row.
type TextItem struct {
	ID           int64  `db:"id"`
	UniqueName   string `db:"unique_name"`
	LanguageCode string `db:"language_code"`
	Content      string `db:"content"`
}
