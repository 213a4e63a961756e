package models

// Currency is a tradable currency with a base rate used as the default
// when a directed pair has no explicit rate yet.
type Currency struct {
	ID       int64   `db:"id"`
	Symbol   string  `db:"symbol"`
	Name     string  `db:"name"`
	Rate     float64 `db:"rate"`
	IsActive bool    `db:"is_active"`
}

// CurrencyPair is a directed exchange between two currencies. Pairs are
// pre-created for every ordered combination and start inactive; activating
// one publishes it on the rates screen.
type CurrencyPair struct {
	ID             int64   `db:"id"`
	FromCurrencyID int64   `db:"from_currency_id"`
	ToCurrencyID   int64   `db:"to_currency_id"`
	Rate           float64 `db:"rate"`
	IsActive       bool    `db:"is_active"`
}

// CurrencyPairView is a pair joined with both currency names, shaped for
// presentation.
type CurrencyPairView struct {
	ID         int64   `db:"id"`
	FromSymbol string  `db:"from_symbol"`
	FromName   string  `db:"from_name"`
	ToSymbol   string  `db:"to_symbol"`
	ToName     string  `db:"to_name"`
	Rate       float64 `db:"rate"`
}
