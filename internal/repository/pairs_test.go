package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairsCreateMissingIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPairs(db)

	insert := regexp.QuoteMeta(`INSERT INTO currency_pairs (from_currency_id, to_currency_id, rate, is_active)`)

	// First run fills the gaps, second run finds nothing to do.
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.CreateMissing(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), created)

	created, err = repo.CreateMissing(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPairsActivateUnknownPair(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPairs(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE currency_pairs p`)).
		WithArgs("kzt", "xyz", 0.5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Activate(context.Background(), "kzt", "xyz", 0.5), ErrNotFound)
}

func TestPairsSetRate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPairs(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE currency_pairs p`)).
		WithArgs("kzt", "rub", 0.25).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetRate(context.Background(), "kzt", "rub", 0.25))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPairsListActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPairs(db)

	rows := sqlmock.NewRows([]string{"id", "from_symbol", "from_name", "to_symbol", "to_name", "rate"}).
		AddRow(1, "kzt", "🇰🇿 KZT", "rub", "🇷🇺 RUB", 0.240).
		AddRow(2, "rub", "🇷🇺 RUB", "kzt", "🇰🇿 KZT", 4.167)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT p.id,`)).WillReturnRows(rows)

	pairs, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "kzt", pairs[0].FromSymbol)
	assert.Equal(t, 0.240, pairs[0].Rate)
	assert.Equal(t, "🇰🇿 KZT", pairs[1].ToName)
}
