package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuelxng/exchange-bot/internal/models"
)

func configColumns() []string {
	return []string{"id", "unique_name", "value", "type", "format_hint", "description", "description_en"}
}

func TestAppConfigsGetDecodes(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppConfigs(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM app_config WHERE unique_name = $1`)).
		WithArgs("max_order_amount").
		WillReturnRows(sqlmock.NewRows(configColumns()).
			AddRow(1, "max_order_amount", "5000", "int", nil, nil, nil))

	v, err := repo.Get(context.Background(), "max_order_amount")
	require.NoError(t, err)
	assert.Equal(t, models.ConfigInt, v.Type)
	assert.Equal(t, int64(5000), v.Int)
}

func TestAppConfigsGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppConfigs(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM app_config WHERE unique_name = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(configColumns()))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppConfigsSetUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppConfigs(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO app_config (unique_name, value, type, format_hint)`)).
		WithArgs("work_start", "09:00", "time", "15:04").
		WillReturnResult(sqlmock.NewResult(0, 1))

	hint := "15:04"
	err := repo.Set(context.Background(), "work_start", "09:00", models.ConfigTime, &hint)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
