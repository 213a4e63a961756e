package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func userColumns() []string {
	return []string{
		"id", "tg_id", "username", "first_name", "last_name",
		"language", "is_admin", "is_banned", "agreed_terms",
		"created_at", "updated_at",
	}
}

func TestUsersGetOrCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	now := time.Now()
	username := "ivan99"
	first := "Ivan"

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users (tg_id, username, first_name, last_name)`)).
		WithArgs(int64(777), username, first, nil).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, 777, username, first, nil, "ru", false, false, false, now, now))

	u, err := repo.GetOrCreate(context.Background(), 777, Profile{Username: &username, FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, int64(777), u.TelegramID)
	assert.Equal(t, "ru", u.Language)
	assert.False(t, u.AgreedTerms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersByTelegramIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users WHERE tg_id = $1`)).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.ByTelegramID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUsersAgreeTerms(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET agreed_terms = $1, updated_at = NOW() WHERE tg_id = $2`)).
		WithArgs(true, int64(777)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.AgreeTerms(context.Background(), 777))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM users ORDER BY created_at`)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(1, 777, "ivan99", "Ivan", nil, "ru", false, false, true, now, now).
			AddRow(2, 888, nil, nil, nil, "en", true, false, true, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, int64(777), users[0].TelegramID)
	assert.True(t, users[1].IsAdmin)
}

func TestUsersSetAdmin(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_admin = $1, updated_at = NOW() WHERE tg_id = $2`)).
		WithArgs(true, int64(888)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetAdmin(context.Background(), 888, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersDelete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE tg_id = $1`)).
		WithArgs(int64(777)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE tg_id = $1`)).
		WithArgs(int64(777)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 777))
	assert.ErrorIs(t, repo.Delete(context.Background(), 777), ErrNotFound)
}

func TestUsersSetFlagUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUsers(db)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_banned = $1, updated_at = NOW() WHERE tg_id = $2`)).
		WithArgs(true, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetBanned(context.Background(), 404, true), ErrNotFound)
}
