package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/rental-admin/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var directoryColumns = func(pk string) []string {
	return []string{pk, "first_name", "last_name", "active", "last_update"}
}

func TestNameFilterClause(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantCond string
		wantArgs []any
	}{
		{"empty", "", "1=1", nil},
		{"whitespace kept", " ", "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", []any{"% %", "% %"}},
		{"padding kept", "  mary ", "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", []any{"%  mary %", "%  mary %"}},
		{"lowercased", "MaRy", "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", []any{"%mary%", "%mary%"}},
		{"wildcards escaped", `50%_a\b`, "(LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", []any{`%50\%\_a\\b%`, `%50\%\_a\\b%`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewNameFilter(tt.raw)
			cond, args := f.Clause()
			assert.Equal(t, tt.wantCond, cond)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestUserRepoList(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	newer := time.Date(2006, 2, 15, 9, 57, 20, 0, time.UTC)
	older := time.Date(2006, 2, 14, 22, 4, 36, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT customer_id, first_name, last_name, active, last_update FROM customer WHERE active = ? AND (LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?) ORDER BY last_update DESC, customer_id ASC")).
		WithArgs(true, "%mar%", "%mar%").
		WillReturnRows(sqlmock.NewRows(directoryColumns("customer_id")).
			AddRow(int64(1), "MARY", "SMITH", int64(1), newer).
			AddRow(int64(7), "MARIA", "MILLER", int64(1), older))

	got, err := repo.List(context.Background(), model.KindCustomer, true, NewNameFilter("Mar"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.DirectoryUser{ID: 1, Type: model.KindCustomer, FirstName: "MARY", LastName: "SMITH", Active: true, LastUpdate: newer}, got[0])
	assert.Equal(t, uint64(7), got[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoListStaffEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM staff WHERE active = ? AND 1=1 ORDER BY last_update DESC, staff_id ASC")).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(directoryColumns("staff_id")))

	got, err := repo.List(context.Background(), model.KindStaff, false, NameFilter{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoListError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	boom := errors.New("connection refused")
	mock.ExpectQuery("FROM customer").WillReturnError(boom)

	_, err := repo.List(context.Background(), model.KindCustomer, true, NameFilter{})
	assert.ErrorIs(t, err, boom)
}

func TestUserRepoGet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)
	ts := time.Date(2006, 2, 15, 4, 57, 16, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM staff WHERE staff_id = ? LIMIT 1")).
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows(directoryColumns("staff_id")).AddRow(int64(2), "Jon", "Stephens", int64(1), ts))

	u, err := repo.Get(context.Background(), model.KindStaff, 2)
	require.NoError(t, err)
	assert.Equal(t, model.KindStaff, u.Type)
	assert.Equal(t, "Jon", u.FirstName)
	assert.True(t, u.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM customer WHERE customer_id = ? LIMIT 1")).
		WithArgs(uint64(999)).
		WillReturnRows(sqlmock.NewRows(directoryColumns("customer_id")))

	_, err := repo.Get(context.Background(), model.KindCustomer, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepoSetActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE customer SET active = ?, last_update = CURRENT_TIMESTAMP WHERE customer_id = ?")).
		WithArgs(false, uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetActive(context.Background(), model.KindCustomer, 1, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepoSetActiveNoRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE staff SET active = ?")).
		WithArgs(true, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetActive(context.Background(), model.KindStaff, 5, true), ErrNotFound)
}
