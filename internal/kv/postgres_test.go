package kv

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresWithMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLStore(db, DialectPostgres), mock, db
}

func TestRebind(t *testing.T) {
	pg := &SQLStore{dialect: DialectPostgres}
	lite := &SQLStore{dialect: DialectSQLite}

	q := `INSERT INTO kv (key, value) VALUES (?, ?)`
	assert.Equal(t, `INSERT INTO kv (key, value) VALUES ($1, $2)`, pg.rebind(q))
	assert.Equal(t, q, lite.rebind(q))
}

func TestPostgres_Get(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`^` + regexp.QuoteMeta(`SELECT value FROM kv WHERE key = $1`) + `$`).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	v, err := r.Get(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Get_NoRows(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT value FROM kv WHERE key = \$1`).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestPostgres_Set_Upsert(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	q := `(?s)INSERT\s+INTO\s+kv\s*\(key,\s*value\)\s*VALUES\s*\(\$1,\s*\$2\)\s*ON\s+CONFLICT\s*\(key\)\s*DO\s+UPDATE\s+SET\s+value\s*=\s*excluded\.value`
	mock.ExpectExec(q).
		WithArgs("authMode", []byte("signup")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.Set(context.Background(), "authMode", []byte("signup")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Set_DBError(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectExec(`INSERT\s+INTO\s+kv`).WillReturnError(errors.New("db down"))

	err := r.Set(context.Background(), "k", []byte("v"))
	require.ErrorContains(t, err, "failed to set kv[k]: db down")
}

func TestPostgres_DeleteMany_InTransaction(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM kv WHERE key = \$1`).WithArgs("currentUserId").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv WHERE key = \$1`).WithArgs("displayName").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, r.Delete(context.Background(), "currentUserId", "displayName"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteMany_RollsBackOnError(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM kv WHERE key = \$1`).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM kv WHERE key = \$1`).WithArgs("b").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := r.Delete(context.Background(), "a", "b")
	require.ErrorContains(t, err, "failed to delete kv[b]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_List(t *testing.T) {
	r, mock, _ := newPostgresWithMock(t)

	mock.ExpectQuery(`SELECT key, value FROM kv`).
		WillReturnRows(sqlmock.NewRows([]string{"key", "value"}).
			AddRow("users", []byte(`[]`)).
			AddRow("authMode", []byte("login")))

	m, err := r.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"users": []byte(`[]`), "authMode": []byte("login")}, m)
}
