package store

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore wraps a sqlmock connection so driver failures can be simulated
// without touching a real database file.
func mockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &SQLiteStore{db: db}, mock
}

func TestGetUser_QueryError(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectQuery("SELECT id, email").WillReturnError(errors.New("disk I/O error"))

	_, err := s.GetUser("some-id")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound, "driver failures must not read as absence")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_ExecError(t *testing.T) {
	s, mock := mockStore(t)
	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("database is locked"))

	err := s.CreateUser(&User{Email: "a@b.com", Name: "A", PasswordHash: "h"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClosedStore(t *testing.T) {
	s := &SQLiteStore{}

	_, err := s.GetProject("x")
	assert.Error(t, err)
	_, err = s.ListUsers()
	assert.Error(t, err)
	assert.Error(t, s.DeleteProject("x"))
}
