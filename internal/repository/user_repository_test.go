package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserCreateDuplicateUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The driver reports unique-index violations as error 1062; the
	// repository maps that onto the conflict taxonomy.
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (username, password_hash) VALUES (?,?)")).
		WithArgs("bob", sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'bob' for key 'users.username'"))

	repo := NewUserRepo(db)
	_, err = repo.Create(context.Background(), "  Bob ", "Password123!", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrUsernameExists)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateReturnsID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (username, password_hash) VALUES (?,?)")).
		WithArgs("sue", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(17, 1))

	repo := NewUserRepo(db)
	id, err := repo.Create(context.Background(), "sue", "Password123!", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserUpdatePasswordMissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=? WHERE id=?")).
		WithArgs(sqlmock.AnyArg(), uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepo(db)
	err = repo.UpdatePassword(context.Background(), 99, "NewPassword123!", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
