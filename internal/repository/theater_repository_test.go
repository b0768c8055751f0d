package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagedoor/theater-api/internal/model"
)

func TestTheaterDelete(t *testing.T) {
	const q = "DELETE FROM theaters WHERE id = ?"

	testCases := []struct {
		name         string
		rowsAffected int64
		wantErr      error
	}{
		{name: "existing row deleted", rowsAffected: 1, wantErr: nil},
		// A delete that matches no row must surface as not-found,
		// never as a silent success.
		{name: "missing row is not-found", rowsAffected: 0, wantErr: ErrTheaterNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta(q)).
				WithArgs(uint64(42)).
				WillReturnResult(sqlmock.NewResult(0, tc.rowsAffected))

			repo := NewTheaterRepo(db)
			err = repo.Delete(context.Background(), 42)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTheaterGetByIDMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM theaters WHERE id =").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "address", "seat_count", "manager_id", "created_at", "updated_at",
		}))

	repo := NewTheaterRepo(db)
	_, err = repo.GetByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrTheaterNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTheaterUpdateMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE theaters").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Zero affected rows triggers the follow-up existence check, which
	// finds no row either.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM theaters WHERE id = ?")).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	repo := NewTheaterRepo(db)
	err = repo.Update(context.Background(), &model.Theater{
		ID: 7, Name: "Riverside Stage", Address: "1 Dock St", SeatCount: 120,
	})
	assert.ErrorIs(t, err, ErrTheaterNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
