// This file defines repository methods for CRUD operations over theaters.
// A Theater is the central entity of the API: a venue with a name, an
// address, a seat count and an optional manager reference. The manager
// column is a weak reference to users.id; the schema declares it with
// ON DELETE SET NULL so removing a manager never removes the venue.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stagedoor/theater-api/internal/model"
)

// TheaterRepo encapsulates all database queries related to theaters.
// It depends on a sql.DB connection which should be configured elsewhere.
type TheaterRepo struct {
	db *sql.DB
}

// NewTheaterRepo constructs a TheaterRepo with the provided DB handle.
// This allows dependency injection of the database in tests and at
// startup. There is no initialization logic beyond assigning the field.
func NewTheaterRepo(db *sql.DB) *TheaterRepo {
	return &TheaterRepo{db: db}
}

// Create inserts a new theater. On success the theater's ID field is
// populated with the auto-generated value and a follow-up SELECT fills
// the timestamp columns so callers receive a fully populated record.
func (r *TheaterRepo) Create(ctx context.Context, t *model.Theater) error {
	const qInsert = "INSERT INTO theaters (name, address, seat_count, manager_id) VALUES (?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, t.Name, t.Address, t.SeatCount, t.ManagerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)

	const qSelect = "SELECT created_at, updated_at FROM theaters WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID fetches a theater by its ID. It returns ErrTheaterNotFound
// if no row is found.
func (r *TheaterRepo) GetByID(ctx context.Context, id uint64) (*model.Theater, error) {
	const q = "SELECT id, name, address, seat_count, manager_id, created_at, updated_at FROM theaters WHERE id = ?"
	var t model.Theater
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&t.ID, &t.Name, &t.Address, &t.SeatCount, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTheaterNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListAll returns every theater ordered by id. It backs the public
// browse endpoint, so no ownership filter applies.
func (r *TheaterRepo) ListAll(ctx context.Context) ([]*model.Theater, error) {
	const q = `SELECT id, name, address, seat_count, manager_id, created_at, updated_at
	           FROM theaters ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Theater
	for rows.Next() {
		t := new(model.Theater)
		if err := rows.Scan(&t.ID, &t.Name, &t.Address, &t.SeatCount, &t.ManagerID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of theater rows. The seed procedure uses it
// to decide whether the sample theaters should be inserted.
func (r *TheaterRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM theaters").Scan(&n)
	return n, err
}

// Update overwrites all mutable fields of a theater: name, address,
// seat count and the manager reference. There are no partial updates;
// every call supplies the full record. ErrTheaterNotFound is returned
// when no row is affected.
func (r *TheaterRepo) Update(ctx context.Context, t *model.Theater) error {
	const q = `UPDATE theaters
	           SET name = ?, address = ?, seat_count = ?, manager_id = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Address, t.SeatCount, t.ManagerID, t.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "row absent" from "row unchanged": an UPDATE that
		// writes identical values also reports zero affected rows.
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM theaters WHERE id = ?", t.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrTheaterNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a theater by id. ErrTheaterNotFound is returned when
// the id does not exist, never a silent success.
func (r *TheaterRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM theaters WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTheaterNotFound
	}
	return nil
}
