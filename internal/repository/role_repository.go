package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stagedoor/theater-api/internal/model"
)

// RoleRepo encapsulates queries against the `roles` and `user_roles`
// tables. Role names come from a fixed vocabulary and rows are never
// renamed or deleted once seeded.
type RoleRepo struct{ DB *sql.DB }

func NewRoleRepo(db *sql.DB) *RoleRepo { return &RoleRepo{DB: db} }

// GetByName fetches a role by its exact name. ErrRoleNotFound is
// returned when the name is outside the seeded vocabulary.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (model.Role, error) {
	var role model.Role
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name FROM roles WHERE name=? LIMIT 1",
		name).Scan(&role.ID, &role.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Role{}, ErrRoleNotFound
	}
	return role, err
}

// Exists reports whether a role with the given name is present.
func (r *RoleRepo) Exists(ctx context.Context, name string) (bool, error) {
	_, err := r.GetByName(ctx, name)
	if errors.Is(err, ErrRoleNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ensure creates the role iff it does not already exist. Safe to call
// repeatedly; the seed procedure relies on that.
func (r *RoleRepo) Ensure(ctx context.Context, name string) error {
	ok, err := r.Exists(ctx, name)
	if err != nil || ok {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "INSERT INTO roles (name) VALUES (?)", name)
	if isDuplicateErr(err) {
		// Lost a race with a concurrent seed run; the role is there.
		return nil
	}
	return err
}

// Assign grants a role to a user. INSERT IGNORE makes the assignment
// idempotent: assigning twice is a no-op.
func (r *RoleRepo) Assign(ctx context.Context, userID uint64, roleName string) error {
	role, err := r.GetByName(ctx, roleName)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_roles (user_id, role_id) VALUES (?,?)",
		userID, role.ID)
	return err
}

// ListForUser returns the role names held by a user, ordered by role id.
func (r *RoleRepo) ListForUser(ctx context.Context, userID uint64) ([]string, error) {
	const q = `SELECT r.name FROM roles r
	           JOIN user_roles ur ON ur.role_id = r.id
	           WHERE ur.user_id = ? ORDER BY r.id`
	rows, err := r.DB.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
