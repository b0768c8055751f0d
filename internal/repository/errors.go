// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrUsernameExists indicates a uniqueness conflict that
// handlers translate into a duplicate-username response.
package repository

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict classifies failures caused by conflicting state, such as
// uniqueness violations. Specific conflict errors wrap it so handlers
// can match on the class with errors.Is without enumerating every
// concrete sentinel.
var ErrConflict = errors.New("conflict")

// ErrUsernameExists is returned by UserRepo.Create when the username
// is already taken (unique index violation).
var ErrUsernameExists = fmt.Errorf("username already exists: %w", ErrConflict)

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrRoleNotFound is returned when a role name is outside the seeded
// vocabulary or a role lookup matches no row.
var ErrRoleNotFound = errors.New("role not found")

// ErrTheaterNotFound is returned when a theater lookup matches no row.
var ErrTheaterNotFound = errors.New("theater not found")

// ErrSessionNotFound is returned when a session token does not resolve
// to an active, unexpired session record.
var ErrSessionNotFound = errors.New("session not found")

// isDuplicateErr reports whether err looks like a MySQL duplicate-key
// violation (error 1062). The driver does not expose a typed error for
// this, so repositories match on the error text.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "1062")
}
