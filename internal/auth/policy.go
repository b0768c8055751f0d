// Package auth holds the authorization policy evaluated per request.
// The policy is an explicit function over the requester's identity and
// the target record, independent of any routing middleware, so it can
// be exercised directly in tests and reused by every mutating handler.
package auth

import (
	"github.com/stagedoor/theater-api/internal/model"
)

// Identity is the authenticated caller as derived from the session:
// a user id plus the role names loaded fresh from the store for this
// request. Nothing here is cached across requests.
type Identity struct {
	ID    uint64
	Roles []string
}

// HasRole reports whether the identity holds the named role.
func (id Identity) HasRole(name string) bool {
	for _, r := range id.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the identity holds the Admin role.
func (id Identity) IsAdmin() bool {
	return id.HasRole(model.RoleAdmin)
}

// CanModifyTheater decides whether the requester may update the given
// theater. Permitted iff the requester is an Admin, or the theater has
// an assigned manager and the requester is that manager. A theater
// without a manager can only be modified by an Admin. Creation and
// deletion are Admin-only unconditionally and do not consult this
// function.
func CanModifyTheater(requester Identity, t *model.Theater) bool {
	if requester.IsAdmin() {
		return true
	}
	return t.ManagerID != nil && *t.ManagerID == requester.ID
}
