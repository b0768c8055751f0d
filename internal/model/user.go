package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The json tags are omitted here because these structs
// are primarily used internally by the repository layer; handlers
// define separate response types with appropriate JSON tags.
// Role membership lives in the `user_roles` join table and is
// loaded separately, so the struct carries no role field.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username, stored lower-cased.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}

// Role represents a row in the `roles` table. It maps a small
// integer ID to a role name. Users reference roles through the
// `user_roles` join table.
//
// Fields:
//  ID   – numeric identifier of the role.
//  Name – unique role name from the fixed vocabulary ("Admin", "User").
type Role struct {
    ID   uint8  // roles.id
    Name string // roles.name
}

// Role vocabulary. The seed procedure provisions exactly these
// two roles and registration rejects anything else.
const (
    RoleAdmin = "Admin"
    RoleUser  = "User"
)

// RoleNames lists the fixed role vocabulary in seed order.
var RoleNames = []string{RoleAdmin, RoleUser}
