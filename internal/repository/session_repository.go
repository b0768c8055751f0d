package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SessionRepo persists/validates login sessions (single 'token_hash' column).
// Sessions back the auth cookie: the opaque token handed to the client is
// stored only as its SHA-256 hash, and the row is the authoritative record
// for revocation and sliding expiry.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Store inserts a session row for a freshly issued token hash.
func (r *SessionRepo) Store(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token_hash, expires_at) VALUES (?,?,?)",
		userID, tokenHash, exp)
	return err
}

// Validate returns the owning userID if a non-revoked, non-expired
// session exists for the hash. ErrSessionNotFound covers missing,
// revoked and expired rows alike so callers see a single 401 signal.
func (r *SessionRepo) Validate(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		userID    uint64
		expiresAt time.Time
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, expires_at, revoked_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	if revokedAt.Valid {
		return 0, ErrSessionNotFound
	}
	if time.Now().UTC().After(expiresAt) {
		return 0, ErrSessionNotFound
	}
	return userID, nil
}

// Touch pushes the expiry of an active session forward, implementing
// the sliding window. Expired or revoked rows are left untouched.
func (r *SessionRepo) Touch(ctx context.Context, tokenHash string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET expires_at=? WHERE token_hash=? AND revoked_at IS NULL",
		exp, tokenHash)
	return err
}

// RevokeByHash marks a session as revoked (logout).
func (r *SessionRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser revokes all of a user's active sessions.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}
