package model

import "time"

// Session models an entry in the `sessions` table. Each session
// belongs to a user and backs one login cookie. The plain session
// token is never stored; only its SHA-256 hash. Sliding the
// expiry forward on use is handled by the repository, not here.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the session token.
//  ExpiresAt – expiration timestamp, pushed forward on activity.
//  RevokedAt – when the session was revoked by logout (null if active).
//  CreatedAt – timestamp of creation.
type Session struct {
    ID        uint64     // sessions.id
    UserID    uint64     // sessions.user_id
    TokenHash string     // sessions.token_hash
    ExpiresAt time.Time  // sessions.expires_at
    RevokedAt *time.Time // sessions.revoked_at (nullable)
    CreatedAt time.Time  // sessions.created_at
}
