package utils // package utils provides helper functions for session token creation and hashing

import (
    "crypto/rand"   // secure random number generation
    "crypto/sha256" // SHA-256 hashing for session tokens
    "encoding/hex"  // hex encoding functions
    "errors"        // sentinel errors for cookie parsing
    "time"          // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for signing the cookie envelope
)

// SessionToken represents a freshly issued login session. The Raw field
// contains the opaque token correlated with a persisted session record.
// In the database only the SHA-256 hash of Raw is stored. Exp records the
// initial expiry; the repository slides it forward on use.
type SessionToken struct {
    Raw string    // raw token string, never persisted
    Exp time.Time // UTC expiration time
}

// ErrBadCookie is returned when a session cookie fails signature
// verification or does not carry the expected claims.
var ErrBadCookie = errors.New("invalid session cookie")

// NewSessionToken returns a cryptographically secure random token and its
// expiration time. The ttlMin parameter controls how many minutes the
// session is initially valid; activity extends it.
func NewSessionToken(ttlMin int) (SessionToken, error) {
    raw, err := randomHex(48) // 48 bytes -> 96 hex chars
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{
        Raw: raw,
        Exp: time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute),
    }, nil
}

// HashSessionRaw returns the SHA-256 hash of the raw session token as a
// hex string. Storing only the hash prevents attackers from replaying
// sessions out of stolen database rows.
func HashSessionRaw(raw string) string {
    sum := sha256.Sum256([]byte(raw))
    return hex.EncodeToString(sum[:])
}

// SignSessionCookie wraps the opaque session token in an HS256 JWT for
// transport in the auth cookie. The envelope makes the cookie value
// tamper-evident; the persisted session row stays authoritative for
// revocation and expiry. Claims: sid (the opaque token) and iat. The
// envelope deliberately carries no exp claim: a fixed claim would cap
// the session at its initial window and defeat the sliding expiry the
// repository maintains.
func SignSessionCookie(secret, raw string) (string, error) {
    claims := jwt.MapClaims{
        "sid": raw,
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// ParseSessionCookie verifies the JWT envelope of a session cookie and
// returns the embedded opaque token. Signature failures, non-HMAC
// algorithms and missing claims all yield ErrBadCookie.
func ParseSessionCookie(secret, value string) (string, error) {
    tok, err := jwt.Parse(value, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrBadCookie
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return "", ErrBadCookie
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", ErrBadCookie
    }
    sid, ok := claims["sid"].(string)
    if !ok || sid == "" {
        return "", ErrBadCookie
    }
    return sid, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
