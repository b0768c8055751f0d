package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	tok, err := NewSessionToken(60)
	require.NoError(t, err)
	assert.Len(t, tok.Raw, 96) // 48 random bytes hex-encoded

	remaining := time.Until(tok.Exp)
	assert.Greater(t, remaining, 59*time.Minute)
	assert.LessOrEqual(t, remaining, 60*time.Minute)

	other, err := NewSessionToken(60)
	require.NoError(t, err)
	assert.NotEqual(t, tok.Raw, other.Raw)
}

func TestHashSessionRaw(t *testing.T) {
	h1 := HashSessionRaw("abc")
	h2 := HashSessionRaw("abc")
	h3 := HashSessionRaw("abd")
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64) // sha256 hex
}

func TestSessionCookieRoundTrip(t *testing.T) {
	const secret = "test-secret"

	signed, err := SignSessionCookie(secret, "raw-token-value")
	require.NoError(t, err)

	sid, err := ParseSessionCookie(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "raw-token-value", sid)
}

func TestParseSessionCookieRejectsTampering(t *testing.T) {
	signed, err := SignSessionCookie("secret-a", "raw")
	require.NoError(t, err)

	_, err = ParseSessionCookie("secret-b", signed)
	assert.ErrorIs(t, err, ErrBadCookie)

	_, err = ParseSessionCookie("secret-a", signed+"x")
	assert.ErrorIs(t, err, ErrBadCookie)

	_, err = ParseSessionCookie("secret-a", "not-a-jwt")
	assert.ErrorIs(t, err, ErrBadCookie)
}

// A cookie minted hours ago must still parse: the envelope carries no
// deadline of its own, so a session the store has kept sliding forward
// is not cut off at the initial window by the cookie layer.
func TestSessionCookieOutlivesInitialWindow(t *testing.T) {
	const secret = "secret"
	claims := jwt.MapClaims{
		"sid": "raw",
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	sid, err := ParseSessionCookie(secret, signed)
	require.NoError(t, err)
	assert.Equal(t, "raw", sid)
}
