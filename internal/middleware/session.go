package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/stagedoor/theater-api/internal/auth"
    "github.com/stagedoor/theater-api/internal/repository"
    "github.com/stagedoor/theater-api/internal/utils"
)

// CookieName is the name of the auth cookie issued at login.
const CookieName = "theater_session"

// identityKey is the context key under which the middleware stores the
// resolved auth.Identity for downstream handlers.
const identityKey = "identity"

// sessionHashKey is the context key holding the SHA-256 hash of the
// current session token, used by the logout handler to revoke the row.
const sessionHashKey = "session_hash"

// Session returns an Echo middleware that authenticates requests via the
// session cookie. The cookie value is a signed JWT envelope carrying an
// opaque token; the middleware verifies the signature, looks the token up
// in the sessions table, loads the user's role set fresh from the store
// and injects an auth.Identity into the request context. Every successful
// pass slides the session expiry forward by ttlMin minutes.
//
// Any failure along the way (missing cookie, bad signature, revoked or
// expired session, vanished user) yields 401, distinct from the 403 the
// role checks produce for authenticated-but-not-permitted callers.
func Session(secret string, ttlMin int, sessions *repository.SessionRepo, users *repository.UserRepo, roles *repository.RoleRepo) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(CookieName)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            raw, err := utils.ParseSessionCookie(secret, cookie.Value)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
            }
            hash := utils.HashSessionRaw(raw)

            ctx := c.Request().Context()
            userID, err := sessions.Validate(ctx, hash)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
            }

            // Identity and role set are derived fresh per call; nothing is
            // cached across requests.
            u, err := users.GetByID(ctx, userID)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
            }
            roleNames, err := roles.ListForUser(ctx, u.ID)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load roles failed"})
            }

            // Sliding expiry: best effort, an error here must not fail the request.
            exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
            _ = sessions.Touch(ctx, hash, exp)

            SetIdentity(c, auth.Identity{ID: u.ID, Roles: roleNames})
            c.Set(sessionHashKey, hash)
            return next(c)
        }
    }
}

// SetIdentity stores the authenticated identity on the request context.
// Session calls it after resolving the cookie; handler tests call it
// directly to simulate an authenticated request.
func SetIdentity(c echo.Context, id auth.Identity) {
    c.Set(identityKey, id)
}

// IdentityFrom extracts the authenticated identity stored by Session.
// The boolean is false when the request went through no session middleware.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
    id, ok := c.Get(identityKey).(auth.Identity)
    return id, ok
}

// SessionHashFrom extracts the current session token hash stored by Session.
func SessionHashFrom(c echo.Context) (string, bool) {
    h, ok := c.Get(sessionHashKey).(string)
    return h, ok
}
