package middleware // middleware provides shared request processing for handlers

import (
    "net/http"

    "github.com/labstack/echo/v4"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user holds one of the specified roles. It assumes the
// Session middleware already resolved an identity into the context; a
// request with no identity is rejected as unauthenticated, one whose
// role set misses every allowed role as forbidden. The two signals stay
// distinct: 401 means "no identity at all", 403 means "identified but
// not permitted".
func RequireRole(roles ...string) echo.MiddlewareFunc {
    // Build a set of allowed roles for constant-time lookups.
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            id, ok := IdentityFrom(c)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
            }
            for _, r := range id.Roles {
                if allowed[r] {
                    return next(c)
                }
            }
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        }
    }
}
