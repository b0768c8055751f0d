package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing

	"github.com/stagedoor/theater-api/internal/handler"    // handlers implement the endpoint logic
	"github.com/stagedoor/theater-api/internal/middleware" // middleware for sessions and role enforcement
	"github.com/stagedoor/theater-api/internal/model"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance. Currently it exposes only a health check,
// used by load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session lifecycle endpoints. Login is open;
// /me, /logout and /password require a live session; /register additionally
// requires the Admin role. The session middleware resolves the cookie
// into an identity before the role check runs, keeping the 401/403
// distinction intact.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, session echo.MiddlewareFunc) {
	e.POST("/login", a.Login)
	e.GET("/me", a.Me, session)
	e.POST("/logout", a.Logout, session)
	e.POST("/password", a.ChangePassword, session)
	e.POST("/register", u.CreateUser, session, middleware.RequireRole(model.RoleAdmin))
}

// RegisterTheaters wires the theater CRUD surface. Reads are public and
// fronted by the response cache; mutations require a session. Create
// and delete are Admin-only, update additionally admits the theater's
// assigned manager — the handler evaluates that policy since it depends
// on the target record, not just the role set.
func RegisterTheaters(e *echo.Echo, t *handler.TheaterHandler, session, cache echo.MiddlewareFunc) {
	e.GET("/theaters", t.ListTheaters, cache)
	e.GET("/theaters/:id", t.GetTheater, cache)
	e.POST("/theaters", t.CreateTheater, session, middleware.RequireRole(model.RoleAdmin))
	e.PUT("/theaters/:id", t.UpdateTheater, session, middleware.RequireRole(model.RoleAdmin, model.RoleUser))
	e.DELETE("/theaters/:id", t.DeleteTheater, session, middleware.RequireRole(model.RoleAdmin))
}

// RegisterUsers wires user management. Creation is Admin-only; the
// by-id read is public like the original API surface.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, session echo.MiddlewareFunc) {
	e.POST("/users", u.CreateUser, session, middleware.RequireRole(model.RoleAdmin))
	e.GET("/users/:id", u.GetUser)
}
