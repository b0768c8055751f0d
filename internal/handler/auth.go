package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagedoor/theater-api/internal/config"
	"github.com/stagedoor/theater-api/internal/middleware"
	"github.com/stagedoor/theater-api/internal/repository"
	"github.com/stagedoor/theater-api/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Users    *repository.UserRepo
	Roles    *repository.RoleRepo
	Sessions *repository.SessionRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, r *repository.RoleRepo, s *repository.SessionRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Roles: r, Sessions: s}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResp struct {
	ID       uint64   `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}

// Login verifies credentials, persists a session record and sets the
// auth cookie. Invalid username and invalid password produce the same
// response so the endpoint does not leak which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username or password"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.SessionTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	if err := h.Sessions.Store(ctx, u.ID, utils.HashSessionRaw(tok.Raw), tok.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save session failed"})
	}
	signed, err := utils.SignSessionCookie(h.Cfg.SessionSecret, tok.Raw)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue session failed"})
	}
	c.SetCookie(sessionCookie(signed))

	roles, err := h.Roles.ListForUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load roles failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Username: u.Username, Roles: roles})
}

// Me returns the authenticated user's details. The session middleware
// guarantees an identity is present; its role set was loaded fresh for
// this request.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Username: u.Username, Roles: id.Roles})
}

// Logout revokes the persisted session and expires the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	hash, ok := middleware.SessionHashFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Sessions.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	c.SetCookie(clearSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password, stores the new hash and
// revokes every session of the user, including the one making the call.
// The client has to log in again afterwards, so the cookie is cleared.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current and new password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id.ID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid session"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.CurrentPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current password is incorrect"})
	}

	if err := h.Users.UpdatePassword(ctx, u.ID, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update password failed"})
	}
	if err := h.Sessions.RevokeAllForUser(ctx, u.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
	}

	c.SetCookie(clearSessionCookie())
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed, log in again"})
}

// sessionCookie builds the auth cookie. It carries no Expires/Max-Age:
// the session row's sliding expiry is what bounds the session, and a
// client-side deadline would cut an active session off at the initial
// window. A stale value simply fails validation server-side.
func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// clearSessionCookie returns an immediately expiring cookie for logout.
func clearSessionCookie() *http.Cookie {
	c := sessionCookie("")
	c.Expires = time.Unix(0, 0).UTC()
	c.MaxAge = -1
	return c
}
