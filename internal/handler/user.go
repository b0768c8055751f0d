package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagedoor/theater-api/internal/config"
	"github.com/stagedoor/theater-api/internal/middleware"
	"github.com/stagedoor/theater-api/internal/queue"
	"github.com/stagedoor/theater-api/internal/repository"
	queue_publisher "github.com/stagedoor/theater-api/internal/service"
)

// UserHandler bundles dependencies for user management endpoints.
// Both POST /register and POST /users map onto CreateUser; the original
// surface exposed the two paths with identical semantics.
type UserHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Roles *repository.RoleRepo
}

func NewUserHandler(cfg config.Config, u *repository.UserRepo, r *repository.RoleRepo) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Roles: r}
}

type createUserReq struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

// CreateUser creates a user with one or more roles. Admin-only by route
// middleware. Every requested role must exist before anything is
// written; a duplicate username is a conflict. If role assignment fails
// after the user row was created, the row is deleted again so no
// role-less account survives a partial failure.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}
	if len(req.Roles) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one role must be provided"})
	}
	roles := dedupe(req.Roles)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Verify all roles exist before creating anything.
	for _, name := range roles {
		ok, err := h.Roles.Exists(ctx, name)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "role '" + name + "' does not exist"})
		}
	}

	uid, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		// Conflict-class failures here can only be the username index.
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	for _, name := range roles {
		if err := h.Roles.Assign(ctx, uid, name); err != nil {
			// Compensating delete: no user may exist without its roles.
			_ = h.Users.Delete(ctx, uid)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign role failed"})
		}
	}

	assigned, err := h.Roles.ListForUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load roles failed"})
	}

	if actor, ok := middleware.IdentityFrom(c); ok {
		_ = queue_publisher.PublishAudit(ctx, queue.AuditEvent{
			Action:     "user.registered",
			Entity:     "user",
			EntityID:   uid,
			ActorID:    actor.ID,
			Detail:     strings.ToLower(req.Username),
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, userResp{ID: uid, Username: strings.ToLower(req.Username), Roles: assigned})
}

// GetUser returns a user DTO by id. Missing ids yield 404; a malformed
// id is a client error, never a panic.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	roles, err := h.Roles.ListForUser(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load roles failed"})
	}
	return c.JSON(http.StatusOK, userResp{ID: u.ID, Username: u.Username, Roles: roles})
}

// dedupe removes duplicate role names preserving first-seen order.
func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
