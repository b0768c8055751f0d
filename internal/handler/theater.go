package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stagedoor/theater-api/internal/auth"
	"github.com/stagedoor/theater-api/internal/middleware"
	"github.com/stagedoor/theater-api/internal/model"
	"github.com/stagedoor/theater-api/internal/queue"
	"github.com/stagedoor/theater-api/internal/repository"
	queue_publisher "github.com/stagedoor/theater-api/internal/service"
)

// TheaterHandler bundles repositories for the theater endpoints.
type TheaterHandler struct {
	Theaters *repository.TheaterRepo
	Users    *repository.UserRepo
}

func NewTheaterHandler(t *repository.TheaterRepo, u *repository.UserRepo) *TheaterHandler {
	if t == nil || u == nil {
		panic("nil repository passed to NewTheaterHandler")
	}
	return &TheaterHandler{Theaters: t, Users: u}
}

// theaterReq is the full DTO supplied on create and update. Updates
// carry no partial-field semantics: every call overwrites all four
// mutable fields.
type theaterReq struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	SeatCount int     `json:"seatCount"`
	ManagerID *uint64 `json:"managerId"`
}

type theaterResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	SeatCount int     `json:"seatCount"`
	ManagerID *uint64 `json:"managerId"`
}

func toTheaterResp(t *model.Theater) theaterResp {
	return theaterResp{
		ID:        t.ID,
		Name:      t.Name,
		Address:   t.Address,
		SeatCount: int(t.SeatCount),
		ManagerID: t.ManagerID,
	}
}

// invalidTheaterInput reports whether the DTO violates the field rules:
// blank or over-long name, blank address, non-positive seat count. It
// touches nothing but the DTO itself; callers run it before any lookup
// so an invalid payload never reaches the database.
func invalidTheaterInput(req theaterReq) bool {
	return strings.TrimSpace(req.Name) == "" ||
		len(req.Name) > model.TheaterNameMaxLen ||
		strings.TrimSpace(req.Address) == "" ||
		req.SeatCount <= 0
}

// ListTheaters handles GET /theaters. Public; the Redis response cache
// fronts this route.
func (h *TheaterHandler) ListTheaters(c echo.Context) error {
	items, err := h.Theaters.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]theaterResp, 0, len(items))
	for _, t := range items {
		out = append(out, toTheaterResp(t))
	}
	return c.JSON(http.StatusOK, out)
}

// GetTheater handles GET /theaters/:id. Public.
func (h *TheaterHandler) GetTheater(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Theaters.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, toTheaterResp(t))
}

// CreateTheater handles POST /theaters. Admin-only by route middleware.
// The manager reference is optional; when supplied it must resolve to
// an existing user before anything is written.
func (h *TheaterHandler) CreateTheater(c echo.Context) error {
	var req theaterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if invalidTheaterInput(req) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater input"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.ManagerID != nil {
		ok, err := h.Users.Exists(ctx, *req.ManagerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !ok {
			// Unresolved reference, distinct from the field-rule failure above.
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "manager not found"})
		}
	}

	t := &model.Theater{
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		SeatCount: uint32(req.SeatCount),
		ManagerID: req.ManagerID,
	}
	if err := h.Theaters.Create(ctx, t); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create theater"})
	}

	h.publishAudit(c, "theater.created", t)
	return c.JSON(http.StatusCreated, toTheaterResp(t))
}

// UpdateTheater handles PUT /theaters/:id. Permitted for Admins and for
// the theater's assigned manager; everyone else gets 403 even though
// the record itself is publicly readable.
func (h *TheaterHandler) UpdateTheater(c echo.Context) error {
	var req theaterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	// Field validation runs before any database work.
	if invalidTheaterInput(req) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid theater input"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	requester, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Theaters.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	if !auth.CanModifyTheater(requester, t) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if req.ManagerID != nil {
		ok, err := h.Users.Exists(ctx, *req.ManagerID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "manager not found"})
		}
	}

	// Full overwrite of all mutable fields, including clearing or
	// reassigning the manager reference.
	t.Name = strings.TrimSpace(req.Name)
	t.Address = strings.TrimSpace(req.Address)
	t.SeatCount = uint32(req.SeatCount)
	t.ManagerID = req.ManagerID
	if err := h.Theaters.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	h.publishAudit(c, "theater.updated", t)
	return c.JSON(http.StatusOK, toTheaterResp(t))
}

// DeleteTheater handles DELETE /theaters/:id. Admin-only by route
// middleware; the assigned manager has no delete rights. Returns the
// deleted identifier for confirmation.
func (h *TheaterHandler) DeleteTheater(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Theaters.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTheaterNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theater not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}

	h.publishAudit(c, "theater.deleted", &model.Theater{ID: id})
	return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// publishAudit emits a mutation event to the audit queue. Failures are
// logged by the publisher and never interrupt the request.
func (h *TheaterHandler) publishAudit(c echo.Context, action string, t *model.Theater) {
	actor, _ := middleware.IdentityFrom(c)
	_ = queue_publisher.PublishAudit(c.Request().Context(), queue.AuditEvent{
		Action:     action,
		Entity:     "theater",
		EntityID:   t.ID,
		ActorID:    actor.ID,
		Detail:     t.Name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
