package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stagedoor/theater-api/internal/auth"
	"github.com/stagedoor/theater-api/internal/model"
)

func runRequireRole(t *testing.T, identity *auth.Identity, allowed ...string) (int, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/theaters", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if identity != nil {
		c.Set(identityKey, *identity)
	}

	called := false
	handler := RequireRole(allowed...)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code, called
}

func TestRequireRole(t *testing.T) {
	testCases := []struct {
		name       string
		identity   *auth.Identity
		allowed    []string
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "no identity is unauthenticated",
			identity:   nil,
			allowed:    []string{model.RoleAdmin},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing role is forbidden",
			identity:   &auth.Identity{ID: 2, Roles: []string{model.RoleUser}},
			allowed:    []string{model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "matching role passes",
			identity:   &auth.Identity{ID: 1, Roles: []string{model.RoleAdmin}},
			allowed:    []string{model.RoleAdmin},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "any of several allowed roles passes",
			identity:   &auth.Identity{ID: 2, Roles: []string{model.RoleUser}},
			allowed:    []string{model.RoleAdmin, model.RoleUser},
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "empty role set is forbidden",
			identity:   &auth.Identity{ID: 3},
			allowed:    []string{model.RoleAdmin},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, called := runRequireRole(t, tc.identity, tc.allowed...)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCalled, called)
		})
	}
}

func TestIdentityFrom(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/me", nil), httptest.NewRecorder())

	_, ok := IdentityFrom(c)
	assert.False(t, ok)

	c.Set(identityKey, auth.Identity{ID: 9, Roles: []string{model.RoleUser}})
	id, ok := IdentityFrom(c)
	require.True(t, ok)
	assert.Equal(t, uint64(9), id.ID)
}
