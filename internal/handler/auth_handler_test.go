package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stagedoor/theater-api/internal/auth"
	"github.com/stagedoor/theater-api/internal/config"
	"github.com/stagedoor/theater-api/internal/middleware"
	"github.com/stagedoor/theater-api/internal/repository"
	"github.com/stagedoor/theater-api/internal/utils"
)

func changePasswordContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/password", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetIdentity(c, auth.Identity{ID: 5, Roles: []string{"User"}})
	return c, rec
}

func expectUserRow(t *testing.T, mock sqlmock.Sqlmock, currentPassword string) {
	t.Helper()
	hash, err := utils.HashPassword(currentPassword, bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id,username,password_hash,created_at,updated_at FROM users").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at", "updated_at"}).
			AddRow(int64(5), "bob", hash, now, now))
}

// Changing the password revokes every active session of the user and
// clears the cookie, so all clients must log in again.
func TestChangePasswordRevokesAllSessions(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectUserRow(t, mock, "OldPassword123!")
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET password_hash=? WHERE id=?")).
		WithArgs(sqlmock.AnyArg(), uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE sessions SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL")).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	h := NewAuthHandler(config.Config{BcryptCost: bcrypt.MinCost},
		repository.NewUserRepo(db), repository.NewRoleRepo(db), repository.NewSessionRepo(db))

	c, rec := changePasswordContext(t,
		`{"currentPassword":"OldPassword123!","newPassword":"NewPassword123!"}`)
	require.NoError(t, h.ChangePassword(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectUserRow(t, mock, "OldPassword123!")

	h := NewAuthHandler(config.Config{BcryptCost: bcrypt.MinCost},
		repository.NewUserRepo(db), repository.NewRoleRepo(db), repository.NewSessionRepo(db))

	c, rec := changePasswordContext(t,
		`{"currentPassword":"guess","newPassword":"NewPassword123!"}`)
	require.NoError(t, h.ChangePassword(c))

	// Nothing is written and no session is revoked.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChangePasswordMissingFields(t *testing.T) {
	h := NewAuthHandler(config.Config{}, nil, nil, nil)

	c, rec := changePasswordContext(t, `{"currentPassword":"","newPassword":""}`)
	require.NoError(t, h.ChangePassword(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
