package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

func runGated(t *testing.T, guard *service.SessionGuard) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := SessionGate(guard)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached
}

func TestSessionGateBlocksWhenInvalidated(t *testing.T) {
	guard := service.NewSessionGuard(nil)
	rec, reached := runGated(t, guard)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestSessionGatePassesWhenArmed(t *testing.T) {
	guard := service.NewSessionGuard(nil)
	guard.Arm(model.RoleAdmin, "tok")
	rec, reached := runGated(t, guard)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestSessionGateClosesAfterInvalidation(t *testing.T) {
	guard := service.NewSessionGuard(nil)
	guard.Arm(model.RoleAdmin, "tok")
	_, reached := runGated(t, guard)
	require.True(t, reached)

	guard.Invalidate()
	rec, reached := runGated(t, guard)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	run := func(role any) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}
		reached := false
		h := RequireRole(model.RoleAdmin, model.RoleSuperAdmin)(func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		})
		_ = h(c)
		return rec, reached
	}

	rec, reached := run(model.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	rec, reached = run("CUSTOMER")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	rec, reached = run(nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)
}
