package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// SessionGate consults the session guard synchronously before any gated
// operation runs. While the guard is unauthenticated every request
// short-circuits here with a 401 and never reaches token parsing or a
// handler; a new login re-arms the guard and reopens the gate.
func SessionGate(guard *service.SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !guard.Authorized() {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": service.ErrSessionInvalidated.Error()})
			}
			return next(c)
		}
	}
}
