// Package middleware provides the request-processing chain for the
// back-office API: session gating, JWT validation, role enforcement,
// response caching and rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// JWTAuth validates the Bearer access token and stores the subject and
// role claims in the request context under "user_id" and "role". A
// rejected token that the guard currently holds (expired or revoked mid
// session) doubles as the session-invalidated signal: the guard is
// notified before the 401 goes out, so every later gated call
// short-circuits at the session gate instead of reaching this far.
// Anonymous junk never touches the guard; a stranger probing the API
// must not log the staff out.
func JWTAuth(secret string, guard *service.SessionGuard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				if guard.Holds(raw) {
					guard.Invalidate()
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				if guard.Holds(raw) {
					guard.Invalidate()
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set("user_id", claims["sub"])
			c.Set("role", claims["role"])
			return next(c)
		}
	}
}
