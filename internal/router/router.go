package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/ceylonscape/tour-backoffice/internal/handler"    // handlers that implement business logic
	"github.com/ceylonscape/tour-backoffice/internal/middleware" // JWT, session and role middlewares
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and uptime monitors probe this endpoint.
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the website submission endpoint.  The marketing
// forms post here without any credentials; each :source routes the payload
// to the collection that owns it.
func RegisterPublic(e *echo.Echo, b *handler.BookingHandler) {
	e.POST("/v1/bookings/:source", b.Submit)
}

// RegisterAuth registers authentication routes and the session-scoped
// endpoints that only need a valid token, not a staff role.
// Unauthenticated operations live under /v1/auth, protected ones under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, guard *service.SessionGuard) {
	// Operations that establish or exchange tokens need no existing session.
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	// Logout accepts a refresh token in the body and invalidates the whole
	// back-office session, both roles at once.
	g.POST("/logout", a.Logout)

	// Session-scoped endpoints.  SessionGate runs before JWTAuth so an
	// invalidated session is rejected without even parsing the token.
	auth := e.Group(
		"/v1",
		middleware.SessionGate(guard),
		middleware.JWTAuth(jwtSecret, guard),
	)
	auth.GET("/me", a.Me)
	// Only a SUPER_ADMIN may provision additional ADMIN accounts.
	auth.POST("/admins", a.CreateAdmin, middleware.RequireRole("SUPER_ADMIN"))
}
