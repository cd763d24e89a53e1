package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/ceylonscape/tour-backoffice/internal/config"
	"github.com/ceylonscape/tour-backoffice/internal/handler"    // back-office handlers
	"github.com/ceylonscape/tour-backoffice/internal/middleware" // JWT, session, role, cache and rate-limit middlewares
	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// BackOfficeDeps bundles everything the staff-facing routes need.  Keeping
// it in one struct keeps the main wiring readable as routes grow.
type BackOfficeDeps struct {
	Bookings      *handler.BookingHandler
	Notifications *handler.NotificationHandler
	JWTSecret     string
	Guard         *service.SessionGuard
	Redis         *redis.Client // nil disables caching and rate limiting
	Cache         config.CacheConfig
	RateLimit     config.RateLimitConfig
}

// RegisterBackOffice registers staff-scoped endpoints under /v1.
// All routes require an authorized session, a valid JWT and a staff role.
func RegisterBackOffice(e *echo.Echo, d BackOfficeDeps) {
	// Attach middlewares at group construction time for clarity.  The rate
	// limiter runs first so a flood of polls is shed before any token work.
	g := e.Group(
		"/v1",
		middleware.RateLimit(d.RateLimit, d.Redis),
		middleware.SessionGate(d.Guard),
		middleware.JWTAuth(d.JWTSecret, d.Guard),
		middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin),
	)

	// ---- Bookings ----
	g.GET("/bookings", d.Bookings.List)
	g.PATCH("/bookings/:source/:id", d.Bookings.UpdateStatus)
	g.DELETE("/bookings/:source/:id", d.Bookings.Delete)

	// ---- Notifications ----
	// Both GET endpoints are polled every few seconds from the back office,
	// so they sit behind the short-TTL response cache.
	cached := middleware.ResponseCache(d.Cache, d.Redis)
	g.GET("/notifications", d.Notifications.List, cached)
	g.GET("/notifications/pending-count", d.Notifications.PendingCount, cached)
	// Dispatching a notification is part of publishing site content, which
	// only the SUPER_ADMIN does.
	g.POST("/notifications", d.Notifications.Dispatch, middleware.RequireRole(model.RoleSuperAdmin))
	g.PATCH("/notifications/:id/read", d.Notifications.MarkRead)
	g.DELETE("/notifications/:id", d.Notifications.Delete)
}
