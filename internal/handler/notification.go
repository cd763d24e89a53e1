package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// NotificationHandler serves the section-change feed the back office polls.
type NotificationHandler struct {
	Notifications *service.NotificationService
}

func NewNotificationHandler(n *service.NotificationService) *NotificationHandler {
	if n == nil {
		panic("nil service passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: n}
}

type dispatchReq struct {
	Sections []string `json:"sections"`
	Action   string   `json:"action"`
	Message  string   `json:"message"`
	Priority string   `json:"priority"`
}

// Dispatch handles POST /v1/notifications. A publish touching several
// sections lands as one notification row, so the pending badge counts
// edits, not sections.
func (h *NotificationHandler) Dispatch(c echo.Context) error {
	var req dispatchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notifications.Dispatch(ctx, req.Sections, req.Action, req.Message, req.Priority)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySections),
			errors.Is(err, service.ErrEmptyMessage),
			errors.Is(err, service.ErrInvalidAction),
			errors.Is(err, service.ErrInvalidPriority):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to dispatch notification"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": n})
}

// List handles GET /v1/notifications?status=.
func (h *NotificationHandler) List(c echo.Context) error {
	var status *model.NotificationStatus
	if raw := c.QueryParam("status"); raw != "" {
		st, ok := model.ParseNotificationStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		status = &st
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Notifications.List(ctx, status)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load notifications"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items, "count": len(items)})
}

// PendingCount handles GET /v1/notifications/pending-count. Rows sharing
// (message, action, priority) collapse into one unit of the badge.
func (h *NotificationHandler) PendingCount(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	n, err := h.Notifications.PendingCount(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to count notifications"})
	}
	return c.JSON(http.StatusOK, echo.Map{"pending": n})
}

// MarkRead handles PATCH /v1/notifications/:id/read. Re-reading an
// already read notification succeeds without changing anything.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update notification"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/notifications/:id.
func (h *NotificationHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Notifications.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete notification"})
	}
	return c.NoContent(http.StatusNoContent)
}
