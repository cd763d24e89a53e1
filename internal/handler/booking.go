package handler

// Booking handlers expose the reconciled timeline to the back office and
// the five public form write paths that feed it. Reads go through the
// reconciler; every mutation is routed by the (source, id) pair through
// the transition service, so a handler never touches an adapter for a
// source it only knows by string.

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

// BookingHandler bundles the reconciliation core for the booking routes.
type BookingHandler struct {
	Reconciler  *service.Reconciler
	Transitions *service.TransitionService
	Registry    *service.AdapterRegistry
}

func NewBookingHandler(r *service.Reconciler, t *service.TransitionService, reg *service.AdapterRegistry) *BookingHandler {
	if r == nil || t == nil || reg == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{Reconciler: r, Transitions: t, Registry: reg}
}

// List handles GET /v1/bookings?source=&status=&date=. It returns the
// merged, newest-first timeline plus a per-source error marker for any
// collection that failed to answer; one source outage never blanks the
// list.
func (h *BookingHandler) List(c echo.Context) error {
	var f service.BookingFilter

	if raw := c.QueryParam("source"); raw != "" {
		src, ok := model.ParseSource(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid source"})
		}
		f.Source = &src
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, ok := model.ParseStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		f.Status = &st
	}
	if raw := c.QueryParam("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, want YYYY-MM-DD"})
		}
		f.Date = &d
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reconciler.Reconcile(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load bookings"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":         res.Bookings,
		"count":         len(res.Bookings),
		"source_errors": res.SourceErrors,
	})
}

type transitionReq struct {
	Status   string `json:"status"`
	Override bool   `json:"override"`
}

// UpdateStatus handles PATCH /v1/bookings/:source/:id. Validation happens
// entirely before the write: a bad enum value never reaches an adapter.
func (h *BookingHandler) UpdateStatus(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	b, err := h.Transitions.Transition(ctx, c.Param("source"), c.Param("id"), req.Status, req.Override)
	if err != nil {
		return bookingMutationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"item": b})
}

// Delete handles DELETE /v1/bookings/:source/:id. Removal is permanent;
// there is no soft delete.
func (h *BookingHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Transitions.Delete(ctx, c.Param("source"), c.Param("id")); err != nil {
		return bookingMutationError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bookingMutationError maps service errors onto the HTTP contract:
// validation 400, unknown pair 404, failed adapter write 502.
func bookingMutationError(c echo.Context, err error) error {
	var upstream *service.UpstreamWriteError
	switch {
	case errors.Is(err, service.ErrInvalidSource),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.As(err, &upstream):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking mutation failed"})
	}
}

type submitBookingReq struct {
	Subject     string `json:"subject"` // tour slug, tour type or vehicle type
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	StartTime   string `json:"start_time"` // optional, HH:MM
	PickupPoint string `json:"pickup_point"`
	DropOff     string `json:"drop_off"`
}

// Submit handles POST /v1/bookings/:source, the write path behind the
// public marketing forms. Each source keeps its own storage shape; the
// handler only builds the canonical record and hands it to the owning
// adapter.
func (h *BookingHandler) Submit(c echo.Context) error {
	src, ok := model.ParseSource(c.Param("source"))
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid source"})
	}
	adapter, ok := h.Registry.Lookup(src)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid source"})
	}

	var req submitBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = strings.TrimSpace(req.Email)
	if req.Subject == "" || req.Name == "" || req.Phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subject/name/phone required"})
	}
	// The taxi form never collected an email; everyone else requires one.
	if req.Email == "" && src != model.SourceTaxi {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}
	if req.Adults < 1 || req.Children < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid party size"})
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_date, want YYYY-MM-DD"})
	}
	if src == model.SourceTaxi && (req.PickupPoint == "" || req.DropOff == "") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "pickup_point/drop_off required"})
	}

	b := model.Booking{
		ID:         uuid.NewString(),
		Source:     src,
		SubjectRef: req.Subject,
		Contact:    model.Contact{Name: req.Name, Email: req.Email, Phone: req.Phone},
		Party:      model.Party{Adults: req.Adults, Children: req.Children},
		Schedule:   model.Schedule{StartDate: startDate},
		Status:     model.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	if req.StartTime != "" {
		b.Schedule.StartTime = &req.StartTime
	}
	if req.PickupPoint != "" {
		b.Schedule.PickupPoint = &req.PickupPoint
	}
	if req.DropOff != "" {
		b.Schedule.DropOff = &req.DropOff
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := adapter.Create(ctx, &b); err != nil {
		return bookingMutationError(c, &service.UpstreamWriteError{Source: src, Err: err})
	}
	return c.JSON(http.StatusCreated, echo.Map{"item": b})
}
