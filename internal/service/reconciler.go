package service

import (
	"context"
	"sort"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// BookingFilter narrows a reconciliation read. All fields are optional;
// a zero filter means "everything from every source".
type BookingFilter struct {
	Source *model.Source
	Status *model.Status
	Date   *time.Time
}

// Reconciled is the envelope a reconciliation read produces. SourceErrors
// carries a marker per failed source so one outage degrades the timeline
// instead of blanking it.
type Reconciled struct {
	Bookings     []model.Booking         `json:"bookings"`
	SourceErrors map[model.Source]string `json:"source_errors,omitempty"`
}

// Reconciler merges the five per-source collections into one canonical,
// source-tagged timeline ordered by creation time descending. It is
// strictly read-only; mutations go through the TransitionService.
type Reconciler struct {
	registry *AdapterRegistry
}

func NewReconciler(registry *AdapterRegistry) *Reconciler {
	return &Reconciler{registry: registry}
}

// Reconcile fetches every registered adapter (or only the filtered one),
// tags and merges the results newest first. Ties on CreatedAt keep each
// source's own order; no ordering is promised across invocations. A
// failing adapter contributes an error marker, not a failure of the read.
func (r *Reconciler) Reconcile(ctx context.Context, f BookingFilter) (Reconciled, error) {
	adapters := r.registry.All()
	if f.Source != nil {
		a, ok := r.registry.Lookup(*f.Source)
		if !ok {
			return Reconciled{}, ErrInvalidSource
		}
		adapters = []SourceAdapter{a}
	}

	out := Reconciled{}
	for _, a := range adapters {
		rows, err := a.List(ctx, f.Status, f.Date)
		if err != nil {
			if out.SourceErrors == nil {
				out.SourceErrors = make(map[model.Source]string)
			}
			out.SourceErrors[a.Source()] = err.Error()
			continue
		}
		out.Bookings = append(out.Bookings, rows...)
	}

	// Stable sort over the concatenation preserves each source's internal
	// order for equal timestamps.
	sort.SliceStable(out.Bookings, func(i, j int) bool {
		return out.Bookings[i].CreatedAt.After(out.Bookings[j].CreatedAt)
	})
	return out, nil
}
