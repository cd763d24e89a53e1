package service

import (
	"context"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// SourceAdapter is the per-source access contract. Each implementation
// owns exactly one booking collection, knows its native column names, and
// hands out records already normalized into the canonical Booking shape
// with the source tag applied. The five MySQL repositories implement it.
type SourceAdapter interface {
	// Source reports the provenance tag this adapter owns.
	Source() model.Source
	// List returns the adapter's bookings newest first. Filters are
	// optional; the date filter matches the activity date.
	List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error)
	// Get fetches one booking by id within this source.
	Get(ctx context.Context, id string) (model.Booking, error)
	// Create persists a new form submission.
	Create(ctx context.Context, b *model.Booking) error
	// UpdateStatus writes a new status for the given id.
	UpdateStatus(ctx context.Context, id string, status model.Status) error
	// Delete permanently removes the given id.
	Delete(ctx context.Context, id string) error
}

// AdapterRegistry routes operations to the right adapter by source tag.
// Mutations must always travel through Lookup with an explicit source;
// there is deliberately no way to resolve a bare booking id.
type AdapterRegistry struct {
	order    []model.Source
	adapters map[model.Source]SourceAdapter
}

// NewAdapterRegistry builds a registry from the given adapters, keeping
// their registration order for deterministic reconciliation.
func NewAdapterRegistry(adapters ...SourceAdapter) *AdapterRegistry {
	r := &AdapterRegistry{adapters: make(map[model.Source]SourceAdapter, len(adapters))}
	for _, a := range adapters {
		src := a.Source()
		if _, dup := r.adapters[src]; dup {
			continue
		}
		r.adapters[src] = a
		r.order = append(r.order, src)
	}
	return r
}

// Lookup returns the adapter for a source tag.
func (r *AdapterRegistry) Lookup(src model.Source) (SourceAdapter, bool) {
	a, ok := r.adapters[src]
	return a, ok
}

// All returns the adapters in registration order.
func (r *AdapterRegistry) All() []SourceAdapter {
	out := make([]SourceAdapter, 0, len(r.order))
	for _, src := range r.order {
		out = append(out, r.adapters[src])
	}
	return out
}
