package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/queue"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
)

// allowedTransitions is the explicit status state machine. The legacy
// back office let staff jump to any status from any status; the table
// rejects regressions like COMPLETED back to PENDING, and the override
// flag keeps the manual-correction path open for staff who need it.
var allowedTransitions = map[model.Status][]model.Status{
	model.StatusPending:   {model.StatusApproved, model.StatusCancelled},
	model.StatusApproved:  {model.StatusCompleted, model.StatusCancelled},
	model.StatusCompleted: {},
	model.StatusCancelled: {},
}

func transitionAllowed(from, to model.Status) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// statusEventSink receives audit events after a mutation lands. A nil
// sink disables publishing.
type statusEventSink interface {
	BookingStatusChanged(ctx context.Context, ev queue.BookingStatusChangedEvent) error
}

// TransitionService validates and applies booking status changes, routing
// every mutation to its owning adapter by the (source, id) pair. It
// applies each call exactly once and never retries; upstream failures are
// surfaced unmodified inside an UpstreamWriteError.
type TransitionService struct {
	registry *AdapterRegistry
	events   statusEventSink
}

func NewTransitionService(registry *AdapterRegistry, events statusEventSink) *TransitionService {
	return &TransitionService{registry: registry, events: events}
}

// Transition applies newStatus to the booking identified by (source, id).
// Validation rejects unknown sources, statuses outside the enum and, when
// override is false, jumps the transition table disallows. No adapter is
// touched until every check has passed. The updated booking is returned.
func (s *TransitionService) Transition(ctx context.Context, rawSource, id, rawStatus string, override bool) (model.Booking, error) {
	src, ok := model.ParseSource(rawSource)
	if !ok {
		return model.Booking{}, ErrInvalidSource
	}
	status, ok := model.ParseStatus(rawStatus)
	if !ok {
		return model.Booking{}, ErrInvalidStatus
	}
	adapter, ok := s.registry.Lookup(src)
	if !ok {
		return model.Booking{}, ErrInvalidSource
	}

	current, err := adapter.Get(ctx, id)
	if err != nil {
		return model.Booking{}, err
	}
	if !override && !transitionAllowed(current.Status, status) {
		return model.Booking{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, status)
	}

	if err := adapter.UpdateStatus(ctx, id, status); err != nil {
		// A concurrent delete between the read and the write still means
		// the pair does not exist.
		if errors.Is(err, repository.ErrNotFound) {
			return model.Booking{}, err
		}
		return model.Booking{}, &UpstreamWriteError{Source: src, Err: err}
	}

	if s.events != nil {
		_ = s.events.BookingStatusChanged(ctx, queue.BookingStatusChangedEvent{
			Source:    string(src),
			BookingID: id,
			From:      string(current.Status),
			To:        string(status),
			Override:  override,
			ChangedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	current.Status = status
	return current, nil
}

// Delete permanently removes the booking identified by (source, id),
// routed through the same registry as every other mutation.
func (s *TransitionService) Delete(ctx context.Context, rawSource, id string) error {
	src, ok := model.ParseSource(rawSource)
	if !ok {
		return ErrInvalidSource
	}
	adapter, ok := s.registry.Lookup(src)
	if !ok {
		return ErrInvalidSource
	}
	if err := adapter.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return &UpstreamWriteError{Source: src, Err: err}
	}
	return nil
}
