package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/queue"
)

// NotificationStore is the persistence contract for section-change
// requests. Implemented by repository.NotificationRepo.
type NotificationStore interface {
	Insert(ctx context.Context, n model.Notification) error
	List(ctx context.Context, status *model.NotificationStatus) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type notificationEventSink interface {
	NotificationDispatched(ctx context.Context, ev queue.NotificationDispatchedEvent) error
}

// NotificationService implements dispatch of super-admin change requests
// and the aggregation the admin badge polls. A request targeting several
// sections is always one record, which is what makes the grouped count
// trustworthy.
type NotificationService struct {
	store  NotificationStore
	events notificationEventSink
}

func NewNotificationService(store NotificationStore, events notificationEventSink) *NotificationService {
	return &NotificationService{store: store, events: events}
}

// normalizeSections trims entries, drops empties and removes duplicates
// while keeping the first-seen order.
func normalizeSections(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Dispatch validates and persists one PENDING notification covering the
// whole section set. Creation is atomic by construction: there is exactly
// one row, so partial multi-section writes cannot occur.
func (s *NotificationService) Dispatch(ctx context.Context, sections []string, rawAction, message, rawPriority string) (model.Notification, error) {
	sections = normalizeSections(sections)
	if len(sections) == 0 {
		return model.Notification{}, ErrEmptySections
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return model.Notification{}, ErrEmptyMessage
	}
	action, ok := model.ParseAction(rawAction)
	if !ok {
		return model.Notification{}, ErrInvalidAction
	}
	priority, ok := model.ParsePriority(rawPriority)
	if !ok {
		return model.Notification{}, ErrInvalidPriority
	}

	n := model.Notification{
		ID:        uuid.NewString(),
		Sections:  sections,
		Action:    action,
		Message:   message,
		Priority:  priority,
		Status:    model.NotificationPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(ctx, n); err != nil {
		return model.Notification{}, err
	}

	if s.events != nil {
		_ = s.events.NotificationDispatched(ctx, queue.NotificationDispatchedEvent{
			NotificationID: n.ID,
			Sections:       n.Sections,
			Action:         string(n.Action),
			Priority:       string(n.Priority),
			Message:        n.Message,
			DispatchedAt:   n.CreatedAt.Format(time.RFC3339),
		})
	}
	return n, nil
}

// List returns raw notification records, optionally filtered by status.
func (s *NotificationService) List(ctx context.Context, status *model.NotificationStatus) ([]model.Notification, error) {
	return s.store.List(ctx, status)
}

// pendingGroupKey identifies one logical change request. Sections are
// deliberately excluded: a request already spans its sections in one row,
// and identical (message, action, priority) tuples are duplicates of the
// same ask. Callers needing per-section detail must fetch full records.
type pendingGroupKey struct {
	message  string
	action   model.NotificationAction
	priority model.NotificationPriority
}

// PendingCount returns the number of distinct pending change requests,
// not the pending row count. Stateless; recomputed on every poll.
func (s *NotificationService) PendingCount(ctx context.Context) (int, error) {
	pending := model.NotificationPending
	rows, err := s.store.List(ctx, &pending)
	if err != nil {
		return 0, err
	}
	groups := make(map[pendingGroupKey]bool, len(rows))
	for _, n := range rows {
		groups[pendingGroupKey{message: n.Message, action: n.Action, priority: n.Priority}] = true
	}
	return len(groups), nil
}

// MarkRead flips one notification to READ.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	return s.store.MarkRead(ctx, id)
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
