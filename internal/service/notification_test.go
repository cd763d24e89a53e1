package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
)

type fakeNotificationStore struct {
	rows      []model.Notification
	insertErr error
}

func (f *fakeNotificationStore) Insert(_ context.Context, n model.Notification) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.rows = append(f.rows, n)
	return nil
}

func (f *fakeNotificationStore) List(_ context.Context, status *model.NotificationStatus) ([]model.Notification, error) {
	out := make([]model.Notification, 0, len(f.rows))
	for _, n := range f.rows {
		if status != nil && n.Status != *status {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = model.NotificationRead
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeNotificationStore) Delete(_ context.Context, id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestDispatchStoresOneRowPerRequest(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	n, err := svc.Dispatch(context.Background(), []string{"hero", "gallery", "pricing"}, "edit", "Updated the summer campaign", "high")
	require.NoError(t, err)

	// Three sections, one record.
	require.Len(t, store.rows, 1)
	assert.Equal(t, []string{"hero", "gallery", "pricing"}, n.Sections)
	assert.Equal(t, model.ActionEdit, n.Action)
	assert.Equal(t, model.PriorityHigh, n.Priority)
	assert.Equal(t, model.NotificationPending, n.Status)
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestDispatchNormalizesSections(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	n, err := svc.Dispatch(context.Background(), []string{" hero ", "hero", "", "pricing"}, "add", "New page", "low")
	require.NoError(t, err)
	assert.Equal(t, []string{"hero", "pricing"}, n.Sections)
}

func TestDispatchValidation(t *testing.T) {
	tests := []struct {
		name     string
		sections []string
		action   string
		message  string
		priority string
		wantErr  error
	}{
		{"no sections", nil, "add", "msg", "low", ErrEmptySections},
		{"blank sections only", []string{"  ", ""}, "add", "msg", "low", ErrEmptySections},
		{"blank message", []string{"hero"}, "add", "   ", "low", ErrEmptyMessage},
		{"unknown action", []string{"hero"}, "publish", "msg", "low", ErrInvalidAction},
		{"unknown priority", []string{"hero"}, "add", "msg", "urgent", ErrInvalidPriority},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeNotificationStore{}
			svc := NewNotificationService(store, nil)

			_, err := svc.Dispatch(context.Background(), tc.sections, tc.action, tc.message, tc.priority)
			assert.ErrorIs(t, err, tc.wantErr)
			// A rejected dispatch leaves no partial record behind.
			assert.Empty(t, store.rows)
		})
	}
}

func TestDispatchSurfacesStoreFailure(t *testing.T) {
	store := &fakeNotificationStore{insertErr: errors.New("table is full")}
	svc := NewNotificationService(store, nil)

	_, err := svc.Dispatch(context.Background(), []string{"hero"}, "add", "msg", "low")
	assert.Error(t, err)
}

func pendingNotification(id, message string, action model.NotificationAction, priority model.NotificationPriority, sections ...string) model.Notification {
	return model.Notification{
		ID:        id,
		Sections:  sections,
		Action:    action,
		Message:   message,
		Priority:  priority,
		Status:    model.NotificationPending,
		CreatedAt: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}
}

func TestPendingCountGroupsDuplicates(t *testing.T) {
	store := &fakeNotificationStore{rows: []model.Notification{
		// Same change request dispatched twice over different sections.
		pendingNotification("n1", "Updated pricing", model.ActionEdit, model.PriorityHigh, "pricing"),
		pendingNotification("n2", "Updated pricing", model.ActionEdit, model.PriorityHigh, "hero", "footer"),
		// Different message, so a separate unit of work.
		pendingNotification("n3", "Removed old gallery", model.ActionDelete, model.PriorityLow, "gallery"),
	}}
	svc := NewNotificationService(store, nil)

	n, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPendingCountIgnoresReadRows(t *testing.T) {
	read := pendingNotification("n1", "Old news", model.ActionAdd, model.PriorityLow, "hero")
	read.Status = model.NotificationRead
	store := &fakeNotificationStore{rows: []model.Notification{
		read,
		pendingNotification("n2", "Fresh change", model.ActionEdit, model.PriorityMedium, "hero"),
	}}
	svc := NewNotificationService(store, nil)

	n, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPendingCountDistinguishesPriority(t *testing.T) {
	store := &fakeNotificationStore{rows: []model.Notification{
		pendingNotification("n1", "Same text", model.ActionEdit, model.PriorityLow, "hero"),
		pendingNotification("n2", "Same text", model.ActionEdit, model.PriorityHigh, "hero"),
	}}
	svc := NewNotificationService(store, nil)

	n, err := svc.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMarkReadAndDeletePassThrough(t *testing.T) {
	store := &fakeNotificationStore{rows: []model.Notification{
		pendingNotification("n1", "msg", model.ActionAdd, model.PriorityLow, "hero"),
	}}
	svc := NewNotificationService(store, nil)

	require.NoError(t, svc.MarkRead(context.Background(), "n1"))
	assert.Equal(t, model.NotificationRead, store.rows[0].Status)
	assert.ErrorIs(t, svc.MarkRead(context.Background(), "missing"), repository.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), "n1"))
	assert.Empty(t, store.rows)
	assert.ErrorIs(t, svc.Delete(context.Background(), "n1"), repository.ErrNotFound)
}
