package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonscape/tour-backoffice/internal/model"
	"github.com/ceylonscape/tour-backoffice/internal/repository"
	"github.com/ceylonscape/tour-backoffice/internal/service"
)

type stubNotificationStore struct {
	rows []model.Notification
}

func (s *stubNotificationStore) Insert(_ context.Context, n model.Notification) error {
	s.rows = append(s.rows, n)
	return nil
}

func (s *stubNotificationStore) List(_ context.Context, status *model.NotificationStatus) ([]model.Notification, error) {
	out := make([]model.Notification, 0, len(s.rows))
	for _, n := range s.rows {
		if status != nil && n.Status != *status {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *stubNotificationStore) MarkRead(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = model.NotificationRead
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *stubNotificationStore) Delete(_ context.Context, id string) error {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newNotificationHandler(store *stubNotificationStore) *NotificationHandler {
	return NewNotificationHandler(service.NewNotificationService(store, nil))
}

func TestNotificationDispatch(t *testing.T) {
	store := &stubNotificationStore{}
	h := newNotificationHandler(store)

	body := `{"sections":["hero","pricing"],"action":"edit","message":"Seasonal prices updated","priority":"high"}`
	c, rec := testContext(http.MethodPost, "/v1/notifications", body)
	require.NoError(t, h.Dispatch(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.rows, 1)
	assert.Equal(t, []string{"hero", "pricing"}, store.rows[0].Sections)
}

func TestNotificationDispatchValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no sections", `{"sections":[],"action":"edit","message":"m","priority":"low"}`},
		{"blank message", `{"sections":["hero"],"action":"edit","message":"  ","priority":"low"}`},
		{"bad action", `{"sections":["hero"],"action":"publish","message":"m","priority":"low"}`},
		{"bad priority", `{"sections":["hero"],"action":"edit","message":"m","priority":"urgent"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubNotificationStore{}
			h := newNotificationHandler(store)
			c, rec := testContext(http.MethodPost, "/v1/notifications", tc.body)
			require.NoError(t, h.Dispatch(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, store.rows)
		})
	}
}

func TestNotificationPendingCount(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &stubNotificationStore{rows: []model.Notification{
		{ID: "n1", Sections: []string{"hero"}, Action: model.ActionEdit, Message: "same", Priority: model.PriorityHigh, Status: model.NotificationPending, CreatedAt: at},
		{ID: "n2", Sections: []string{"pricing"}, Action: model.ActionEdit, Message: "same", Priority: model.PriorityHigh, Status: model.NotificationPending, CreatedAt: at},
		{ID: "n3", Sections: []string{"hero"}, Action: model.ActionAdd, Message: "other", Priority: model.PriorityLow, Status: model.NotificationPending, CreatedAt: at},
	}}
	h := newNotificationHandler(store)

	c, rec := testContext(http.MethodGet, "/v1/notifications/pending-count", "")
	require.NoError(t, h.PendingCount(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Pending int `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Pending)
}

func TestNotificationListWithStatusFilter(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &stubNotificationStore{rows: []model.Notification{
		{ID: "n1", Sections: []string{"hero"}, Action: model.ActionAdd, Message: "a", Priority: model.PriorityLow, Status: model.NotificationPending, CreatedAt: at},
		{ID: "n2", Sections: []string{"hero"}, Action: model.ActionAdd, Message: "b", Priority: model.PriorityLow, Status: model.NotificationRead, CreatedAt: at},
	}}
	h := newNotificationHandler(store)

	c, rec := testContext(http.MethodGet, "/v1/notifications?status=READ", "")
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []model.Notification `json:"items"`
		Count int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "n2", resp.Items[0].ID)

	c, rec = testContext(http.MethodGet, "/v1/notifications?status=ARCHIVED", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationMarkReadAndDelete(t *testing.T) {
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	store := &stubNotificationStore{rows: []model.Notification{
		{ID: "n1", Sections: []string{"hero"}, Action: model.ActionAdd, Message: "a", Priority: model.PriorityLow, Status: model.NotificationPending, CreatedAt: at},
	}}
	h := newNotificationHandler(store)

	c, rec := testContext(http.MethodPatch, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("n1")
	require.NoError(t, h.MarkRead(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, model.NotificationRead, store.rows[0].Status)

	c, rec = testContext(http.MethodPatch, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, h.MarkRead(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = testContext(http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("n1")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, store.rows)
}
