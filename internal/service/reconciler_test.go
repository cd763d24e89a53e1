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

// fakeAdapter is an in-memory SourceAdapter shared by the service tests.
type fakeAdapter struct {
	src  model.Source
	rows []model.Booking

	listErr   error
	updateErr error
	deleteErr error
	createErr error

	updateCalls int
	deleteCalls int
	created     []model.Booking
}

func (f *fakeAdapter) Source() model.Source { return f.src }

func (f *fakeAdapter) List(_ context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Booking, 0, len(f.rows))
	for _, b := range f.rows {
		if status != nil && b.Status != *status {
			continue
		}
		if onDate != nil && !b.Schedule.StartDate.Equal(*onDate) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeAdapter) Get(_ context.Context, id string) (model.Booking, error) {
	for _, b := range f.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return model.Booking{}, repository.ErrNotFound
}

func (f *fakeAdapter) Create(_ context.Context, b *model.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *b)
	f.rows = append(f.rows, *b)
	return nil
}

func (f *fakeAdapter) UpdateStatus(_ context.Context, id string, status model.Status) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeAdapter) Delete(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func bookingAt(src model.Source, id string, createdAt time.Time) model.Booking {
	return model.Booking{
		ID:        id,
		Source:    src,
		Status:    model.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestReconcileMergesNewestFirst(t *testing.T) {
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	// Each source holds part of the timeline; the merge must interleave.
	dayTours := &fakeAdapter{src: model.SourceDay, rows: []model.Booking{
		bookingAt(model.SourceDay, "d1", at(10, 0)),
		bookingAt(model.SourceDay, "d2", at(9, 0)),
	}}
	roundTours := &fakeAdapter{src: model.SourceRound, rows: []model.Booking{
		bookingAt(model.SourceRound, "r1", at(11, 0)),
	}}
	taxis := &fakeAdapter{src: model.SourceTaxi, rows: []model.Booking{
		bookingAt(model.SourceTaxi, "t1", at(10, 30)),
		bookingAt(model.SourceTaxi, "t2", at(9, 30)),
	}}

	r := NewReconciler(NewAdapterRegistry(dayTours, roundTours, taxis))
	res, err := r.Reconcile(context.Background(), BookingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 5)

	var ids []string
	for _, b := range res.Bookings {
		ids = append(ids, b.ID)
	}
	assert.Equal(t, []string{"r1", "t1", "d1", "t2", "d2"}, ids)
	assert.Empty(t, res.SourceErrors)

	// Every merged record keeps its provenance tag.
	for _, b := range res.Bookings {
		assert.NotEmpty(t, b.Source)
	}
}

func TestReconcileStableWithinSourceOnTies(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	a := &fakeAdapter{src: model.SourceDay, rows: []model.Booking{
		bookingAt(model.SourceDay, "first", ts),
		bookingAt(model.SourceDay, "second", ts),
	}}

	r := NewReconciler(NewAdapterRegistry(a))
	res, err := r.Reconcile(context.Background(), BookingFilter{})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 2)
	assert.Equal(t, "first", res.Bookings[0].ID)
	assert.Equal(t, "second", res.Bookings[1].ID)
}

func TestReconcileDegradesOnSourceFailure(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	healthy := &fakeAdapter{src: model.SourceDay, rows: []model.Booking{
		bookingAt(model.SourceDay, "d1", ts),
	}}
	broken := &fakeAdapter{src: model.SourceEvent, listErr: errors.New("connection refused")}

	r := NewReconciler(NewAdapterRegistry(healthy, broken))
	res, err := r.Reconcile(context.Background(), BookingFilter{})
	require.NoError(t, err)

	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "d1", res.Bookings[0].ID)
	require.Contains(t, res.SourceErrors, model.SourceEvent)
	assert.Contains(t, res.SourceErrors[model.SourceEvent], "connection refused")
}

func TestReconcileSourceFilter(t *testing.T) {
	ts := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	day := &fakeAdapter{src: model.SourceDay, rows: []model.Booking{bookingAt(model.SourceDay, "d1", ts)}}
	taxi := &fakeAdapter{src: model.SourceTaxi, rows: []model.Booking{bookingAt(model.SourceTaxi, "t1", ts.Add(time.Hour))}}

	r := NewReconciler(NewAdapterRegistry(day, taxi))
	src := model.SourceTaxi
	res, err := r.Reconcile(context.Background(), BookingFilter{Source: &src})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "t1", res.Bookings[0].ID)
}

func TestReconcileStatusAndDateFilters(t *testing.T) {
	onDate := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	approved := bookingAt(model.SourceDay, "a1", onDate.Add(8*time.Hour))
	approved.Status = model.StatusApproved
	approved.Schedule.StartDate = onDate
	pending := bookingAt(model.SourceDay, "p1", onDate.Add(9*time.Hour))
	pending.Schedule.StartDate = onDate.AddDate(0, 0, 1)

	day := &fakeAdapter{src: model.SourceDay, rows: []model.Booking{approved, pending}}
	r := NewReconciler(NewAdapterRegistry(day))

	st := model.StatusApproved
	res, err := r.Reconcile(context.Background(), BookingFilter{Status: &st})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "a1", res.Bookings[0].ID)

	res, err = r.Reconcile(context.Background(), BookingFilter{Date: &onDate})
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, "a1", res.Bookings[0].ID)
}
