package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// EventTourRepo reads and writes the `event_bookings` table. The event
// form speaks of contacts and attendees (contact_name, attendee_adults)
// and dates the booking by event_date with an optional start time.
type EventTourRepo struct{ DB *sql.DB }

func NewEventTourRepo(db *sql.DB) *EventTourRepo { return &EventTourRepo{DB: db} }

func (r *EventTourRepo) Source() model.Source { return model.SourceEvent }

const eventTourCols = "id, event_slug, contact_name, contact_email, contact_phone, " +
	"attendee_adults, attendee_children, event_date, event_time, status, created_at"

func scanEventTour(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b         model.Booking
		eventTime sql.NullString
	)
	b.Source = model.SourceEvent
	err := row.Scan(&b.ID, &b.SubjectRef, &b.Contact.Name, &b.Contact.Email,
		&b.Contact.Phone, &b.Party.Adults, &b.Party.Children,
		&b.Schedule.StartDate, &eventTime, &b.Status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if eventTime.Valid {
		t := eventTime.String
		b.Schedule.StartTime = &t
	}
	return b, nil
}

// List returns event-tour bookings normalized into the canonical shape,
// newest first. The date filter matches the event date.
func (r *EventTourRepo) List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	q := "SELECT " + eventTourCols + " FROM event_bookings"
	var (
		conds []string
		args  []any
	)
	if status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*status))
	}
	if onDate != nil {
		conds = append(conds, "event_date = ?")
		args = append(args, onDate.Format("2006-01-02"))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Booking
	for rows.Next() {
		b, err := scanEventTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *EventTourRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+eventTourCols+" FROM event_bookings WHERE id = ? LIMIT 1", id)
	b, err := scanEventTour(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *EventTourRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO event_bookings
		 (id, event_slug, contact_name, contact_email, contact_phone, attendee_adults, attendee_children, event_date, event_time, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.SubjectRef, b.Contact.Name, b.Contact.Email, b.Contact.Phone,
		b.Party.Adults, b.Party.Children, b.Schedule.StartDate.Format("2006-01-02"),
		b.Schedule.StartTime, string(b.Status), b.CreatedAt)
	return err
}

func (r *EventTourRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE event_bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

func (r *EventTourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM event_bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventTourRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM event_bookings WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
