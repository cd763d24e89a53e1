package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// DayTourRepo reads and writes the `day_tour_bookings` table. The day-tour
// form is the oldest write path and named its columns after the pickup
// flow (pickup_date, pickup_time) rather than the start_date used by the
// later forms.
type DayTourRepo struct{ DB *sql.DB }

func NewDayTourRepo(db *sql.DB) *DayTourRepo { return &DayTourRepo{DB: db} }

// Source reports the provenance tag stamped on every normalized record.
func (r *DayTourRepo) Source() model.Source { return model.SourceDay }

const dayTourCols = "id, tour_slug, customer_name, customer_email, customer_phone, " +
	"adults, children, pickup_date, pickup_time, status, created_at"

func scanDayTour(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b          model.Booking
		pickupTime sql.NullString
	)
	b.Source = model.SourceDay
	err := row.Scan(&b.ID, &b.SubjectRef, &b.Contact.Name, &b.Contact.Email,
		&b.Contact.Phone, &b.Party.Adults, &b.Party.Children,
		&b.Schedule.StartDate, &pickupTime, &b.Status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if pickupTime.Valid {
		t := pickupTime.String
		b.Schedule.StartTime = &t
	}
	return b, nil
}

// List returns day-tour bookings normalized into the canonical shape,
// newest first. Both filters are optional; the date filter matches the
// tour's pickup date, not the submission time.
func (r *DayTourRepo) List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	q := "SELECT " + dayTourCols + " FROM day_tour_bookings"
	var (
		conds []string
		args  []any
	)
	if status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*status))
	}
	if onDate != nil {
		conds = append(conds, "pickup_date = ?")
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
		b, err := scanDayTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Get fetches a single booking by its id within this source.
func (r *DayTourRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+dayTourCols+" FROM day_tour_bookings WHERE id = ? LIMIT 1", id)
	b, err := scanDayTour(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

// Create persists a new form submission. The caller supplies the id,
// PENDING status and creation timestamp.
func (r *DayTourRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO day_tour_bookings
		 (id, tour_slug, customer_name, customer_email, customer_phone, adults, children, pickup_date, pickup_time, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.SubjectRef, b.Contact.Name, b.Contact.Email, b.Contact.Phone,
		b.Party.Adults, b.Party.Children, b.Schedule.StartDate.Format("2006-01-02"),
		b.Schedule.StartTime, string(b.Status), b.CreatedAt)
	return err
}

// UpdateStatus writes a new status for one booking. MySQL reports zero
// affected rows both for a missing id and for a no-op write, so a miss is
// confirmed with an existence check before returning ErrNotFound.
func (r *DayTourRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE day_tour_bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

// Delete permanently removes a booking.
func (r *DayTourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM day_tour_bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DayTourRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM day_tour_bookings WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
