package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// GenericTourRepo reads and writes the `tailor_bookings` table backing the
// tailor-made enquiry form. Instead of referencing a published tour it
// carries a free-text tour_type tag ("day", "honeymoon", ...), which
// becomes the canonical subject reference. A tailor booking tagged
// tour_type="day" is still a generic-source record; it never migrates
// into the day-tour table.
type GenericTourRepo struct{ DB *sql.DB }

func NewGenericTourRepo(db *sql.DB) *GenericTourRepo { return &GenericTourRepo{DB: db} }

func (r *GenericTourRepo) Source() model.Source { return model.SourceGeneric }

const genericTourCols = "id, tour_type, name, email, phone, adults, kids, start_date, status, created_at"

func scanGenericTour(row interface{ Scan(...any) error }) (model.Booking, error) {
	var b model.Booking
	b.Source = model.SourceGeneric
	err := row.Scan(&b.ID, &b.SubjectRef, &b.Contact.Name, &b.Contact.Email,
		&b.Contact.Phone, &b.Party.Adults, &b.Party.Children,
		&b.Schedule.StartDate, &b.Status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// List returns tailor-made bookings normalized into the canonical shape,
// newest first.
func (r *GenericTourRepo) List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	q := "SELECT " + genericTourCols + " FROM tailor_bookings"
	var (
		conds []string
		args  []any
	)
	if status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*status))
	}
	if onDate != nil {
		conds = append(conds, "start_date = ?")
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
		b, err := scanGenericTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *GenericTourRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+genericTourCols+" FROM tailor_bookings WHERE id = ? LIMIT 1", id)
	b, err := scanGenericTour(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *GenericTourRepo) Create(ctx context.Context, b *model.Booking) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO tailor_bookings
		 (id, tour_type, name, email, phone, adults, kids, start_date, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.SubjectRef, b.Contact.Name, b.Contact.Email, b.Contact.Phone,
		b.Party.Adults, b.Party.Children, b.Schedule.StartDate.Format("2006-01-02"),
		string(b.Status), b.CreatedAt)
	return err
}

func (r *GenericTourRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tailor_bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

func (r *GenericTourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tailor_bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GenericTourRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM tailor_bookings WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
