package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// RoundTourRepo reads and writes the `round_tour_bookings` table. The
// round-tour form counts heads as adult_count/child_count and is the one
// source whose email field was optional, so the column is nullable here
// and normalizes to an empty canonical email.
type RoundTourRepo struct{ DB *sql.DB }

func NewRoundTourRepo(db *sql.DB) *RoundTourRepo { return &RoundTourRepo{DB: db} }

func (r *RoundTourRepo) Source() model.Source { return model.SourceRound }

const roundTourCols = "id, package_slug, full_name, email, phone, " +
	"adult_count, child_count, start_date, status, created_at"

func scanRoundTour(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b     model.Booking
		email sql.NullString
	)
	b.Source = model.SourceRound
	err := row.Scan(&b.ID, &b.SubjectRef, &b.Contact.Name, &email, &b.Contact.Phone,
		&b.Party.Adults, &b.Party.Children, &b.Schedule.StartDate, &b.Status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if email.Valid {
		b.Contact.Email = email.String
	}
	return b, nil
}

// List returns round-tour bookings normalized into the canonical shape,
// newest first. The date filter matches the package start date.
func (r *RoundTourRepo) List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	q := "SELECT " + roundTourCols + " FROM round_tour_bookings"
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
		b, err := scanRoundTour(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *RoundTourRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+roundTourCols+" FROM round_tour_bookings WHERE id = ? LIMIT 1", id)
	b, err := scanRoundTour(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *RoundTourRepo) Create(ctx context.Context, b *model.Booking) error {
	var email *string
	if b.Contact.Email != "" {
		email = &b.Contact.Email
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO round_tour_bookings
		 (id, package_slug, full_name, email, phone, adult_count, child_count, start_date, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.SubjectRef, b.Contact.Name, email, b.Contact.Phone,
		b.Party.Adults, b.Party.Children, b.Schedule.StartDate.Format("2006-01-02"),
		string(b.Status), b.CreatedAt)
	return err
}

func (r *RoundTourRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE round_tour_bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

func (r *RoundTourRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM round_tour_bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoundTourRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM round_tour_bookings WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
