package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// TaxiRepo reads and writes the `taxi_bookings` table. The taxi form is
// the most divergent write path: no email, no children field (the whole
// party is a single passenger_count), and a pickup/drop location pair.
// The vehicle type stands in as the canonical subject reference.
type TaxiRepo struct{ DB *sql.DB }

func NewTaxiRepo(db *sql.DB) *TaxiRepo { return &TaxiRepo{DB: db} }

func (r *TaxiRepo) Source() model.Source { return model.SourceTaxi }

const taxiCols = "id, vehicle_type, passenger_name, passenger_phone, passenger_count, " +
	"pickup_date, pickup_time, pickup_location, drop_location, status, created_at"

func scanTaxi(row interface{ Scan(...any) error }) (model.Booking, error) {
	var (
		b          model.Booking
		pickupTime sql.NullString
		pickup     string
		drop       string
	)
	b.Source = model.SourceTaxi
	err := row.Scan(&b.ID, &b.SubjectRef, &b.Contact.Name, &b.Contact.Phone,
		&b.Party.Adults, &b.Schedule.StartDate, &pickupTime, &pickup, &drop,
		&b.Status, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if pickupTime.Valid {
		t := pickupTime.String
		b.Schedule.StartTime = &t
	}
	b.Schedule.PickupPoint = &pickup
	b.Schedule.DropOff = &drop
	return b, nil
}

// List returns taxi bookings normalized into the canonical shape, newest
// first. The date filter matches the ride's pickup date.
func (r *TaxiRepo) List(ctx context.Context, status *model.Status, onDate *time.Time) ([]model.Booking, error) {
	q := "SELECT " + taxiCols + " FROM taxi_bookings"
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
		b, err := scanTaxi(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *TaxiRepo) Get(ctx context.Context, id string) (model.Booking, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+taxiCols+" FROM taxi_bookings WHERE id = ? LIMIT 1", id)
	b, err := scanTaxi(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Booking{}, ErrNotFound
	}
	return b, err
}

func (r *TaxiRepo) Create(ctx context.Context, b *model.Booking) error {
	var pickup, drop string
	if b.Schedule.PickupPoint != nil {
		pickup = *b.Schedule.PickupPoint
	}
	if b.Schedule.DropOff != nil {
		drop = *b.Schedule.DropOff
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO taxi_bookings
		 (id, vehicle_type, passenger_name, passenger_phone, passenger_count, pickup_date, pickup_time, pickup_location, drop_location, status, created_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		b.ID, b.SubjectRef, b.Contact.Name, b.Contact.Phone, b.Party.Adults,
		b.Schedule.StartDate.Format("2006-01-02"), b.Schedule.StartTime,
		pickup, drop, string(b.Status), b.CreatedAt)
	return err
}

func (r *TaxiRepo) UpdateStatus(ctx context.Context, id string, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE taxi_bookings SET status = ? WHERE id = ?", string(status), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	return r.exists(ctx, id)
}

func (r *TaxiRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM taxi_bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaxiRepo) exists(ctx context.Context, id string) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM taxi_bookings WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
