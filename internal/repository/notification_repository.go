package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// NotificationRepo persists section-change requests in the `notifications`
// table. The sections set is stored as a single JSON array column so that
// one request spanning many sections stays one row; the deduplicated
// pending count depends on that.
type NotificationRepo struct{ DB *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

const notificationCols = "id, sections, action, message, priority, status, created_at"

func scanNotification(row interface{ Scan(...any) error }) (model.Notification, error) {
	var (
		n        model.Notification
		sections []byte
	)
	err := row.Scan(&n.ID, &sections, &n.Action, &n.Message, &n.Priority, &n.Status, &n.CreatedAt)
	if err != nil {
		return model.Notification{}, err
	}
	if err := json.Unmarshal(sections, &n.Sections); err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// Insert writes exactly one row for a change request, whatever the number
// of targeted sections.
func (r *NotificationRepo) Insert(ctx context.Context, n model.Notification) error {
	sections, err := json.Marshal(n.Sections)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO notifications (id, sections, action, message, priority, status, created_at)
		 VALUES (?,?,?,?,?,?,?)`,
		n.ID, sections, string(n.Action), n.Message, string(n.Priority), string(n.Status), n.CreatedAt)
	return err
}

// List returns notifications newest first, optionally filtered by status.
func (r *NotificationRepo) List(ctx context.Context, status *model.NotificationStatus) ([]model.Notification, error) {
	q := "SELECT " + notificationCols + " FROM notifications"
	var args []any
	if status != nil {
		q += " WHERE status = ?"
		args = append(args, string(*status))
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flips a notification to READ. Marking an already-read record is
// a no-op, not an error; only a missing id yields ErrNotFound.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET status = ? WHERE id = ?", string(model.NotificationRead), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var one int
	err = r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM notifications WHERE id = ? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Delete permanently removes a notification.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
