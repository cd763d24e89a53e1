// Package queue defines the audit event payloads exchanged over the
// message broker and the consumer that records them. Events are internal
// back-office plumbing: admin clients still learn about changes by
// polling, never by push.
package queue

// Queue names double as routing keys on the default exchange.
const (
	BookingStatusChangedQueue   = "booking.status_changed"
	NotificationDispatchedQueue = "notification.dispatched"
)

// BookingStatusChangedEvent is published after a status transition has
// been applied by a source adapter.
type BookingStatusChangedEvent struct {
	Source    string `json:"source"`
	BookingID string `json:"booking_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Override  bool   `json:"override,omitempty"`
	ChangedAt string `json:"changed_at"`
}

// NotificationDispatchedEvent is published after a section-change request
// has been persisted.
type NotificationDispatchedEvent struct {
	NotificationID string   `json:"notification_id"`
	Sections       []string `json:"sections"`
	Action         string   `json:"action"`
	Priority       string   `json:"priority"`
	Message        string   `json:"message"`
	DispatchedAt   string   `json:"dispatched_at"`
}
