package model

import (
	"strings"
	"time"
)

// Source identifies which booking collection a record originated from.
// Every booking carries its source for life; mutations are always routed
// back through the (source, id) pair, never a bare id, because ids are
// only unique within their own collection.
type Source string

const (
	SourceDay     Source = "day"     // scheduled day tours
	SourceRound   Source = "round"   // multi-day round-trip packages
	SourceGeneric Source = "generic" // tailor-made tours with a free-text tour type
	SourceEvent   Source = "event"   // event tours (festivals, matches, ...)
	SourceTaxi    Source = "taxi"    // point-to-point taxi rides
)

// Sources returns all known sources in their canonical registration order.
func Sources() []Source {
	return []Source{SourceDay, SourceRound, SourceGeneric, SourceEvent, SourceTaxi}
}

// ParseSource normalizes a raw source tag. The boolean reports whether the
// value is a member of the source enum.
func ParseSource(raw string) (Source, bool) {
	v := Source(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range Sources() {
		if v == s {
			return s, true
		}
	}
	return "", false
}

// Status is the canonical booking status shared by every source.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// ParseStatus normalizes a raw status value against the canonical enum.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, true
	case StatusApproved:
		return StatusApproved, true
	case StatusCancelled:
		return StatusCancelled, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// Contact holds the customer details captured by the marketing forms.
// Email may be empty for sources whose form never asked for one (taxi).
type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone"`
}

// Party is the travelling group size. Adults is at least 1; sources
// without a children field normalize to 0.
type Party struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Schedule carries the when/where of a booking. Everything except the
// start date is optional and only present for sources that collect it.
type Schedule struct {
	StartDate   time.Time `json:"start_date"`
	StartTime   *string   `json:"start_time,omitempty"`   // "15:04" wall clock
	PickupPoint *string   `json:"pickup_point,omitempty"` // taxi pickup location
	DropOff     *string   `json:"drop_off,omitempty"`     // taxi drop-off location
}

// Booking is the canonical, source-tagged shape produced by the reconciler.
// It exists only in memory: each source table keeps its own native columns
// and the repositories normalize at scan time. CreatedAt is the sole sort
// key across sources.
type Booking struct {
	ID         string   `json:"id"`
	Source     Source   `json:"source"`
	SubjectRef string   `json:"subject_ref"` // tour slug / tour type / vehicle type, owned by the content side
	Contact    Contact  `json:"contact"`
	Party      Party    `json:"party"`
	Schedule   Schedule `json:"schedule"`
	Status     Status   `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}
