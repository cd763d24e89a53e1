package model

import (
	"strings"
	"time"
)

// NotificationAction describes what the super admin wants done to the
// targeted sections.
type NotificationAction string

const (
	ActionAdd    NotificationAction = "add"
	ActionEdit   NotificationAction = "edit"
	ActionDelete NotificationAction = "delete"
)

// ParseAction normalizes a raw action value against the action enum.
func ParseAction(raw string) (NotificationAction, bool) {
	switch NotificationAction(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionAdd:
		return ActionAdd, true
	case ActionEdit:
		return ActionEdit, true
	case ActionDelete:
		return ActionDelete, true
	}
	return "", false
}

// NotificationPriority ranks a change request for the admin's queue.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
)

// ParsePriority normalizes a raw priority value against the priority enum.
func ParsePriority(raw string) (NotificationPriority, bool) {
	switch NotificationPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return "", false
}

// NotificationStatus tracks whether an admin has handled a change request.
type NotificationStatus string

const (
	NotificationPending NotificationStatus = "PENDING"
	NotificationRead    NotificationStatus = "READ"
)

// ParseNotificationStatus normalizes a raw notification status value.
func ParseNotificationStatus(raw string) (NotificationStatus, bool) {
	switch NotificationStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case NotificationPending:
		return NotificationPending, true
	case NotificationRead:
		return NotificationRead, true
	}
	return "", false
}

// Notification is one structural change request issued by the super admin.
// A request that targets several sections is stored as a single record with
// a multi-member Sections set; fanning it out into per-section rows would
// corrupt the deduplicated pending count.
type Notification struct {
	ID        string               `json:"id"`
	Sections  []string             `json:"sections"` // non-empty set of section names
	Action    NotificationAction   `json:"action"`
	Message   string               `json:"message"`
	Priority  NotificationPriority `json:"priority"`
	Status    NotificationStatus   `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}
