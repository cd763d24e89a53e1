// Package repository implements data access over the per-source booking
// tables, the notifications table and the back-office account tables. The
// five booking sources grew out of independent form write paths and share
// no schema; each repository knows its own column names and normalizes
// rows into the canonical model.Booking at scan time.
package repository

import "errors"

// ErrNotFound is returned when an id does not exist in the repository's
// own table. Handlers translate it into an HTTP 404. It deliberately says
// nothing about other sources: an id is only meaningful within the source
// that issued it.
var ErrNotFound = errors.New("record not found")

// ErrEmailExists is returned when creating a user with a taken email.
var ErrEmailExists = errors.New("email already exists")
