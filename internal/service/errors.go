// Package service holds the reconciliation and notification core: the
// source adapter registry, the booking reconciler, the status transition
// service, notification dispatch with its deduplicated pending count, and
// the session guard that gates all of it.
package service

import (
	"errors"
	"fmt"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

// Validation errors. All of them are raised before any write reaches an
// adapter; handlers translate them into HTTP 400.
var (
	ErrInvalidSource     = errors.New("unknown booking source")
	ErrInvalidStatus     = errors.New("invalid booking status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrEmptySections     = errors.New("sections must not be empty")
	ErrEmptyMessage      = errors.New("message must not be empty")
	ErrInvalidAction     = errors.New("invalid notification action")
	ErrInvalidPriority   = errors.New("invalid notification priority")
)

// ErrSessionInvalidated is returned for gated operations attempted while
// the session guard is in the unauthenticated state.
var ErrSessionInvalidated = errors.New("session invalidated")

// UpstreamWriteError wraps a mutation failure from a source adapter. The
// underlying error is surfaced unmodified through Unwrap; this layer does
// not retry. Handlers translate it into HTTP 502.
type UpstreamWriteError struct {
	Source model.Source
	Err    error
}

func (e *UpstreamWriteError) Error() string {
	return fmt.Sprintf("source %s: upstream write failed: %v", e.Source, e.Err)
}

func (e *UpstreamWriteError) Unwrap() error { return e.Err }
