package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repositories when a row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError lists the request fields that were missing or malformed.
// No side effects have been attempted when it is returned.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, ", ")
}

// ConflictError means the requested window overlaps an existing booking on
// the same station and date.
type ConflictError struct {
	Existing *Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("station %s already reserved %s on %s",
		e.Existing.StationID, e.Existing.Window(), e.Existing.StartDate.Format("2006-01-02"))
}

// SchedulingError wraps failures of the external job scheduler: unreachable,
// request rejected or timed out. No booking row exists when it is returned.
type SchedulingError struct {
	Op  string
	Err error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("scheduler %s: %v", e.Op, e.Err)
}

func (e *SchedulingError) Unwrap() error { return e.Err }

// StorageError wraps persistence failures.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
