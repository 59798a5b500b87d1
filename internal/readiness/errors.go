package readiness

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTask is returned when a report names an unknown task.
	ErrInvalidTask = errors.New("invalid task")
	// ErrSurfaceNotFound is returned when the host has no surface with the requested name.
	ErrSurfaceNotFound = errors.New("surface not found")
	// ErrSurfaceOperationFailed is returned when the host fails to hide or show a surface.
	ErrSurfaceOperationFailed = errors.New("surface operation failed")
)

// SurfaceError describes a failed step of the transition.
type SurfaceError struct {
	Surface string
	Op      string // find, hide or show
	Kind    error  // ErrSurfaceNotFound or ErrSurfaceOperationFailed
	Err     error  // host cause, nil for lookups
}

func (e *SurfaceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s surface %q: %v: %v", e.Op, e.Surface, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s surface %q: %v", e.Op, e.Surface, e.Kind)
}

func (e *SurfaceError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
