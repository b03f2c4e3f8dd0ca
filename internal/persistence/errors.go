package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrOverlap is returned by conditional booking writes when the candidate
	// interval intersects a stored booking.
	ErrOverlap = errors.New("persistence: interval overlaps existing booking")
	// ErrConstraintViolation is returned when a record is missing required
	// attributes or violates a schema constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
)
