package application

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrConflict is returned when a write collides with existing state, such
	// as an overlapping booking interval or a duplicate email address.
	ErrConflict = errors.New("application: conflict")
	// ErrUnauthenticated is returned for every session validation failure so
	// callers cannot distinguish expiry, revocation, or a missing principal.
	ErrUnauthenticated = errors.New("application: unauthenticated")
	// ErrInvalidCredentials is returned when sign-in credentials do not match.
	ErrInvalidCredentials = errors.New("application: invalid credentials")
	// ErrTokenExpired marks a structurally valid credential past its expiry.
	// It is logged internally; callers see ErrUnauthenticated.
	ErrTokenExpired = errors.New("application: token expired")
	// ErrTokenRevoked marks a signed-out credential. It is logged internally;
	// callers see ErrUnauthenticated.
	ErrTokenRevoked = errors.New("application: token revoked")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}
