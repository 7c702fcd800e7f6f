// Package apperr defines the error taxonomy shared by the storage layer,
// the streak engine and the data facade. Callers classify failures with
// errors.Is against the sentinels below.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced entity is absent from the store.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable indicates the persistence layer cannot be reached or is
	// full. Recoverable: callers keep their in-memory state and may retry.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrInvalid indicates malformed input to a creation or update call.
	ErrInvalid = errors.New("invalid input")
)

// NotFound wraps ErrNotFound with a description of the missing entity.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// Unavailable marks err as a recoverable storage failure.
func Unavailable(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Invalid wraps ErrInvalid with a reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...)
}
