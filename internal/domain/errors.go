package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain operations
var (
	// ErrNetwork indicates the catalogue service could not be reached
	ErrNetwork = errors.New("catalogue service is unreachable")

	// ErrRemote indicates the catalogue service answered with a failure
	ErrRemote = errors.New("catalogue service returned an error")

	// ErrDecode indicates a response did not match the expected shape
	ErrDecode = errors.New("unexpected catalogue response")

	// ErrNotFound indicates the requested movie does not exist
	ErrNotFound = errors.New("movie not found")

	// ErrInvalidQuery indicates a query is missing a required field
	ErrInvalidQuery = errors.New("invalid catalogue query")

	// ErrStorage indicates durable session storage failed
	ErrStorage = errors.New("session storage failed")
)

// RemoteError is returned when the catalogue service responds with a non-2xx status
type RemoteError struct {
	StatusCode    int    // HTTP status
	Code          int    // Service-specific status_code, 0 if absent
	StatusMessage string // Service-specific status_message, may be empty
}

func (e *RemoteError) Error() string {
	if e.StatusMessage == "" {
		return fmt.Sprintf("catalogue returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("catalogue returned HTTP %d: %s", e.StatusCode, e.StatusMessage)
}

// Is matches ErrRemote, and ErrNotFound for 404 responses
func (e *RemoteError) Is(target error) bool {
	switch target {
	case ErrRemote:
		return true
	case ErrNotFound:
		return e.StatusCode == 404
	}
	return false
}

// DecodeError is returned when a response cannot be mapped to domain values
type DecodeError struct {
	Path  string // Request path the payload came from
	Field string // Offending field, empty for malformed JSON
	Err   error  // Underlying cause, may be nil
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("decode %s: field %s: %v", e.Path, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode %s: missing field %s", e.Path, e.Field)
	default:
		return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
	}
}

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

func (e *DecodeError) Unwrap() error { return e.Err }
