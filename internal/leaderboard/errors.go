package leaderboard

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned for names that are empty after trimming.
	ErrInvalidName = errors.New("leaderboard: name must not be empty")

	// ErrInvalidScore is returned for negative scores.
	ErrInvalidScore = errors.New("leaderboard: score must not be negative")

	// ErrRosterFull is reported when a new name cannot join a full roster.
	ErrRosterFull = errors.New("leaderboard: roster is full")

	// ErrStorage is reported when the device store could not be read or written.
	ErrStorage = errors.New("leaderboard: local store unavailable")

	errRejected       = errors.New("leaderboard: submission rejected")
	errTooManyEntries = fmt.Errorf("leaderboard: roster holds more than %d entries", MaxPlayers)
	errDuplicateName  = errors.New("leaderboard: duplicate name in roster")
)

// NetworkErrorKind classifies why a remote call failed.
type NetworkErrorKind string

const (
	KindTimeout    NetworkErrorKind = "timeout"
	KindConnection NetworkErrorKind = "connection"
	KindStatus     NetworkErrorKind = "status"
	KindDecode     NetworkErrorKind = "decode"
)

// NetworkError is returned by remote sources for any failed call:
// deadline exceeded, transport failure, non-2xx status or a malformed body.
type NetworkError struct {
	Op     string           // list, submit, winner, reset
	Kind   NetworkErrorKind // failure class
	Status int              // HTTP status for KindStatus, 0 otherwise
	Err    error            // underlying cause, may be nil
}

// Error implements error.
func (e *NetworkError) Error() string {
	msg := fmt.Sprintf("leaderboard: %s: %s", e.Op, e.Kind)
	if e.Kind == KindStatus {
		msg += fmt.Sprintf(" %d", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the call was aborted by its deadline.
func (e *NetworkError) Timeout() bool {
	return e.Kind == KindTimeout
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
