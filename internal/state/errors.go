package state

import "errors"

var (
	// ErrInvalidInput wraps validation failures of store inputs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotSignedIn is returned by profile updates when no user is signed in.
	ErrNotSignedIn = errors.New("no user is signed in")

	// ErrUnsupportedVersion is returned when a persisted snapshot was written
	// by an incompatible version of the client.
	ErrUnsupportedVersion = errors.New("unsupported persisted state version")
)
