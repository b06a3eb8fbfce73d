package domain

import "errors"

// Core error kinds. Services and handlers match these with errors.Is and
// translate them at the API boundary; the domain never produces user-facing
// messages beyond these.
var (
	// ErrInvalidTransition is returned for an illegal session state change,
	// e.g. starting a session that is not in the scheduled state.
	ErrInvalidTransition = errors.New("invalid session state transition")

	// ErrSessionImmutable is returned by every mutation entry point once a
	// session has reached a terminal state (completed or cancelled).
	ErrSessionImmutable = errors.New("session is completed or cancelled and cannot be modified")

	// ErrNotFound is returned when an operation references an unknown
	// exercise or set id within a session.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for out-of-range field values, e.g. reps < 1
	// or a negative weight.
	ErrValidation = errors.New("validation failed")
)
