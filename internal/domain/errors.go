package domain

import "errors"

var (
	// ErrInvalidAccessCode is returned when a submitted code is unknown or expired.
	ErrInvalidAccessCode = errors.New("invalid access code")

	// ErrPermissionDenied is returned when the active grant does not allow an action.
	ErrPermissionDenied = errors.New("access code does not permit this action")

	// ErrCommandRequired is returned when a command request carries no command text.
	ErrCommandRequired = errors.New("command required")

	// ErrNotFound is returned by the state store for missing keys.
	ErrNotFound = errors.New("key not found")

	// ErrTwitterUnavailable is returned when the Twitter API rejects or fails a call.
	ErrTwitterUnavailable = errors.New("twitter api call failed")
)
