package core

import "errors"

var (
	// ErrNotFound is returned by store implementations when a record does
	// not exist for the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrAlertNotFound is returned when a referenced alert does not exist.
	ErrAlertNotFound = errors.New("alert not found")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidAlertConfiguration indicates a request payload failed
	// validation. Nothing is persisted when it is returned.
	ErrInvalidAlertConfiguration = errors.New("invalid alert configuration")
)
