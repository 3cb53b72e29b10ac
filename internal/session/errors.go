package session

import "errors"

var (
	// ErrNoTool is returned for map clicks while no tool is armed. It is
	// informational.
	ErrNoTool = errors.New("no shape selected")
	// ErrInvalidRadius is a user-input validation failure.
	ErrInvalidRadius = errors.New("invalid input")
	// ErrInputPending is returned for map clicks while a prompt is open.
	ErrInputPending = errors.New("input pending")
	// ErrNoPendingInput is returned when resolving a request that is not
	// the pending one.
	ErrNoPendingInput = errors.New("no pending input")
)
