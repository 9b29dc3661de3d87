package models

import "errors"

// Domain errors returned by the storage layer. Handlers map these onto
// HTTP status codes; anything else is reported as a generic server error.
var (
	// ErrNotFound covers both absent entities and entities owned by a
	// different user — the two are indistinguishable to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvestmentClosed is returned on any attempt to modify a holding
	// whose status is closed.
	ErrInvestmentClosed = errors.New("investment is closed")

	// ErrInvalidStatusTransition is returned when a transaction status
	// update violates the pending -> completed|rejected rule.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)
