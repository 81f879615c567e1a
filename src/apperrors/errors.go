package apperrors

import "errors"

// Sentinel errors shared by the services so HTTP controllers can map each
// failure to a stable response code. Services wrap them with fmt.Errorf("%w: ...")
// to attach detail.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound is returned when a referenced equipment item, reservation or user is missing.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the actor lacks rights over the target resource.
	ErrForbidden = errors.New("forbidden")

	// ErrInsufficientInventory is returned when an inventory adjustment would drive quantity below zero.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrAlreadyReturned is returned when a reservation has already been returned.
	ErrAlreadyReturned = errors.New("already returned")

	// ErrInvalidTransition is returned when a reservation is not in the status the operation requires.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict marks a duplicate unique key, e.g. an already registered email.
	ErrConflict = errors.New("conflict")
)
