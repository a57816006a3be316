package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	ErrMsgNotFound         = "entity not found"
	ErrMsgInvalidInput     = "invalid input"
	ErrMsgUnknownFoodType  = "unknown food type"
	ErrMsgUnknownOperation = "unknown operation"
)

// Common domain errors. Wrap with fmt.Errorf("...: %w", err) for context.
var (
	// ErrNotFound is returned when a (shop, foodType, id) lookup misses.
	ErrNotFound = errors.New(ErrMsgNotFound)

	ErrInvalidInput     = errors.New(ErrMsgInvalidInput)
	ErrUnknownFoodType  = errors.New(ErrMsgUnknownFoodType)
	ErrUnknownOperation = errors.New(ErrMsgUnknownOperation)
)
