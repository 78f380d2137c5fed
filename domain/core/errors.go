package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Precondition errors: the pipeline refuses the input outright.
	ErrLengthMismatch = errors.New("series length mismatch")
	ErrWindowTooShort = errors.New("observation window too short")
	ErrNonFinite      = errors.New("non-finite sample in series")
	ErrRaggedGrid     = errors.New("grid rows have unequal lengths")
	ErrEmptyGrid      = errors.New("grid has no cells")

	// Lookup errors
	ErrNotFound       = errors.New("resource not found")
	ErrEventNotFound  = fmt.Errorf("%w: event series", ErrNotFound)
	ErrWindowNotFound = fmt.Errorf("%w: time window", ErrNotFound)
)

// Error constructors with context
func NewLengthMismatchError(got, want int) error {
	return fmt.Errorf("%w: got %d samples, want %d", ErrLengthMismatch, got, want)
}

func NewWindowTooShortError(got int) error {
	return fmt.Errorf("%w: %d samples, need at least 4 (2N with N > 1)", ErrWindowTooShort, got)
}

func NewNonFiniteError(index int) error {
	return fmt.Errorf("%w at index %d", ErrNonFinite, index)
}

// IsPreconditionError reports whether err is a fatal input violation rather
// than an expected analysis outcome.
func IsPreconditionError(err error) bool {
	return errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrWindowTooShort) ||
		errors.Is(err, ErrNonFinite) ||
		errors.Is(err, ErrRaggedGrid) ||
		errors.Is(err, ErrEmptyGrid)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
