package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound       = errors.New("resource not found")
	ErrColumnNotFound = fmt.Errorf("%w: column", ErrNotFound)

	// Load errors
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyDataset      = errors.New("dataset has no rows")

	// Selection errors surfaced inline next to a cursor
	ErrEmptySelection      = errors.New("select a waveform")
	ErrNonNumericSelection = errors.New("selected only numeric waveforms")

	// Chart errors surfaced inline in the chart area
	ErrChartBuild = errors.New("cannot draw current waveforms")

	// Range errors
	ErrRangeOutOfBounds = errors.New("cursor range outside index bounds")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewFormatError(name string, contentType string) error {
	return fmt.Errorf("%w: %s (%s)", ErrUnsupportedFormat, name, contentType)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsSelectionError reports the recoverable selection failures
func IsSelectionError(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrNonNumericSelection)
}
