package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrInputMissing indicates the mandatory recipe CSV does not exist
	ErrInputMissing = errors.New("input file not found")

	// ErrMissingColumn indicates a required CSV column is absent from the header
	ErrMissingColumn = errors.New("missing required column")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStageOrder indicates a build stage was entered out of sequence
	ErrStageOrder = errors.New("build stage out of order")
)
