package region

import "errors"

var (
	// ErrOutOfRange indicates an index or address outside [0, N) of the region.
	ErrOutOfRange = errors.New("region: out of range")

	// ErrInvalidSize indicates a non-positive region size at construction.
	ErrInvalidSize = errors.New("region: size must be positive")

	// ErrClosed indicates use of a region after Close.
	ErrClosed = errors.New("region: closed")
)
