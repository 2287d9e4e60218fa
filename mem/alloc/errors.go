package alloc

import "errors"

var (
	// ErrInvalidSize indicates a non-positive size or one larger than the region.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrOutOfMemory indicates no free run large enough exists, even after compaction.
	ErrOutOfMemory = errors.New("alloc: no free run large enough")

	// ErrInvalidAddress indicates a handle outside the region, or a range that
	// would run past its end.
	ErrInvalidAddress = errors.New("alloc: invalid address")

	// ErrBadFree indicates a free that does not match a live allocation.
	// Only reported when Options.TrackSizes is set.
	ErrBadFree = errors.New("alloc: free does not match a live allocation")
)
