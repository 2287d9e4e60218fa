package alloc

import (
	"log/slog"

	"github.com/joshuapare/memkit/mem/region"
)

// Allocator defines the operations a caller drives against a simulated region.
//
// Implementations:
//   - FirstFitAllocator: single-threaded first-fit allocator with compaction
//   - SafeAllocator: mutex-serialized wrapper around FirstFitAllocator
type Allocator interface {
	// Alloc reserves size contiguous units and returns the address of the first.
	Alloc(size int) (region.Addr, error)

	// Free releases size units starting at addr.
	Free(addr region.Addr, size int) error

	// Compact slides every occupied unit toward unit 0 and returns how many
	// units were relocated.
	Compact() int

	// Status returns a copy of the occupancy flags, one per unit.
	Status() []bool

	// Bytes returns the backing storage for [addr, addr+size).
	Bytes(addr region.Addr, size int) ([]byte, error)

	// Stats returns a snapshot of counters and fragmentation metrics.
	Stats() Stats

	// Base returns the address of unit 0.
	Base() region.Addr

	// Size returns the number of units in the region.
	Size() int

	// Close releases the region's backing storage.
	Close() error
}

// Options configures a FirstFitAllocator. A nil *Options selects the defaults.
type Options struct {
	// Logger receives debug records for every operation. Nil discards them.
	Logger *slog.Logger

	// TrackSizes records the size of every live allocation so that Free can
	// reject double frees and mismatched sizes with ErrBadFree.
	TrackSizes bool

	// KeepBytesInPlace makes Compact move occupancy flags only, leaving the
	// backing bytes where they were.
	KeepBytesInPlace bool
}
