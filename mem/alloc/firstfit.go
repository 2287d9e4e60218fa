package alloc

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/mem/region"
)

// FirstFitAllocator hands out the lowest-addressed free run that fits a request.
// When no run fits but enough units are free in total, it compacts the region
// once and retries.
//
// Not goroutine-safe. Use SafeAllocator for concurrent access.
type FirstFitAllocator struct {
	r   *region.Region
	log *slog.Logger

	// keepBytes mirrors Options.KeepBytesInPlace.
	keepBytes bool

	// sizes maps the start offset of each live allocation to its length.
	// Nil unless Options.TrackSizes is set.
	sizes map[int]int

	stats allocatorStats
}

// allocatorStats holds internal operation counters.
type allocatorStats struct {
	AllocCalls    int // Total Alloc() calls
	AllocFailures int // Alloc() calls that returned an error
	AllocSlowPath int // Allocations that needed a compaction pass
	FreeCalls     int // Total Free() calls
	FreeFailures  int // Free() calls that returned an error
	Compactions   int // Compaction passes, direct or from Alloc
	UnitsMoved    int // Units relocated across all compactions
}

// NewFirstFit creates an allocator over a fresh region of size units.
func NewFirstFit(size int, opts *Options) (*FirstFitAllocator, error) {
	if opts == nil {
		opts = &Options{}
	}
	r, err := region.New(size)
	if err != nil {
		return nil, err
	}
	lg := opts.Logger
	if lg == nil {
		lg = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	fa := &FirstFitAllocator{
		r:         r,
		log:       lg.With("component", "alloc"),
		keepBytes: opts.KeepBytesInPlace,
	}
	if opts.TrackSizes {
		fa.sizes = make(map[int]int)
	}
	fa.log.Debug("region created", "units", size, "base", r.BaseAddress().String(),
		"track_sizes", opts.TrackSizes, "keep_bytes", opts.KeepBytesInPlace)
	return fa, nil
}

// Alloc reserves size contiguous units using first-fit.
//
// Either all size flags are marked or none are: InvalidSize and OutOfMemory
// failures leave the bitmap untouched.
func (fa *FirstFitAllocator) Alloc(size int) (region.Addr, error) {
	fa.stats.AllocCalls++
	n := fa.r.Size()
	if size <= 0 || size > n {
		fa.stats.AllocFailures++
		fa.log.Warn("alloc rejected", "size", size, "units", n)
		return 0, fmt.Errorf("%w: %d (region has %d units)", ErrInvalidSize, size, n)
	}

	start, ok := fa.findFreeRun(size)
	if !ok {
		// Compaction only merges existing free units, so it cannot help when
		// fewer than size are free. Failing here keeps the bitmap unchanged.
		free := n - fa.inUse()
		if free < size {
			fa.stats.AllocFailures++
			fa.log.Warn("alloc failed", "size", size, "free", free)
			return 0, fmt.Errorf("%w: need %d units, %d free", ErrOutOfMemory, size, free)
		}
		fa.stats.AllocSlowPath++
		fa.Compact()
		start, ok = fa.findFreeRun(size)
		if !ok {
			fa.stats.AllocFailures++
			fa.log.Warn("alloc failed after compaction", "size", size, "free", free)
			return 0, fmt.Errorf("%w: need %d units after compaction", ErrOutOfMemory, size)
		}
	}

	if err := fa.r.SetRange(start, size, true); err != nil {
		fa.stats.AllocFailures++
		return 0, err
	}
	if fa.sizes != nil {
		fa.sizes[start] = size
	}
	addr, err := fa.r.AddrOf(start)
	if err != nil {
		return 0, err
	}
	fa.log.Debug("alloc", "size", size, "offset", start, "addr", addr.String())
	return addr, nil
}

// Free clears the flags of [addr, addr+size).
//
// Without TrackSizes the range is cleared unconditionally: double frees and
// mismatched sizes are not detected. With TrackSizes, addr must be the start of
// a live allocation of exactly size units.
func (fa *FirstFitAllocator) Free(addr region.Addr, size int) error {
	fa.stats.FreeCalls++
	off, err := fa.validRange(addr, size)
	if err != nil {
		fa.stats.FreeFailures++
		fa.log.Warn("free rejected", "addr", addr.String(), "size", size, "error", err)
		return err
	}

	if fa.sizes != nil {
		want, ok := fa.sizes[off]
		if !ok {
			fa.stats.FreeFailures++
			return fmt.Errorf("%w: no allocation starts at offset %d", ErrBadFree, off)
		}
		if want != size {
			fa.stats.FreeFailures++
			return fmt.Errorf("%w: allocation at offset %d has %d units, got %d", ErrBadFree, off, want, size)
		}
		delete(fa.sizes, off)
	}

	if err := fa.r.SetRange(off, size, false); err != nil {
		fa.stats.FreeFailures++
		return err
	}
	fa.log.Debug("free", "size", size, "offset", off, "addr", addr.String())
	return nil
}

// Compact slides every occupied unit toward unit 0 in one left-to-right pass,
// preserving their relative order. The number of occupied units is unchanged.
// Returns the number of units relocated.
//
// Backing bytes move with their flags unless Options.KeepBytesInPlace is set.
// Addresses handed out before the pass may no longer designate their data.
func (fa *FirstFitAllocator) Compact() int {
	n := fa.r.Size()
	var moved map[int]int
	if fa.sizes != nil {
		moved = make(map[int]int, len(fa.sizes))
	}

	count, relocated := 0, 0
	for i := 0; i < n; i++ {
		if !fa.occupied(i) {
			count++
			continue
		}
		if sz, ok := fa.sizes[i]; ok {
			moved[i-count] = sz
		}
		if count == 0 {
			continue
		}
		if err := fa.r.Relocate(i, i-count, !fa.keepBytes); err != nil {
			// i and i-count are both in [0, n).
			panic(err)
		}
		relocated++
	}
	if fa.sizes != nil {
		fa.sizes = moved
	}

	fa.stats.Compactions++
	fa.stats.UnitsMoved += relocated
	fa.log.Info("compacted", "moved", relocated, "free", count)
	return relocated
}

// Status returns a copy of the occupancy flags.
func (fa *FirstFitAllocator) Status() []bool { return fa.r.Snapshot() }

// Bytes returns the backing storage of [addr, addr+size), validated like Free.
// The slice aliases the region and is only meaningful until the next compaction.
func (fa *FirstFitAllocator) Bytes(addr region.Addr, size int) ([]byte, error) {
	if fa.r.Closed() {
		return nil, region.ErrClosed
	}
	off, err := fa.validRange(addr, size)
	if err != nil {
		return nil, err
	}
	return fa.r.Bytes()[off : off+size : off+size], nil
}

// Base returns the address of unit 0.
func (fa *FirstFitAllocator) Base() region.Addr { return fa.r.BaseAddress() }

// Size returns the number of units in the region.
func (fa *FirstFitAllocator) Size() int { return fa.r.Size() }

// Close releases the region's backing storage.
func (fa *FirstFitAllocator) Close() error {
	fa.log.Debug("closing region")
	return fa.r.Close()
}

// findFreeRun returns the start of the first run of size free units, scanning
// left to right and stopping as soon as the run is long enough.
// size must be positive.
func (fa *FirstFitAllocator) findFreeRun(size int) (int, bool) {
	run := 0
	for i := 0; i < fa.r.Size(); i++ {
		if fa.occupied(i) {
			run = 0
			continue
		}
		run++
		if run == size {
			return i - size + 1, true
		}
	}
	return 0, false
}

// validRange resolves addr and checks that [off, off+size) fits the region.
func (fa *FirstFitAllocator) validRange(addr region.Addr, size int) (int, error) {
	off, err := fa.r.OffsetOf(addr)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !buf.Has(fa.r.Size(), off, size) {
		return 0, fmt.Errorf("%w: offset %d + size %d exceeds %d units",
			ErrInvalidAddress, off, size, fa.r.Size())
	}
	return off, nil
}

// occupied reads flag i, which callers keep in [0, Size()).
func (fa *FirstFitAllocator) occupied(i int) bool {
	v, err := fa.r.IsOccupied(i)
	return err == nil && v
}

func (fa *FirstFitAllocator) inUse() int {
	used := 0
	for i := 0; i < fa.r.Size(); i++ {
		if fa.occupied(i) {
			used++
		}
	}
	return used
}

// Compile-time interface check
var _ Allocator = (*FirstFitAllocator)(nil)
