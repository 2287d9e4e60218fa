// Package alloc provides first-fit allocation with compaction over a simulated
// memory region.
//
// # Overview
//
// The region is a fixed number of units tracked by an occupancy bitmap (see
// package region). Allocation picks the lowest-addressed run of free units long
// enough for the request. When free space exists but is split into runs that are
// all too short (external fragmentation), the allocator compacts the region once
// and retries.
//
// # Allocator Interface
//
//   - Alloc(size): Reserve size contiguous units, returning the first unit's address
//   - Free(addr, size): Release size units starting at addr
//   - Compact(): Slide occupied units toward unit 0, merging free space into one run
//   - Status(): Copy of the occupancy flags
//
// # Implementations
//
// FirstFitAllocator: single-threaded allocator
//
//   - O(N) first-fit scan, short-circuits at the first run that fits
//   - Compaction only as a fallback inside Alloc (or when called directly)
//   - Failed calls never change the bitmap
//
// SafeAllocator: the same allocator behind a single mutex
//
// # Usage Example
//
//	fa, err := alloc.NewFirstFit(10, nil)
//	if err != nil {
//	    return err
//	}
//	defer fa.Close()
//
//	addr, err := fa.Alloc(4)
//	if errors.Is(err, alloc.ErrOutOfMemory) {
//	    // no run of 4 units, even after compaction
//	}
//
//	buf, _ := fa.Bytes(addr, 4)
//	copy(buf, "data")
//
//	err = fa.Free(addr, 4)
//
// # Compaction
//
// Compaction walks the bitmap once, left to right, counting free units. Each
// occupied unit found after k free units moves k positions down. Relative order
// and the number of occupied units are preserved:
//
//	before: [-][-][-][-][X][X][X][-][-][-]
//	after:  [X][X][X][-][-][-][-][-][-][-]
//
// Addresses returned before a compaction are stale afterwards. By default the
// backing bytes move together with their flags; set Options.KeepBytesInPlace to
// move flags only.
//
// # Bookkeeping
//
// By default Free trusts the caller: the range is cleared whether or not it was
// allocated, and with whatever size the caller supplies. Options.TrackSizes
// records each live allocation and turns double frees and mismatched sizes into
// ErrBadFree.
//
// # Thread Safety
//
// FirstFitAllocator instances are not thread-safe. Use SafeAllocator, or
// synchronize access externally.
package alloc
