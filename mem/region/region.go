// Package region holds a fixed-size simulated memory region and the occupancy
// bitmap that tracks which of its units are allocated.
//
// A Region owns two index-aligned sequences of length N: the backing bytes (one
// byte per unit) and the occupancy flags. All index and address checks live
// here so allocators never touch either sequence outside [0, N).
//
// The backing bytes are obtained from an anonymous OS mapping rather than the
// Go heap. Their contents are never interpreted by this package.
//
// Regions are not thread-safe.
package region

import (
	"fmt"
	"unsafe"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/mmap"
)

// Addr is an opaque handle to a unit of a region. It resolves relative to the
// region's BaseAddress; only values in [base, base+N) are valid.
type Addr uintptr

// String formats the address the way pointers are printed.
func (a Addr) String() string {
	return fmt.Sprintf("0x%x", uintptr(a))
}

// Region is a fixed-length run of units plus their occupancy flags.
type Region struct {
	data    []byte
	flags   []bool
	base    Addr
	release func() error
}

// New creates a region of n units, all free and zeroed.
func New(n int) (*Region, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	data, release, err := mmap.Anon(n)
	if err != nil {
		return nil, err
	}
	return &Region{
		data:    data,
		flags:   make([]bool, n),
		base:    Addr(uintptr(unsafe.Pointer(&data[0]))),
		release: release,
	}, nil
}

// Size returns N, the number of units in the region.
func (r *Region) Size() int { return len(r.flags) }

// IsOccupied reports whether unit i is allocated.
func (r *Region) IsOccupied(i int) (bool, error) {
	if err := r.check(i); err != nil {
		return false, err
	}
	return r.flags[i], nil
}

// SetOccupied sets the occupancy flag of unit i.
func (r *Region) SetOccupied(i int, v bool) error {
	if err := r.check(i); err != nil {
		return err
	}
	r.flags[i] = v
	return nil
}

// SetRange sets the flags of units [start, start+n). The whole range is
// validated before any flag is written, so a failing call changes nothing.
func (r *Region) SetRange(start, n int, v bool) error {
	end, err := buf.CheckRange(len(r.flags), start, n)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	for i := start; i < end; i++ {
		r.flags[i] = v
	}
	return nil
}

// Relocate moves the flag of unit from to unit to and clears it at from.
// When withData is set the unit's byte moves along with the flag.
func (r *Region) Relocate(from, to int, withData bool) error {
	if err := r.check(from); err != nil {
		return err
	}
	if err := r.check(to); err != nil {
		return err
	}
	if withData && r.data != nil {
		r.data[to] = r.data[from]
	}
	r.flags[to] = r.flags[from]
	r.flags[from] = false
	return nil
}

// BaseAddress returns the address of unit 0.
func (r *Region) BaseAddress() Addr { return r.base }

// OffsetOf translates a handle into a unit index.
// Fails with ErrOutOfRange unless a lies in [base, base+N).
func (r *Region) OffsetOf(a Addr) (int, error) {
	if a < r.base || uintptr(a-r.base) >= uintptr(len(r.flags)) {
		return 0, fmt.Errorf("%w: address %s not in [%s, %s)",
			ErrOutOfRange, a, r.base, r.base+Addr(len(r.flags)))
	}
	return int(a - r.base), nil
}

// AddrOf returns the handle for unit index off.
func (r *Region) AddrOf(off int) (Addr, error) {
	if err := r.check(off); err != nil {
		return 0, err
	}
	return r.base + Addr(off), nil
}

// Snapshot returns a copy of the occupancy flags.
func (r *Region) Snapshot() []bool {
	out := make([]bool, len(r.flags))
	copy(out, r.flags)
	return out
}

// Bytes returns the backing storage. Its length is always Size().
// Returns nil after Close.
func (r *Region) Bytes() []byte { return r.data }

// Close releases the backing storage. Flags remain readable; Bytes returns nil.
// Calling Close more than once is a no-op.
func (r *Region) Close() error {
	if r.release == nil {
		return nil
	}
	err := r.release()
	r.release = nil
	r.data = nil
	return err
}

// Closed reports whether Close has been called.
func (r *Region) Closed() bool { return r.data == nil }

func (r *Region) check(i int) error {
	if i < 0 || i >= len(r.flags) {
		return fmt.Errorf("%w: index %d not in [0, %d)", ErrOutOfRange, i, len(r.flags))
	}
	return nil
}
