package alloc

import (
	"sync"

	"github.com/joshuapare/memkit/mem/region"
)

// SafeAllocator is a mutex-protected wrapper around FirstFitAllocator.
// Every operation runs under one lock, so the free-run search and the marking
// that follows it are atomic as a pair.
type SafeAllocator struct {
	mu sync.Mutex
	fa *FirstFitAllocator
}

// NewSafe creates a goroutine-safe allocator over a fresh region of size units.
func NewSafe(size int, opts *Options) (*SafeAllocator, error) {
	fa, err := NewFirstFit(size, opts)
	if err != nil {
		return nil, err
	}
	return &SafeAllocator{fa: fa}, nil
}

// Alloc thread-safely reserves size contiguous units.
func (s *SafeAllocator) Alloc(size int) (region.Addr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Alloc(size)
}

// Free thread-safely releases size units starting at addr.
func (s *SafeAllocator) Free(addr region.Addr, size int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Free(addr, size)
}

// Compact thread-safely compacts the region.
func (s *SafeAllocator) Compact() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Compact()
}

// Status thread-safely returns a copy of the occupancy flags.
func (s *SafeAllocator) Status() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Status()
}

// Bytes thread-safely returns the backing storage of a range.
// The lock is not held while the caller uses the slice.
func (s *SafeAllocator) Bytes(addr region.Addr, size int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Bytes(addr, size)
}

// Stats thread-safely returns a snapshot of allocator statistics.
func (s *SafeAllocator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Stats()
}

// Base returns the address of unit 0. It never changes.
func (s *SafeAllocator) Base() region.Addr { return s.fa.Base() }

// Size returns the number of units in the region. It never changes.
func (s *SafeAllocator) Size() int { return s.fa.Size() }

// Close thread-safely releases the region's backing storage.
func (s *SafeAllocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fa.Close()
}

var _ Allocator = (*SafeAllocator)(nil)
