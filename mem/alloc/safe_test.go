package alloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/mem/region"
)

func TestSafeAllocator_ConcurrentAllocNoOverlap(t *testing.T) {
	const (
		workers   = 8
		perWorker = 100
	)
	s, err := NewSafe(workers*perWorker, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[region.Addr]bool)
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWorker {
				a, err := s.Alloc(1)
				if err != nil {
					t.Errorf("alloc: %v", err)
					return
				}
				mu.Lock()
				if seen[a] {
					t.Errorf("address %s handed out twice", a)
				}
				seen[a] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, workers*perWorker)
	st := s.Stats()
	require.Equal(t, workers*perWorker, st.InUse)
	require.Zero(t, st.Free)
}

func TestSafeAllocator_ConcurrentAllocFree(t *testing.T) {
	s, err := NewSafe(256, &Options{TrackSizes: true})
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			size := w + 1
			for range 200 {
				a, err := s.Alloc(size)
				if err != nil {
					t.Errorf("alloc %d: %v", size, err)
					return
				}
				if err := s.Free(a, size); err != nil {
					t.Errorf("free %d: %v", size, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, make([]bool, 256), s.Status())
	require.Zero(t, s.Stats().Tracked)
	require.Zero(t, s.Compact())
}

func TestSafeAllocator_Delegates(t *testing.T) {
	s, err := NewSafe(10, nil)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	require.Equal(t, 10, s.Size())
	a, err := s.Alloc(3)
	require.NoError(t, err)
	require.Equal(t, s.Base(), a)

	buf, err := s.Bytes(a, 3)
	require.NoError(t, err)
	copy(buf, "abc")

	require.NoError(t, s.Free(a, 3))
	require.ErrorIs(t, s.Free(s.Base()+10, 1), ErrInvalidAddress)

	_, err = NewSafe(0, nil)
	require.Error(t, err)
}
