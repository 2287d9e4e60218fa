package alloc

// Stats contains counters and fragmentation metrics for an allocator.
type Stats struct {
	Size           int `json:"size"`             // Units in the region
	InUse          int `json:"in_use"`           // Occupied units
	Free           int `json:"free"`             // Free units
	LargestFreeRun int `json:"largest_free_run"` // Longest run of free units
	FreeRuns       int `json:"free_runs"`        // Number of maximal free runs
	Tracked        int `json:"tracked"`          // Live allocations (TrackSizes only)

	// Fragmentation is 1 - LargestFreeRun/Free: 0 when all free space is one
	// run, approaching 1 as it splinters. 0 when nothing is free.
	Fragmentation float64 `json:"fragmentation"`

	// Utilization is InUse/Size (0.0-1.0).
	Utilization float64 `json:"utilization"`

	AllocCalls    int `json:"alloc_calls"`
	AllocFailures int `json:"alloc_failures"`
	AllocSlowPath int `json:"alloc_slow_path"` // Allocations that compacted first
	FreeCalls     int `json:"free_calls"`
	FreeFailures  int `json:"free_failures"`
	Compactions   int `json:"compactions"`
	UnitsMoved    int `json:"units_moved"`
}

// Stats returns a snapshot of allocator statistics.
func (fa *FirstFitAllocator) Stats() Stats {
	s := Stats{
		Size:          fa.r.Size(),
		Tracked:       len(fa.sizes),
		AllocCalls:    fa.stats.AllocCalls,
		AllocFailures: fa.stats.AllocFailures,
		AllocSlowPath: fa.stats.AllocSlowPath,
		FreeCalls:     fa.stats.FreeCalls,
		FreeFailures:  fa.stats.FreeFailures,
		Compactions:   fa.stats.Compactions,
		UnitsMoved:    fa.stats.UnitsMoved,
	}

	run := 0
	for i := 0; i < s.Size; i++ {
		if fa.occupied(i) {
			s.InUse++
			run = 0
			continue
		}
		s.Free++
		if run == 0 {
			s.FreeRuns++
		}
		run++
		if run > s.LargestFreeRun {
			s.LargestFreeRun = run
		}
	}

	if s.Free > 0 {
		s.Fragmentation = 1 - float64(s.LargestFreeRun)/float64(s.Free)
	}
	s.Utilization = float64(s.InUse) / float64(s.Size)
	return s
}
