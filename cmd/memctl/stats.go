package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memkit/mem/alloc"
)

// numbers formats counts with digit grouping (1,024 units).
var numbers = message.NewPrinter(language.English)

// writeStats prints allocator statistics as an indented block.
func writeStats(w io.Writer, st alloc.Stats) {
	numbers.Fprintf(w, "Region:\n")
	numbers.Fprintf(w, "  Units: %d\n", st.Size)
	numbers.Fprintf(w, "  In use: %d (%.1f%%)\n", st.InUse, st.Utilization*100)
	numbers.Fprintf(w, "  Free: %d in %d run(s), largest %d\n", st.Free, st.FreeRuns, st.LargestFreeRun)
	numbers.Fprintf(w, "  Fragmentation: %.1f%%\n", st.Fragmentation*100)
	if st.Tracked > 0 {
		numbers.Fprintf(w, "  Live allocations: %d\n", st.Tracked)
	}
	numbers.Fprintf(w, "Operations:\n")
	numbers.Fprintf(w, "  Allocations: %d (%d failed, %d after compaction)\n",
		st.AllocCalls, st.AllocFailures, st.AllocSlowPath)
	numbers.Fprintf(w, "  Frees: %d (%d failed)\n", st.FreeCalls, st.FreeFailures)
	numbers.Fprintf(w, "  Compactions: %d (%d units moved)\n", st.Compactions, st.UnitsMoved)
}
