package heap

// Stats holds allocator counters for instrumentation and tests. All counts
// are cumulative for the lifetime of the heap.
type Stats struct {
	AllocCalls  int // Alloc and AllocZeroed calls
	FreeCalls   int // Free calls (nil no-ops excluded)
	ResizeCalls int // Resize calls

	ReuseHits int // allocations satisfied from the free list
	Splits    int // block splits

	CoalesceRight int // right-neighbor merges
	CoalesceLeft  int // left-neighbor merges

	RegionsMapped   int // regions obtained from the OS
	RegionsUnmapped int // regions returned to the OS

	BytesAllocated uint64 // total block bytes handed out (headers included)
	BytesFreed     uint64 // total block bytes released
}

// Stats returns a snapshot of the allocator counters.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// LiveRegions returns the number of regions currently mapped.
func (h *Heap) LiveRegions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.regions)
}
