package heap

import (
	"fmt"
	"io"
	"unsafe"
)

// DumpState writes a human-readable snapshot of the heap: every region in
// creation order with the blocks it contains, then the free list in
// traversal order.
//
// Output format:
//
//	-- Current Memory State --
//	[REGION 0x7f0d774e7000] 4096
//	  [BLOCK 0x7f0d774e7000-0x7f0d774e7170] 368	[USED]	'First Allocation'
//	  [BLOCK 0x7f0d774e7170-0x7f0d774e8000] 3728	[FREE]	''
//	-- Free List --
//	[0x7f0d774e7170] -> NULL
func (h *Heap) DumpState(w io.Writer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	fmt.Fprintln(w, "-- Current Memory State --")

	// Blocks of one region are contiguous in the chain and regions appear
	// in creation order, so a single walk groups them.
	var region *block
	for b := h.head; b != nil; b = b.next {
		if b.region != region {
			region = b.region
			fmt.Fprintf(w, "[REGION 0x%x] %d\n",
				uintptr(unsafe.Pointer(region)),
				len(h.regions[uintptr(unsafe.Pointer(region))]))
		}
		status := "USED"
		if b.isFree() {
			status = "FREE"
		}
		start := uintptr(unsafe.Pointer(b))
		fmt.Fprintf(w, "  [BLOCK 0x%x-0x%x] %d\t[%s]\t'%s'\n",
			start, start+b.realSize(), b.realSize(), status, b.labelString())
	}

	fmt.Fprintln(w, "-- Free List --")
	for fb := h.freeHead; fb != nil; fb = fb.nextFree {
		fmt.Fprintf(w, "[0x%x] -> ", uintptr(unsafe.Pointer(fb)))
	}
	fmt.Fprintln(w, "NULL")
}
