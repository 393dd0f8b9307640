// Package heap implements a general-purpose dynamic memory allocator over
// anonymous OS memory mappings.
//
// # Overview
//
// The allocator manages virtual memory obtained directly from the operating
// system in page-aligned regions. Each region holds one or more blocks, and
// every block is a fixed 64-byte metadata header immediately followed by the
// caller-visible payload. Freed blocks are threaded into an intrusive free
// list (the list links live in the payload bytes themselves) and reused on
// later requests via a configurable fit strategy.
//
// # Key Types
//
//   - Heap: an allocator context owning its regions, block chain, and free list
//   - Config: strategy and debug configuration, optionally read from the environment
//   - Strategy: free-space search policy (first-fit, best-fit, worst-fit)
//   - Stats: allocation counters for instrumentation
//
// # Memory Layout
//
// A region is one contiguous mapping:
//
//	[BLOCK 0: header | payload] [BLOCK 1: header | payload] ...
//
// Block sizes are multiples of 16 bytes and include the header. The least
// significant bit of the size word flags the block free (1) or used (0);
// accessors mask it out, so callers never see the flag. The minimum block size
// (80 bytes) is derived from the free-block variant: header plus the two
// free-list links that overlay the payload while a block is free.
//
// # Usage Example
//
//	h := heap.New(heap.Config{Strategy: heap.FirstFit})
//
//	p, err := h.Alloc(300, "parser buffer")
//	if err != nil {
//	    return err
//	}
//	// ... use the 300 writable bytes at p ...
//	h.Free(p)
//
//	if h.CheckLeaks(os.Stdout) {
//	    log.Fatal("heap leaked")
//	}
//
// # Allocation Lifecycle
//
// Alloc first searches the free list with the configured fit strategy. A
// reused block larger than the request is split, and the tail goes back on
// the free list. On a miss the heap maps a new region sized to the request
// rounded up to the OS page size; any excess beyond the request is split off
// as an immediately reusable free block. Free marks the block free, coalesces
// it with adjacent free blocks in the same region, and unmaps the region once
// the whole mapping is a single free span.
//
// # Thread Safety
//
// A Heap is safe for concurrent use. A single mutex serializes every
// heap-mutating operation and every diagnostic that walks shared state;
// operations from different goroutines are totally ordered by lock
// acquisition. There is no per-region or per-size-class locking.
//
// # Environment
//
//	HEAP_STRATEGY   fit strategy: first-fit (default), best-fit, worst-fit
//	HEAP_SCRIBBLE   when set, fill fresh payloads with 0xAA to surface
//	                reads of uninitialized memory
//	HEAP_LOG_ALLOC  when set, log allocation traffic to stderr
package heap
