package heap

import (
	"fmt"
	"unsafe"
)

// Alloc allocates size writable bytes and returns their address, 16-byte
// aligned. The label is a bounded diagnostic name kept in the block header
// (truncated to 31 bytes, empty is fine). Allocation fails only when the OS
// mapping request itself fails: the error wraps ErrOutOfMemory.
func (h *Heap) Alloc(size uintptr, label string) (unsafe.Pointer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(size, label)
}

// alloc is the lock-held allocation path shared by Alloc, AllocZeroed, and
// Resize.
func (h *Heap) alloc(size uintptr, label string) (unsafe.Pointer, error) {
	if size > ^uintptr(0)-headerSize-alignment {
		return nil, ErrSizeOverflow
	}
	h.stats.AllocCalls++

	total := align(size+headerSize, alignment)
	if total < minBlockSize {
		total = minBlockSize
	}

	b := h.findFree(total)
	if b != nil {
		// Reuse: shrink the block to the request when the remainder can
		// stand alone, then take it off the free list.
		if rem := b.realSize() - total; rem >= minBlockSize {
			if tail := h.split(b, rem); tail != nil {
				h.addFree(tail)
			}
		}
		h.removeFree(b)
		b.markUsed()
		b.setLabel(label)
		h.stats.ReuseHits++
		if logAlloc {
			debugLogf("reused block %p (%d bytes) for request of %d", unsafe.Pointer(b), b.realSize(), size)
		}
	} else {
		// Miss: map a fresh region and split off the unused tail so it is
		// immediately reusable.
		var err error
		b, err = h.mapRegion(total, label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
		}
		b.markFree()
		if tail := h.split(b, b.realSize()-total); tail != nil {
			h.addFree(tail)
		}
		b.markUsed()
	}

	h.stats.BytesAllocated += uint64(b.realSize())

	if h.scribble {
		payload := unsafe.Slice((*byte)(b.payload()), b.payloadSize())
		for i := range payload {
			payload[i] = scribbleByte
		}
	}
	return b.payload(), nil
}

// Free releases the allocation at ptr. A nil ptr is a defined no-op. The
// block is marked free, coalesced with any adjacent free blocks in its
// region, and returned to the free list; when that leaves the whole region
// as a single free span the region is unmapped.
//
// Freeing the same pointer twice, or an address the heap never returned,
// panics with ErrDoubleFree or ErrBadPointer respectively: continuing with a
// corrupted free list is not recoverable.
func (h *Heap) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.free(ptr)
}

func (h *Heap) free(ptr unsafe.Pointer) {
	b := headerOf(ptr)
	h.checkBlock(b)
	if b.isFree() {
		panic(ErrDoubleFree)
	}

	h.stats.FreeCalls++
	h.stats.BytesFreed += uint64(b.realSize())

	h.addFree(b)
	merged := h.coalesce(b)
	if merged == nil {
		merged = b
	}
	h.releaseRegionIfEmpty(merged)
}

// AllocZeroed allocates count*size bytes and guarantees every byte of the
// returned payload is zero. Fails with ErrSizeOverflow when the
// multiplication overflows, before any mapping is attempted.
func (h *Heap) AllocZeroed(count, size uintptr, label string) (unsafe.Pointer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if count != 0 && size > ^uintptr(0)/count {
		return nil, ErrSizeOverflow
	}
	ptr, err := h.alloc(count*size, label)
	if err != nil {
		return nil, err
	}

	payload := unsafe.Slice((*byte)(ptr), headerOf(ptr).payloadSize())
	clear(payload)
	return ptr, nil
}

// Resize changes the allocation at ptr to newSize bytes. A nil ptr behaves
// as Alloc; newSize == 0 behaves as Free and returns nil. Growth prefers
// absorbing a free right neighbor in place, splitting back any excess; only
// when that is impossible does it allocate elsewhere, copy
// min(oldSize, newSize) payload bytes, and release the old block. Shrinking
// stays in place, leaving the block oversized when the remainder is below
// the minimum block size.
func (h *Heap) Resize(ptr unsafe.Pointer, newSize uintptr, label string) (unsafe.Pointer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ptr == nil {
		return h.alloc(newSize, label)
	}
	if newSize == 0 {
		h.free(ptr)
		return nil, nil
	}
	if newSize > ^uintptr(0)-headerSize-alignment {
		return nil, ErrSizeOverflow
	}
	h.stats.ResizeCalls++

	b := headerOf(ptr)
	h.checkBlock(b)
	if b.isFree() {
		panic(ErrBadPointer)
	}

	oldTotal := b.realSize()
	newTotal := align(newSize+headerSize, alignment)
	if newTotal < minBlockSize {
		newTotal = minBlockSize
	}

	switch {
	case newTotal == oldTotal:
		b.setLabel(label)
		return ptr, nil

	case newTotal < oldTotal:
		// Shrink in place. When the cut-off cannot stand alone as a block,
		// the allocation simply stays oversized.
		if oldTotal-newTotal >= minBlockSize {
			b.markFree()
			tail := h.split(b, oldTotal-newTotal)
			b.markUsed()
			if tail != nil {
				h.addFree(tail)
				h.coalesce(tail)
			}
		}
		b.setLabel(label)
		return ptr, nil
	}

	// Grow. Absorbing the right neighbor avoids the copy entirely.
	if next := b.next; next != nil && next.isFree() && next.region == b.region &&
		oldTotal+next.realSize() >= newTotal {
		// rightMerge requires both operands free; b is only flagged, never
		// put on the free list, so its payload stays intact.
		b.markFree()
		if !h.rightMerge(b, next) {
			// Neighbor was eligible a moment ago; the chain is corrupt.
			panic(ErrBadPointer)
		}
		h.stats.CoalesceRight++
		if rem := b.realSize() - newTotal; rem >= minBlockSize {
			if tail := h.split(b, rem); tail != nil {
				h.addFree(tail)
			}
		}
		b.markUsed()
		b.setLabel(label)
		return ptr, nil
	}

	// Last resort: allocate, copy, release.
	newPtr, err := h.alloc(newSize, label)
	if err != nil {
		return nil, err
	}
	n := min(oldTotal, newTotal) - headerSize
	copy(unsafe.Slice((*byte)(newPtr), n), unsafe.Slice((*byte)(ptr), n))
	h.free(ptr)
	return newPtr, nil
}
