package heap

import (
	"sync"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/mmap"
)

// Heap is an allocator context. It owns every region it maps, the
// process-wide block chain, and the free list. All exported methods are safe
// for concurrent use; a single mutex serializes every operation.
//
// The zero value is not usable; construct with New or NewFromEnv.
type Heap struct {
	mu sync.Mutex

	// head and tail bound the chain of every live block, across regions.
	head *block
	tail *block

	// freeHead and freeTail bound the intrusive free list.
	freeHead *freeBlock
	freeTail *freeBlock

	// regions maps a region's base address to its mapping, retained for
	// whole-region span checks and for unmapping.
	regions map[uintptr][]byte

	strategy Strategy
	scribble bool
	pageSize uintptr

	stats Stats
}

// New creates a heap with the given configuration. No memory is mapped until
// the first allocation.
func New(cfg Config) *Heap {
	return &Heap{
		regions:  make(map[uintptr][]byte),
		strategy: cfg.Strategy,
		scribble: cfg.Scribble,
		pageSize: uintptr(mmap.PageSize()),
	}
}

// NewFromEnv creates a heap configured from the environment (HEAP_STRATEGY,
// HEAP_SCRIBBLE).
func NewFromEnv() *Heap {
	return New(FromEnv())
}

// Strategy returns the fit strategy the heap was configured with.
func (h *Heap) Strategy() Strategy {
	return h.strategy
}

// mapRegion maps a fresh region large enough for total bytes, rounded up to
// the OS page size, and installs its first block at the base: region
// self-reference, label, full mapping size, used flag clear of the size word,
// appended to the chain tail. The caller decides splitting and final state.
func (h *Heap) mapRegion(total uintptr, label string) (*block, error) {
	regionSize := align(total, h.pageSize)
	mem, err := mmap.Alloc(int(regionSize))
	if err != nil {
		return nil, err
	}

	b := (*block)(unsafe.Pointer(&mem[0]))
	b.region = b
	b.setLabel(label)
	b.size = regionSize
	b.next = nil
	b.prev = h.tail

	if h.tail != nil {
		h.tail.next = b
	} else {
		h.head = b
	}
	h.tail = b

	h.regions[uintptr(unsafe.Pointer(b))] = mem
	h.stats.RegionsMapped++

	if logAlloc {
		debugLogf("mapped region %p (%d bytes) for request of %d", unsafe.Pointer(b), regionSize, total)
	}
	return b, nil
}

// releaseRegionIfEmpty unmaps b's region when b is the region's first block
// and spans the entire mapping, meaning coalescing left no other block, used
// or free, in the region. b must be free and on the free list.
func (h *Heap) releaseRegionIfEmpty(b *block) {
	if b.region != b {
		return
	}
	mem, ok := h.regions[uintptr(unsafe.Pointer(b))]
	if !ok || b.realSize() != uintptr(len(mem)) {
		return
	}

	h.removeFree(b)
	if b.prev != nil {
		b.prev.next = b.next
	} else {
		h.head = b.next
	}
	if b.next != nil {
		b.next.prev = b.prev
	} else {
		h.tail = b.prev
	}

	delete(h.regions, uintptr(unsafe.Pointer(b)))
	h.stats.RegionsUnmapped++
	if logAlloc {
		debugLogf("unmapped region %p (%d bytes)", unsafe.Pointer(b), len(mem))
	}
	// The header bytes are gone once the pages are returned.
	if err := mmap.Free(mem); err != nil {
		panic(err)
	}
}

// checkBlock validates, best-effort, that b is a block this heap handed out:
// its region back-reference must resolve to a known region base and b must
// lie inside that mapping. Addresses that never came from the heap can fault
// before reaching this check; that case is documented as undefined.
func (h *Heap) checkBlock(b *block) {
	base := uintptr(unsafe.Pointer(b.region))
	mem, ok := h.regions[base]
	if !ok {
		panic(ErrBadPointer)
	}
	addr := uintptr(unsafe.Pointer(b))
	if addr < base || addr+headerSize > base+uintptr(len(mem)) {
		panic(ErrBadPointer)
	}
}
