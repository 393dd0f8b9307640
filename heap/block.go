package heap

import (
	"bytes"
	"unsafe"
)

const (
	// alignment is the grain for block sizes and payload addresses. Every
	// block size is a multiple of it, which frees the low bit of the size
	// word for the free flag.
	alignment = 16

	// labelSize bounds the diagnostic label stored in each header,
	// terminator included.
	labelSize = 32

	// freeFlag is the low bit of the size word: 1 = free, 0 = used.
	freeFlag uintptr = 0x01
)

// block is the in-place metadata header prefixed to every allocation. It
// lives at the start of the block, immediately before the payload, inside
// mapped region memory the Go runtime never scans.
type block struct {
	// region points at the first block of the owning region. The first
	// block of a region points at itself.
	region *block

	// label is a bounded diagnostic name, NUL-terminated.
	label [labelSize]byte

	// size is the total block size (header + payload) with the free flag
	// packed into the low bit. Always decode via realSize/isFree.
	size uintptr

	// next and prev thread the process-wide chain of every live block,
	// ordered by address within a region and by creation across regions.
	next *block
	prev *block
}

// freeBlock is the free-state view of a block: while a block is free, its
// first payload bytes hold the free-list links. The overlay is invalid the
// moment the block is marked used.
type freeBlock struct {
	block
	nextFree *freeBlock
	prevFree *freeBlock
}

const (
	// headerSize is the fixed metadata prefix of every block.
	headerSize = unsafe.Sizeof(block{})

	// minBlockSize is the floor for any block: it must be able to host the
	// freeBlock variant, independent of what the caller asked for.
	minBlockSize = (unsafe.Sizeof(freeBlock{}) + alignment - 1) / alignment * alignment
)

// align rounds n up to the smallest multiple of a that is >= n. Exact
// multiples are returned unchanged.
func align(n, a uintptr) uintptr {
	if r := n % a; r != 0 {
		return n + a - r
	}
	return n
}

func (b *block) markFree() {
	b.size |= freeFlag
}

func (b *block) markUsed() {
	b.size &^= freeFlag
}

func (b *block) isFree() bool {
	return b.size&freeFlag == freeFlag
}

// realSize returns the block's total size with the flag masked out.
func (b *block) realSize() uintptr {
	return b.size &^ freeFlag
}

// setRealSize updates the size word while preserving the free flag.
func (b *block) setRealSize(n uintptr) {
	b.size = n | (b.size & freeFlag)
}

// setLabel stores a NUL-terminated copy of label, truncated to fit.
func (b *block) setLabel(label string) {
	b.label = [labelSize]byte{}
	copy(b.label[:labelSize-1], label)
}

// labelString returns the label up to its terminator.
func (b *block) labelString() string {
	if i := bytes.IndexByte(b.label[:], 0); i >= 0 {
		return string(b.label[:i])
	}
	return string(b.label[:])
}

// payload returns the caller-visible address just past the header.
func (b *block) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), headerSize)
}

// payloadSize returns the writable byte count behind payload().
func (b *block) payloadSize() uintptr {
	return b.realSize() - headerSize
}

// headerOf recovers the block header immediately preceding a payload address.
func headerOf(ptr unsafe.Pointer) *block {
	return (*block)(unsafe.Add(ptr, -int(headerSize)))
}

// asFree reinterprets a free block's payload prefix as the free-list links.
// Only valid while b is marked free.
func (b *block) asFree() *freeBlock {
	return (*freeBlock)(unsafe.Pointer(b))
}
