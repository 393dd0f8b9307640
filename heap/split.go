package heap

import "unsafe"

// split carves a new block of tailSize bytes from the end of b, leaving b
// shorter by that amount:
//
//	+----------------------+------+
//	| b (shrunk)           | tail |
//	+----------------------+------+
//
// Preconditions: b is non-nil and free, and both resulting pieces meet the
// minimum block size. On any precondition failure split returns nil and b is
// left byte-for-byte unchanged. On success the tail inherits b's region and
// chain successor; its free flag is not set here, the caller decides its
// state.
func (h *Heap) split(b *block, tailSize uintptr) *block {
	if b == nil || !b.isFree() {
		return nil
	}
	size := b.realSize()
	if tailSize < minBlockSize || size < tailSize+minBlockSize {
		return nil
	}

	tail := (*block)(unsafe.Add(unsafe.Pointer(b), size-tailSize))
	tail.region = b.region
	tail.label = [labelSize]byte{}
	tail.size = tailSize
	tail.next = b.next
	tail.prev = b

	if b.next != nil {
		b.next.prev = tail
	} else {
		h.tail = tail
	}
	b.next = tail
	b.setRealSize(size - tailSize)

	h.stats.Splits++
	return tail
}
