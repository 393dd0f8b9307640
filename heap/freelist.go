package heap

// The free list is an intrusive doubly-linked list threaded through the
// payload bytes of free blocks. Insertion is at the head (LIFO). Membership
// invariant: a block is on the list if and only if its free flag is set.

// addFree marks b free and pushes it onto the head of the free list.
func (h *Heap) addFree(b *block) {
	b.markFree()
	fb := b.asFree()
	fb.nextFree = nil
	fb.prevFree = nil

	if h.freeHead == nil {
		h.freeHead = fb
		h.freeTail = fb
		return
	}
	fb.nextFree = h.freeHead
	h.freeHead.prevFree = fb
	h.freeHead = fb
}

// removeFree unlinks b from the free list. The free flag is left for the
// caller to clear; the overlay links are dead after this returns.
func (h *Heap) removeFree(b *block) {
	fb := b.asFree()

	if fb.prevFree != nil {
		fb.prevFree.nextFree = fb.nextFree
	} else {
		h.freeHead = fb.nextFree
	}
	if fb.nextFree != nil {
		fb.nextFree.prevFree = fb.prevFree
	} else {
		h.freeTail = fb.prevFree
	}
	fb.nextFree = nil
	fb.prevFree = nil
}
