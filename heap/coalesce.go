package heap

// rightMerge absorbs right into left. Both must be free, chain-adjacent, and
// in the same region; within a region chain order is address order, so
// chain-adjacent free blocks are contiguous in memory. The right block is
// removed from the free list and unlinked from the chain; its header bytes
// become part of left's payload.
func (h *Heap) rightMerge(left, right *block) bool {
	if left == nil || right == nil {
		return false
	}
	if !left.isFree() || !right.isFree() {
		return false
	}
	if left.region != right.region {
		return false
	}
	if left.next != right {
		return false
	}

	h.removeFree(right)
	left.setRealSize(left.realSize() + right.realSize())
	left.next = right.next
	if right.next != nil {
		right.next.prev = left
	} else {
		h.tail = left
	}
	return true
}

// coalesce merges b with its chain neighbors where eligible: a neighbor must
// exist, be free, and belong to the same region. The right neighbor is
// absorbed first, then the left merge reuses the same primitive with b as the
// right operand. Returns the leftmost surviving block, or nil when no merge
// was possible (b used, or no free same-region neighbor on either side).
func (h *Heap) coalesce(b *block) *block {
	if b == nil || !b.isFree() {
		return nil
	}

	merged := false
	if h.rightMerge(b, b.next) {
		h.stats.CoalesceRight++
		merged = true
	}
	if prev := b.prev; h.rightMerge(prev, b) {
		h.stats.CoalesceLeft++
		b = prev
		merged = true
	}
	if !merged {
		return nil
	}
	return b
}
