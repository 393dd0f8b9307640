package heap

// Strategy selects the free-space search policy used to satisfy allocations
// from the free list.
type Strategy int

const (
	// FirstFit takes the first free block large enough, scanning from the
	// list head.
	FirstFit Strategy = iota

	// BestFit takes the smallest free block that still fits.
	BestFit

	// WorstFit takes the largest free block, provided it fits.
	WorstFit
)

// String returns the environment-facing name of the strategy.
func (s Strategy) String() string {
	switch s {
	case BestFit:
		return "best-fit"
	case WorstFit:
		return "worst-fit"
	default:
		return "first-fit"
	}
}

// findFree searches the free list for a block whose real size is >= size
// (header included) using the configured strategy. Returns nil if none
// qualifies. Ties are broken by earliest position in the list.
func (h *Heap) findFree(size uintptr) *block {
	switch h.strategy {
	case BestFit:
		return h.bestFit(size)
	case WorstFit:
		return h.worstFit(size)
	default:
		return h.firstFit(size)
	}
}

func (h *Heap) firstFit(size uintptr) *block {
	for fb := h.freeHead; fb != nil; fb = fb.nextFree {
		if fb.realSize() >= size {
			return &fb.block
		}
	}
	return nil
}

func (h *Heap) bestFit(size uintptr) *block {
	var best *freeBlock
	for fb := h.freeHead; fb != nil; fb = fb.nextFree {
		if fb.realSize() < size {
			continue
		}
		// Strict < keeps the earliest candidate on ties.
		if best == nil || fb.realSize() < best.realSize() {
			best = fb
		}
	}
	if best == nil {
		return nil
	}
	return &best.block
}

func (h *Heap) worstFit(size uintptr) *block {
	var worst *freeBlock
	for fb := h.freeHead; fb != nil; fb = fb.nextFree {
		// Strict > keeps the earliest candidate on ties.
		if worst == nil || fb.realSize() > worst.realSize() {
			worst = fb
		}
	}
	if worst == nil || worst.realSize() < size {
		return nil
	}
	return &worst.block
}
