package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// pushFree threads a synthetic free block of the given total size onto h's
// free list. The fit strategies only read sizes and list links, so the block
// can live on the Go heap. Insertion is LIFO: the last pushed block is the
// list head.
func pushFree(t *testing.T, h *Heap, size uintptr) *freeBlock {
	t.Helper()
	fb := &freeBlock{}
	fb.size = size
	h.addFree(&fb.block)
	return fb
}

func newBareHeap(s Strategy) *Heap {
	return New(Config{Strategy: s})
}

func TestFirstFit(t *testing.T) {
	h := newBareHeap(FirstFit)
	// List head order after LIFO pushes: 160, 480, 320.
	pushFree(t, h, 320)
	pushFree(t, h, 480)
	a := pushFree(t, h, 160)

	got := h.findFree(160)
	require.Same(t, &a.block, got, "first fit takes the first block that fits")

	got = h.findFree(400)
	require.Equal(t, uintptr(480), got.realSize())

	require.Nil(t, h.findFree(1024), "nothing large enough")
}

func TestBestFit(t *testing.T) {
	h := newBareHeap(BestFit)
	pushFree(t, h, 320)
	pushFree(t, h, 640)
	pushFree(t, h, 480)

	got := h.findFree(300)
	require.Equal(t, uintptr(320), got.realSize(), "smallest block that still fits")

	got = h.findFree(500)
	require.Equal(t, uintptr(640), got.realSize())

	require.Nil(t, h.findFree(1024))
}

func TestBestFitTieBreak(t *testing.T) {
	h := newBareHeap(BestFit)
	pushFree(t, h, 320)
	second := pushFree(t, h, 320)
	// Head order: second, first. Ties go to the earliest list position.
	got := h.findFree(160)
	require.Same(t, &second.block, got)
}

func TestWorstFit(t *testing.T) {
	h := newBareHeap(WorstFit)
	pushFree(t, h, 640)
	pushFree(t, h, 320)
	pushFree(t, h, 480)

	got := h.findFree(160)
	require.Equal(t, uintptr(640), got.realSize(), "largest block wins")

	// The largest block must still satisfy the request.
	require.Nil(t, h.findFree(1024))
}

func TestWorstFitTieBreak(t *testing.T) {
	h := newBareHeap(WorstFit)
	pushFree(t, h, 640)
	second := pushFree(t, h, 640)
	got := h.findFree(160)
	require.Same(t, &second.block, got)
}

func TestFitEmptyList(t *testing.T) {
	for _, s := range []Strategy{FirstFit, BestFit, WorstFit} {
		h := newBareHeap(s)
		require.Nil(t, h.findFree(16), s.String())
	}
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "first-fit", FirstFit.String())
	require.Equal(t, "best-fit", BestFit.String())
	require.Equal(t, "worst-fit", WorstFit.String())
}
