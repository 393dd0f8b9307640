package heap

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestDumpStateFormat(t *testing.T) {
	h := New(Config{})
	a, err := h.Alloc(300, "First Allocation")
	require.NoError(t, err)
	b, err := h.Alloc(100, "Second Allocation")
	require.NoError(t, err)

	var out bytes.Buffer
	h.DumpState(&out)
	s := out.String()

	require.True(t, strings.HasPrefix(s, "-- Current Memory State --\n"))
	require.Contains(t, s, "[REGION 0x")
	require.Contains(t, s, "'First Allocation'")
	require.Contains(t, s, "'Second Allocation'")
	require.Contains(t, s, "[USED]")
	require.Contains(t, s, "[FREE]", "region tail shows as free")
	require.Contains(t, s, "-- Free List --")
	require.True(t, strings.HasSuffix(s, "NULL\n"), "free list ends with the terminator")

	// Blocks print with their real address range.
	ha := headerOf(a)
	require.Contains(t, s, fmt.Sprintf("[BLOCK 0x%x-0x%x] %d",
		uintptr(unsafe.Pointer(ha)),
		uintptr(unsafe.Pointer(ha))+ha.realSize(),
		ha.realSize()))

	h.Free(a)
	h.Free(b)
}

func TestDumpStateEmptyHeap(t *testing.T) {
	h := New(Config{})
	var out bytes.Buffer
	h.DumpState(&out)

	s := out.String()
	require.NotContains(t, s, "[REGION")
	require.NotContains(t, s, "[BLOCK")
	require.Contains(t, s, "-- Free List --\nNULL\n")
}

func TestDumpStateFreeListOrder(t *testing.T) {
	h := New(Config{})
	pin, err := h.Alloc(16, "pin")
	require.NoError(t, err)
	a, err := h.Alloc(300, "a")
	require.NoError(t, err)
	b, err := h.Alloc(500, "b")
	require.NoError(t, err)

	h.Free(a) // a is walled in by pin and b: stays a standalone free block

	var out bytes.Buffer
	h.DumpState(&out)
	s := out.String()

	// LIFO: a was freed last, so it heads the free list section.
	idx := strings.Index(s, "-- Free List --")
	require.GreaterOrEqual(t, idx, 0)
	freeSection := s[idx:]
	posA := strings.Index(freeSection, fmt.Sprintf("[0x%x]", uintptr(unsafe.Pointer(headerOf(a)))))
	require.GreaterOrEqual(t, posA, 0, "freed block listed")

	h.Free(b)
	h.Free(pin)
}

func TestCheckLeaksReportsUsedBlocks(t *testing.T) {
	h := New(Config{})
	a, err := h.Alloc(300, "leaky")
	require.NoError(t, err)
	_, err = h.Alloc(100, "leakier")
	require.NoError(t, err)

	var out bytes.Buffer
	require.True(t, h.CheckLeaks(&out))
	s := out.String()

	require.True(t, strings.HasPrefix(s, "-- Leak Check --\n"))
	require.Contains(t, s, "'leaky'")
	require.Contains(t, s, "'leakier'")
	require.Contains(t, s, "-- Summary --")
	require.Contains(t, s, "2 blocks lost")

	ha := headerOf(a)
	total := ha.realSize() + align(100+headerSize, alignment)
	require.Contains(t, s, fmt.Sprintf("(%d bytes)", total))
}

func TestCheckLeaksCleanHeap(t *testing.T) {
	h := New(Config{})
	p, err := h.Alloc(300, "tidy")
	require.NoError(t, err)
	h.Free(p)

	var out bytes.Buffer
	require.False(t, h.CheckLeaks(&out))
	require.Contains(t, out.String(), "0 blocks lost (0 bytes)")
}

func TestCheckLeaksIgnoresFreeBlocks(t *testing.T) {
	h := New(Config{})
	pin, err := h.Alloc(16, "pin")
	require.NoError(t, err)
	p, err := h.Alloc(300, "released")
	require.NoError(t, err)
	h.Free(p)

	var out bytes.Buffer
	require.True(t, h.CheckLeaks(&out), "pin is still live")
	require.NotContains(t, out.String(), "'released'")
	require.Contains(t, out.String(), "1 blocks lost")

	h.Free(pin)
}
