//go:build unix

package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocOutOfMemory(t *testing.T) {
	if ^uintptr(0)>>32 == 0 {
		t.Skip("needs a 64-bit address space")
	}
	h := New(Config{})

	// Larger than any 64-bit user address space: the mapping must fail and
	// surface as an allocation error, never a panic.
	_, err := h.Alloc(uintptr(1)<<47, "impossible")
	require.ErrorIs(t, err, ErrOutOfMemory)
	require.Zero(t, h.LiveRegions())
}
