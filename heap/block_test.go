package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	tests := []struct {
		name string
		n    uintptr
		a    uintptr
		want uintptr
	}{
		{"zero", 0, 16, 0},
		{"one rounds up", 1, 16, 16},
		{"just below", 15, 16, 16},
		{"exact multiple unchanged", 16, 16, 16},
		{"just above", 17, 16, 32},
		{"large exact", 4096, 16, 4096},
		{"large inexact", 4097, 16, 4112},
		{"other grain", 7, 8, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, align(tt.n, tt.a))
		})
	}
}

func TestAlignProperties(t *testing.T) {
	for n := uintptr(0); n < 1024; n++ {
		got := align(n, alignment)
		require.Zero(t, got%alignment, "align(%d) not a multiple of %d", n, alignment)
		require.GreaterOrEqual(t, got, n)
	}
	for k := uintptr(0); k < 64; k++ {
		require.Equal(t, k*alignment, align(k*alignment, alignment))
	}
}

func TestSizeFlagEncoding(t *testing.T) {
	var b block
	b.size = 368

	require.False(t, b.isFree())
	require.Equal(t, uintptr(368), b.realSize())

	b.markFree()
	require.True(t, b.isFree())
	require.Equal(t, uintptr(368), b.realSize(), "flag must not leak into the size")

	b.markUsed()
	require.False(t, b.isFree())
	require.Equal(t, uintptr(368), b.realSize())
}

func TestSetRealSizePreservesFlag(t *testing.T) {
	var b block
	b.size = 368
	b.markFree()

	b.setRealSize(512)
	require.True(t, b.isFree())
	require.Equal(t, uintptr(512), b.realSize())

	b.markUsed()
	b.setRealSize(256)
	require.False(t, b.isFree())
	require.Equal(t, uintptr(256), b.realSize())
}

func TestHeaderLayout(t *testing.T) {
	require.Zero(t, headerSize%alignment, "header must keep payloads aligned")
	require.Zero(t, minBlockSize%alignment)
	require.GreaterOrEqual(t, minBlockSize, headerSize+2*uintptr(8),
		"minimum block must host the free-list overlay")
}

func TestLabelRoundTrip(t *testing.T) {
	var b block

	b.setLabel("First Allocation")
	require.Equal(t, "First Allocation", b.labelString())

	b.setLabel("")
	require.Equal(t, "", b.labelString())

	long := "this label is far longer than the thirty-two byte header field"
	b.setLabel(long)
	require.Equal(t, long[:labelSize-1], b.labelString())
}
