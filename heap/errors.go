package heap

import "errors"

var (
	// ErrOutOfMemory indicates the OS refused a new region mapping.
	ErrOutOfMemory = errors.New("heap: out of memory")

	// ErrSizeOverflow indicates a count*size request that overflows.
	ErrSizeOverflow = errors.New("heap: allocation size overflow")

	// ErrDoubleFree indicates Free was called on a block already marked
	// free. Raised as a panic: continuing would corrupt the free list.
	ErrDoubleFree = errors.New("heap: double free")

	// ErrBadPointer indicates an address that does not resolve to a block
	// previously returned by this heap. Detection is best-effort.
	ErrBadPointer = errors.New("heap: bad pointer")
)
