//go:build unix

package mmap

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc maps size bytes of anonymous, private, read-write memory and returns
// the mapping. Size should be a multiple of the OS page size; the kernel
// rounds up internally either way. The returned slice is page-aligned.
func Alloc(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("mmap: failed to map %d bytes: %w", size, err)
	}
	return mem, nil
}

// Free unmaps a mapping returned by Alloc. It must be passed the exact slice
// Alloc returned, not a derived slice.
func Free(mem []byte) error {
	if err := unix.Munmap(mem); err != nil {
		return fmt.Errorf("mmap: failed to unmap memory: %w", err)
	}
	return nil
}

// PageSize returns the OS page granularity for mappings.
func PageSize() int {
	return unix.Getpagesize()
}
