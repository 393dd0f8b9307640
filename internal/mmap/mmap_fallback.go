//go:build !unix

// Package mmap provides platform-specific helpers for obtaining page-granular
// memory directly from the operating system.
package mmap

import "os"

// Alloc returns a heap-backed buffer when anonymous mappings are not
// available. The buffer stays alive for as long as the caller retains it, so
// Free is a no-op.
func Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

// Free releases a buffer returned by Alloc.
func Free(mem []byte) error {
	return nil
}

// PageSize returns the OS page granularity.
func PageSize() int {
	return os.Getpagesize()
}
