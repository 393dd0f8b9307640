package heap

import (
	"fmt"
	"os"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugAlloc = false

// Runtime flag for allocation logging - controlled by HEAP_LOG_ALLOC env var.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

// Environment variables consumed by FromEnv.
const (
	// EnvStrategy selects the fit strategy: "first-fit" (default),
	// "best-fit", or "worst-fit". Unrecognized values fall back to
	// first-fit.
	EnvStrategy = "HEAP_STRATEGY"

	// EnvScribble, when set to anything non-empty, pre-fills freshly
	// returned payload bytes with scribbleByte.
	EnvScribble = "HEAP_SCRIBBLE"
)

// scribbleByte is the sentinel written over fresh payloads in scribble mode,
// chosen to be non-zero so reads of uninitialized memory stand out.
const scribbleByte = 0xAA

// Config holds allocator configuration.
type Config struct {
	// Strategy is the free-space search policy. Zero value is FirstFit.
	Strategy Strategy

	// Scribble fills fresh payload bytes with a fixed sentinel before
	// returning them, to surface use of uninitialized memory.
	Scribble bool
}

// FromEnv builds a Config from the process environment.
func FromEnv() Config {
	cfg := Config{Strategy: FirstFit}

	switch v := os.Getenv(EnvStrategy); v {
	case "", "first-fit":
	case "best-fit":
		cfg.Strategy = BestFit
	case "worst-fit":
		cfg.Strategy = WorstFit
	default:
		if logAlloc {
			debugLogf("unrecognized %s=%q, using first-fit", EnvStrategy, v)
		}
	}

	cfg.Scribble = os.Getenv(EnvScribble) != ""
	return cfg
}

// debugLogf prints allocator diagnostics to stderr when enabled.
func debugLogf(format string, args ...any) {
	if debugAlloc || logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] "+format+"\n", args...)
	}
}
