package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"
	"unsafe"

	"github.com/joshuapare/heapkit/heap"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	stressOps      int
	stressMaxSize  int
	stressMaxLive  int
	stressSeed     int64
	stressStrategy string
	stressScribble bool
	stressDump     bool
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVar(&stressOps, "ops", 10000, "Number of allocate/free operations")
	cmd.Flags().IntVar(&stressMaxSize, "max-size", 4096, "Maximum allocation size in bytes")
	cmd.Flags().IntVar(&stressMaxLive, "max-live", 256, "Maximum simultaneously live allocations")
	cmd.Flags().Int64Var(&stressSeed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().StringVar(&stressStrategy, "strategy", "first-fit", "Fit strategy: first-fit, best-fit, worst-fit")
	cmd.Flags().BoolVar(&stressScribble, "scribble", false, "Fill fresh payloads with a sentinel byte")
	cmd.Flags().BoolVar(&stressDump, "dump", false, "Dump heap state before the final frees")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stress",
		Short: "Run a randomized allocate/free workload",
		Long: `The stress command hammers the allocator with a randomized mix of
allocate, resize, and free operations, then frees everything that is still
live and verifies the heap is leak-free and all regions were returned to
the OS.

Example:
  heapctl stress
  heapctl stress --ops 100000 --max-size 65536 --strategy best-fit
  heapctl stress --seed 42 --dump`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
	return cmd
}

func parseStrategy(s string) (heap.Strategy, error) {
	switch s {
	case "first-fit":
		return heap.FirstFit, nil
	case "best-fit":
		return heap.BestFit, nil
	case "worst-fit":
		return heap.WorstFit, nil
	}
	return heap.FirstFit, fmt.Errorf("unknown strategy %q (want first-fit, best-fit, or worst-fit)", s)
}

func runStress() error {
	strategy, err := parseStrategy(stressStrategy)
	if err != nil {
		return err
	}

	seed := stressSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Debug("stress starting", "ops", stressOps, "seed", seed, "strategy", stressStrategy)

	h := heap.New(heap.Config{Strategy: strategy, Scribble: stressScribble})

	live := make([]unsafe.Pointer, 0, stressMaxLive)
	start := time.Now()

	for i := 0; i < stressOps; i++ {
		switch {
		case len(live) == 0 || (len(live) < stressMaxLive && rng.Intn(3) != 0):
			size := uintptr(1 + rng.Intn(stressMaxSize))
			p, err := h.Alloc(size, fmt.Sprintf("op-%d", i))
			if err != nil {
				return fmt.Errorf("op %d: alloc %d bytes: %w", i, size, err)
			}
			live = append(live, p)

		case rng.Intn(4) == 0:
			j := rng.Intn(len(live))
			size := uintptr(1 + rng.Intn(stressMaxSize))
			p, err := h.Resize(live[j], size, fmt.Sprintf("op-%d", i))
			if err != nil {
				return fmt.Errorf("op %d: resize to %d bytes: %w", i, size, err)
			}
			live[j] = p

		default:
			j := rng.Intn(len(live))
			h.Free(live[j])
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	elapsed := time.Since(start)

	if stressDump {
		h.DumpState(os.Stdout)
		fmt.Println()
	}

	for _, p := range live {
		h.Free(p)
	}

	if h.CheckLeaks(os.Stdout) {
		return fmt.Errorf("heap leaked after freeing all live pointers (seed %d)", seed)
	}
	if n := h.LiveRegions(); n != 0 {
		return fmt.Errorf("%d regions still mapped after full teardown (seed %d)", n, seed)
	}

	p := message.NewPrinter(language.English)
	p.Printf("completed %d operations in %v (seed %d)\n\n", stressOps, elapsed.Round(time.Millisecond), seed)
	printStats(h.Stats(), h.LiveRegions())
	return nil
}

// printStats renders allocator counters with locale-aware number grouping.
func printStats(s heap.Stats, liveRegions int) {
	p := message.NewPrinter(language.English)
	p.Printf("Allocator statistics:\n")
	p.Printf("  Alloc calls:     %d\n", s.AllocCalls)
	p.Printf("  Free calls:      %d\n", s.FreeCalls)
	p.Printf("  Resize calls:    %d\n", s.ResizeCalls)
	p.Printf("  Free-list hits:  %d\n", s.ReuseHits)
	p.Printf("  Splits:          %d\n", s.Splits)
	p.Printf("  Coalesces:       %d right, %d left\n", s.CoalesceRight, s.CoalesceLeft)
	p.Printf("  Regions:         %d mapped, %d unmapped, %d live\n", s.RegionsMapped, s.RegionsUnmapped, liveRegions)
	p.Printf("  Bytes allocated: %d\n", s.BytesAllocated)
	p.Printf("  Bytes freed:     %d\n", s.BytesFreed)
}
