package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap"
	"github.com/spf13/cobra"
)

var demoLeak bool

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&demoLeak, "leak", false, "Skip the final frees to demonstrate leak reporting")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through a small allocation scenario",
		Long: `The demo command allocates three labeled blocks, dumps the heap state,
frees the middle block to show coalescing behavior, then releases the rest
and runs a leak check.

Example:
  heapctl demo
  heapctl demo --leak
  HEAP_STRATEGY=best-fit heapctl demo`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

func runDemo() error {
	h := heap.NewFromEnv()
	log.Debug("heap created", "strategy", h.Strategy().String())

	bob, err := h.Alloc(300, "bob")
	if err != nil {
		return fmt.Errorf("allocating bob: %w", err)
	}
	matthew, err := h.Alloc(100, "matthew")
	if err != nil {
		return fmt.Errorf("allocating matthew: %w", err)
	}
	bobby, err := h.Alloc(500, "bobby")
	if err != nil {
		return fmt.Errorf("allocating bobby: %w", err)
	}

	fmt.Println("After three allocations:")
	h.DumpState(os.Stdout)

	fmt.Println("\nFreeing the middle block:")
	h.Free(matthew)
	h.DumpState(os.Stdout)

	fmt.Println("\nGrowing the first block in place:")
	bob, err = h.Resize(bob, 400, "bob")
	if err != nil {
		return fmt.Errorf("resizing bob: %w", err)
	}
	h.DumpState(os.Stdout)

	if !demoLeak {
		h.Free(bob)
		h.Free(bobby)
	} else {
		log.Debug("leaving blocks allocated", "bob", bob, "bobby", bobby)
	}

	fmt.Println()
	leaked := h.CheckLeaks(os.Stdout)

	fmt.Println()
	printStats(h.Stats(), h.LiveRegions())

	if leaked && !demoLeak {
		return fmt.Errorf("unexpected leaks after freeing everything")
	}
	return nil
}
