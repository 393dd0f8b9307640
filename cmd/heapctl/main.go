package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// log is the CLI logger; discards everything unless --verbose is set.
var log = slog.New(slog.NewTextHandler(io.Discard, nil))

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect the heapkit allocator",
	Long: `heapctl drives the heapkit memory allocator from the command line.
It can run randomized allocation workloads, walk through a small demonstration
scenario, and report heap state, statistics, and leaks.

The allocator honors the same environment variables as the library:
HEAP_STRATEGY (first-fit, best-fit, worst-fit), HEAP_SCRIBBLE, HEAP_LOG_ALLOC.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
