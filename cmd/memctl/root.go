package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	arenaSize uint64
	regions   int
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect the boot heap allocator",
	Long: `memctl hosts a scratch address space, registers regions with the boot
heap allocator, runs workloads against it, and renders block maps, free
rings, statistics, and invariant checks.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		Uint64Var(&arenaSize, "arena-size", 1<<20, "Size of the hosted address space in bytes")
	rootCmd.PersistentFlags().
		IntVar(&regions, "regions", 2, "Number of regions to register in the arena")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
