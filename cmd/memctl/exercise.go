package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootmem/heap/printer"
	"github.com/joshuapare/bootmem/heap/verify"
)

var exerciseOps int

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Run a deterministic workload and print allocator statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, release, err := buildHeap()
		if err != nil {
			return err
		}
		defer release()

		live := runWorkload(h, exerciseOps)
		fmt.Fprintf(os.Stdout, "workload done: %d live allocations\n", len(live))
		if err := printer.FprintStats(os.Stdout, h.Stats()); err != nil {
			return err
		}
		return verify.AllInvariants(h)
	},
}

func init() {
	exerciseCmd.Flags().IntVar(&exerciseOps, "ops", 200, "Number of workload operations")
	rootCmd.AddCommand(exerciseCmd)
}
