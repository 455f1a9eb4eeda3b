package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootmem/heap/verify"
)

var verifyOps int

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a workload and check every allocator invariant",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, release, err := buildHeap()
		if err != nil {
			return err
		}
		defer release()

		runWorkload(h, verifyOps)
		if err := verify.AllInvariants(h); err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "all invariants hold")
		return nil
	},
}

func init() {
	verifyCmd.Flags().IntVar(&verifyOps, "ops", 200, "Number of workload operations before checking")
	rootCmd.AddCommand(verifyCmd)
}
