package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/bootmem/heap/printer"
)

var (
	dumpOps   int
	dumpRings bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Run a workload and dump every region's block map",
	RunE: func(cmd *cobra.Command, args []string) error {
		h, release, err := buildHeap()
		if err != nil {
			return err
		}
		defer release()

		runWorkload(h, dumpOps)
		opts := printer.DefaultOptions()
		opts.Rings = dumpRings
		return printer.Fprint(os.Stdout, h, &opts)
	},
}

func init() {
	dumpCmd.Flags().IntVar(&dumpOps, "ops", 50, "Number of workload operations before dumping")
	dumpCmd.Flags().BoolVar(&dumpRings, "rings", false, "Include free-ring traversals")
	rootCmd.AddCommand(dumpCmd)
}
