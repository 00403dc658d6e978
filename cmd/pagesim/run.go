package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/biscuit-labs/pagingsim/internal/config"
	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/mmu"
	"github.com/biscuit-labs/pagingsim/internal/sim"
)

func newRunCmd() *cobra.Command {
	var workloadPath string

	cmd := &cobra.Command{
		Use:   "run <workload-file>",
		Short: "Run a workload to completion on OPT and the configured policy, side by side",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			workloadPath = args[0]
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			algo, err := cfg.Validate()
			if err != nil {
				return err
			}

			f, err := os.Open(workloadPath)
			if err != nil {
				return errors.Wrapf(err, "opening %q", workloadPath)
			}
			defer f.Close()
			list, err := instr.Parse(f)
			if err != nil {
				return err
			}

			co := sim.New(list, cfg.Frames, algo, cfg.OptSeed, cfg.UserSeed)
			co.Run()
			defer co.Free()

			printComparison(cmd, co.OPT, co.User)
			return nil
		},
	}
	return cmd
}

// printComparison renders the two engines' statistics surfaces side
// by side.
func printComparison(cmd *cobra.Command, opt, user *mmu.Engine) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "metric\t%s\t%s\n", opt.Name, user.Name)
	row := func(label string, a, b int64) {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", label, a, b)
	}
	row("clock", opt.Clock, user.Clock)
	row("thrashing_time", opt.ThrashingTime, user.ThrashingTime)
	row("pages_in_swap", opt.SwapCount, user.SwapCount)
	row("internal_fragmentation_bytes", opt.FragBytes, user.FragBytes)
	row("total_instructions", opt.Stats.TotalInstructions, user.Stats.TotalInstructions)
	row("page_faults", opt.Stats.PageFaults, user.Stats.PageFaults)
	row("page_hits", opt.Stats.PageHits, user.Stats.PageHits)
	row("pages_created", opt.Stats.PagesCreated, user.Stats.PagesCreated)
	row("pages_evicted", opt.Stats.PagesEvicted, user.Stats.PagesEvicted)
	row("ptr_allocations", opt.Stats.PtrAllocations, user.Stats.PtrAllocations)
	row("ptr_deletions", opt.Stats.PtrDeletions, user.Stats.PtrDeletions)
	row("bytes_requested", opt.Stats.BytesRequested, user.Stats.BytesRequested)
	tw.Flush()
}
