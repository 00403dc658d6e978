package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/biscuit-labs/pagingsim/internal/instr"
)

func newGenerateCmd() *cobra.Command {
	var (
		processes int
		ops       int
		seed      uint64
		out       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a pseudo-random workload and write it in the text grammar",
		RunE: func(cmd *cobra.Command, args []string) error {
			if processes <= 0 {
				return errors.New("--processes must be positive")
			}
			list := instr.Generate(processes, ops, seed)

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrapf(err, "creating %q", out)
				}
				defer f.Close()
				w = f
			}
			return instr.Save(w, list)
		},
	}
	cmd.Flags().IntVarP(&processes, "processes", "p", 4, "number of processes (P)")
	cmd.Flags().IntVarP(&ops, "ops", "n", 200, "operation budget (N)")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "generator seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: stdout)")
	return cmd
}
