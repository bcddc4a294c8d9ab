package cmd

import (
	"fmt"
	"math/rand"

	"github.com/df07/raycore/pkg/caster"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type benchOptions struct {
	rays    int
	workers int
	seed    int64
	nearest bool
}

func newBenchCmd(opts *rootOptions) *cobra.Command {
	benchOpts := &benchOptions{}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "Cast a batch of random rays and report throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(opts)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewSource(benchOpts.seed))
			rays, err := caster.RandomRays(rng, s.FiniteBounds(), benchOpts.rays)
			if err != nil {
				return err
			}

			_, stats, err := caster.Cast(cmd.Context(), s, rays, caster.Options{
				Workers:     benchOpts.workers,
				NearestOnly: benchOpts.nearest,
			})
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"Accelerator", "Rays", "Workers", "Hit rays", "Hits", "Time", "Rays/s"})
			table.Append([]string{
				string(s.Accelerator),
				fmt.Sprintf("%d", stats.Rays),
				fmt.Sprintf("%d", stats.Workers),
				fmt.Sprintf("%d", stats.HitRays),
				fmt.Sprintf("%d", stats.TotalHits),
				stats.Elapsed.String(),
				fmt.Sprintf("%.0f", stats.RaysPerSecond()),
			})
			table.Render()
			return nil
		},
	}

	flags := benchCmd.Flags()
	flags.IntVar(&benchOpts.rays, "rays", 100000, "number of random rays")
	flags.IntVar(&benchOpts.workers, "workers", 0, "worker goroutines (0 = one per CPU)")
	flags.Int64Var(&benchOpts.seed, "seed", 1, "random seed")
	flags.BoolVar(&benchOpts.nearest, "nearest", false, "keep only the closest hit of each ray")
	return benchCmd
}
