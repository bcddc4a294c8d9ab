package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Display shape counts and accelerator statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()
			s, err := loadScene(opts)
			if err != nil {
				return err
			}
			buildTime := time.Since(start)

			out := cmd.OutOrStdout()
			counts := s.KindCounts()
			// Rows in kind declaration order
			kinds := lo.Keys(counts)
			sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

			table := tablewriter.NewWriter(out)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"Shape", "Count"})
			for _, kind := range kinds {
				table.Append([]string{kind.String(), fmt.Sprintf("%d", counts[kind])})
			}
			table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", len(s.Shapes))})
			table.Render()

			box := s.BoundingBox()
			fmt.Fprintf(out, "Bounds: %s - %s\n", formatVec(box.Min), formatVec(box.Max))

			bvh, ok := s.BVH()
			if !ok {
				fmt.Fprintf(out, "Accelerator: %s\n", s.Accelerator)
				return nil
			}

			stats := bvh.Stats()
			table = tablewriter.NewWriter(out)
			table.SetAutoFormatHeaders(false)
			table.SetHeader([]string{"Nodes", "Leaves", "Max depth", "Avg depth", "Load time"})
			table.Append([]string{
				fmt.Sprintf("%d", stats.TotalNodes),
				fmt.Sprintf("%d", stats.LeafShapes),
				fmt.Sprintf("%d", stats.MaxDepth),
				fmt.Sprintf("%.2f", stats.AvgDepth),
				buildTime.String(),
			})
			table.Render()
			return nil
		},
	}
}
