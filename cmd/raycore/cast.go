package cmd

import (
	"fmt"
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type castOptions struct {
	origin      []float64
	direction   []float64
	maxDistance float64
	nearest     bool
}

func newCastCmd(opts *rootOptions) *cobra.Command {
	castOpts := &castOptions{}

	castCmd := &cobra.Command{
		Use:   "cast",
		Short: "Cast a single ray and list its intersections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ray, err := castOpts.ray()
			if err != nil {
				return err
			}

			s, err := loadScene(opts)
			if err != nil {
				return err
			}

			maxDistance := castOpts.maxDistance
			if maxDistance <= 0 {
				maxDistance = math.Inf(1)
			}

			var hits []core.Intersection
			if castOpts.nearest {
				if hit, ok := s.Nearest(ray, maxDistance); ok {
					hits = []core.Intersection{hit}
				}
			} else {
				hits = core.SortByDistance(s.Intersect(ray, maxDistance))
			}

			out := cmd.OutOrStdout()
			if len(hits) == 0 {
				fmt.Fprintln(out, "No intersections")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)
			table.SetHeader([]string{"#", "Shape", "Distance", "Point", "Normal"})
			for i, hit := range hits {
				normal := "-"
				if surface, ok := hit.Shape.(core.Surface); ok {
					normal = formatVec(surface.Normal(hit.Point))
				}
				table.Append([]string{
					fmt.Sprintf("%d", i),
					geometry.KindOf(hit.Shape).String(),
					fmt.Sprintf("%.6g", hit.Distance),
					formatVec(hit.Point),
					normal,
				})
			}
			table.Render()
			return nil
		},
	}

	flags := castCmd.Flags()
	flags.Float64SliceVar(&castOpts.origin, "origin", []float64{0, 0, 0}, "ray origin x,y,z")
	flags.Float64SliceVar(&castOpts.direction, "direction", []float64{0, 0, -1}, "ray direction x,y,z")
	flags.Float64Var(&castOpts.maxDistance, "max-distance", 0, "ignore hits at or beyond this distance (0 = unbounded)")
	flags.BoolVar(&castOpts.nearest, "nearest", false, "report only the closest hit")
	return castCmd
}

func (o *castOptions) ray() (core.Ray, error) {
	origin, err := vecFlag("origin", o.origin)
	if err != nil {
		return core.Ray{}, err
	}
	direction, err := vecFlag("direction", o.direction)
	if err != nil {
		return core.Ray{}, err
	}
	return core.NewRay(origin, direction)
}
