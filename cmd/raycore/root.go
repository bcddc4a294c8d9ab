package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/raycore/pkg/log"
	"github.com/spf13/cobra"
)

var logger = log.New("raycore")

// options shared by every command
type rootOptions struct {
	scenePath   string
	grid        int
	accelerator string
	verbose     bool
	veryVerbose bool
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "raycore",
		Short: "Ray intersection queries against YAML scenes",
		Long: `raycore builds a bounding volume hierarchy over the shapes of a scene and
answers ray intersection queries against it. Without --scene a grid of
spheres on a ground plane is generated.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.scenePath, "scene", "", "YAML scene description")
	flags.IntVar(&opts.grid, "grid", 10, "size of the generated sphere grid when no scene is given")
	flags.StringVar(&opts.accelerator, "accelerator", "", "override the scene accelerator (bvh or aggregate)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log info messages")
	flags.BoolVar(&opts.veryVerbose, "vv", false, "log debug messages")

	rootCmd.AddCommand(
		newStatsCmd(opts),
		newCastCmd(opts),
		newBenchCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command. An interrupt cancels a running batch.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
