package cmd

import (
	"github.com/df07/raycore/pkg/log"
	"github.com/spf13/cobra"
)

// setupLogging sends logs to stderr, keeping stdout for tables, and sets
// the level from the flags alone
func setupLogging(cmd *cobra.Command, opts *rootOptions) {
	log.SetSink(cmd.ErrOrStderr())
	log.SetLevel(log.Notice)

	if opts.verbose {
		log.SetLevel(log.Info)
	}

	if opts.veryVerbose {
		log.SetLevel(log.Debug)
	}
}
