// Package cli implements the dtokit command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/reoring/dtokit/internal/logging"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var debug bool
	logger := zap.NewNop()

	cmd := &cobra.Command{
		Use:           "dtokit",
		Short:         "Select DTO fields and translate errors into HTTP payloads",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if !debug {
				return nil
			}
			l, err := logging.New(true)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging to stderr")

	log := func() *zap.Logger { return logger }
	cmd.AddCommand(checkCmd(log), selectCmd(log), translateCmd())
	return cmd
}
