package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion sets the string printed by --version.
func SetVersion(v string) {
	version = v
}

// Execute runs the anchorgen CLI.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "anchorgen",
		Short:        "anchorgen prints region proposal anchor tables",
		Long:         `anchorgen enumerates the reference boxes a region proposal network uses as priors: every aspect ratio of a square base window, each at every scale.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newFPNCmd())

	return root
}
