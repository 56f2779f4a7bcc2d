package rexos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/db"
)

// Set with -ldflags at build time.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version/build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd)
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintf(cmd.OutOrStdout(), "rexos %s\n", version)
	fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", commit)
	fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", buildDate)
	fmt.Fprintf(cmd.OutOrStdout(), "schema: v%d\n", db.LatestVersion())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
