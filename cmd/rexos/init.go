package rexos

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/config"
	"github.com/PradipLalpura/RexOS/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local RexOS database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(_ config.Config, path string, sqldb *sql.DB) error {
			version, err := db.SchemaVersion(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized RexOS database at %s (schema v%d)\n", path, version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
