package rexos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/store"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data and start registration again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("refusing to reset without --yes (consider rexos backup create first)")
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.Reset{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All data erased")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Confirm erasing all data")
}
