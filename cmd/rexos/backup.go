package rexos

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/app"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage snapshot backups",
}

var (
	backupOut   string
	backupDir   string
	restoreFile string
)

func resolveBackupDir(s *session) string {
	if backupDir != "" {
		return backupDir
	}
	return app.BackupDir(s.dbPath)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a snapshot backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			out := backupOut
			if out == "" {
				out = service.BackupPath(resolveBackupDir(s), time.Now())
			}
			info, err := service.CreateBackup(s.store.State(), out)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			items, err := service.ListBackups(resolveBackupDir(s))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
			}
			return nil
		})
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace all data with a backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		restored, err := service.RestoreBackup(restoreFile)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.LoadState{State: restored}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", restoreFile)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path")
	backupCreateCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (used when --out is empty)")
	backupListCmd.Flags().StringVar(&backupDir, "dir", "", "Backup directory (default: alongside DB under backups/)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .json file path")
}
