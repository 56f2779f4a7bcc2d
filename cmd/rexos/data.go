package rexos

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export or import all data as a JSON snapshot",
}

var (
	exportOut    string
	importIn     string
	importDryRun bool
)

var dataExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON snapshot (--out - for stdout)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withStore(cmd, func(s *session) error {
			var buf bytes.Buffer
			if err := service.ExportSnapshot(&buf, s.store.State()); err != nil {
				return err
			}
			if exportOut == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(exportOut, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write export file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", exportOut)
			return nil
		})
	},
}

var dataImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace all data with a JSON snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		raw, err := os.ReadFile(importIn)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		imported, err := service.ImportSnapshot(raw)
		if err != nil {
			return err
		}
		report := service.RunDoctor(imported)
		if importDryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d habits, %d habit days, %d workout days, %d diet days, %d notes\n",
				len(imported.Habits), len(imported.HabitRecords), len(imported.WorkoutLogs), len(imported.DietLogs), len(imported.Notes))
			fmt.Fprintf(cmd.OutOrStdout(), "Integrity issues: %d\n", report.Issues())
			return nil
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.LoadState{State: imported}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			if report.Issues() > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: imported data has %d integrity issue(s); run rexos doctor --fix\n", report.Issues())
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataExportCmd, dataImportCmd)

	dataExportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path (- for stdout)")
	dataImportCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	dataImportCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate without writing")
}
