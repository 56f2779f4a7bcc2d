package rexos

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/app"
	"github.com/PradipLalpura/RexOS/internal/export"
	"github.com/PradipLalpura/RexOS/internal/service"
)

var (
	reportDate   string
	reportFormat string
	reportOut    string
	reportDir    string
	reportPrompt bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the weekly report (text|markdown|json to stdout, or a file)",
	Long:  "Build the report of the Monday-first week containing --date. Text, markdown and json print to stdout unless --out or --dir is set; pdf is always written to a file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDayFlag(reportDate)
		if err != nil {
			return err
		}
		format := export.FormatText
		if strings.TrimSpace(reportFormat) != "" {
			if format, err = export.ParseFormat(reportFormat); err != nil {
				return err
			}
		}
		return withStore(cmd, func(s *session) error {
			report := service.BuildWeeklyReport(s.store.State(), day)

			toFile := format == export.FormatPDF || reportOut != "" || reportDir != ""
			if !toFile {
				if err := export.Render(cmd.OutOrStdout(), report, format); err != nil {
					return err
				}
			} else {
				dir := reportDir
				if dir == "" {
					dir = s.cfg.ReportDir
				}
				if dir == "" {
					dir = app.DefaultReportDir(s.dbPath)
				}
				path, err := export.New(s.logger).Export(cmd.Context(), report, export.Options{
					Format: format,
					Path:   reportOut,
					Dir:    dir,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report exported to %s\n", path)
			}
			if reportPrompt {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPaste this with the report into your assistant:\n%s\n", service.CoachPrompt)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&reportDate, "date", "", "Any date in the week (default today)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format: text|markdown|json|pdf")
	reportCmd.Flags().StringVar(&reportOut, "out", "", "Output file path")
	reportCmd.Flags().StringVar(&reportDir, "dir", "", "Output directory for the default file name")
	reportCmd.Flags().BoolVar(&reportPrompt, "prompt", false, "Print the progress review prompt")
}
