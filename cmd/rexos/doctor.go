package rexos

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var doctorFix bool

func printDoctorReport(out io.Writer, r service.DoctorReport) {
	fmt.Fprintf(out, "Duplicate habit records: %d\n", r.DuplicateHabitRecords)
	fmt.Fprintf(out, "Duplicate habit logs: %d\n", r.DuplicateHabitLogs)
	fmt.Fprintf(out, "Unknown habit logs: %d\n", r.UnknownHabitLogs)
	fmt.Fprintf(out, "Duplicate workout logs: %d\n", r.DuplicateWorkoutLogs)
	fmt.Fprintf(out, "Empty exercise logs: %d\n", r.EmptyExerciseLogs)
	fmt.Fprintf(out, "Misnumbered sets: %d\n", r.MisnumberedSets)
	fmt.Fprintf(out, "Duplicate diet logs: %d\n", r.DuplicateDietLogs)
	fmt.Fprintf(out, "Meal quantity mismatches: %d\n", r.QuantityMismatches)
	fmt.Fprintf(out, "Duplicate notes: %d\n", r.DuplicateNotes)
	fmt.Fprintf(out, "Invalid dates: %d\n", r.InvalidDates)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			report := service.RunDoctor(s.store.State())
			printDoctorReport(cmd.OutOrStdout(), report)
			if doctorFix && report.Issues() > 0 {
				repaired := service.Repair(s.store.State())
				state, err := s.dispatch(cmd, store.LoadState{State: repaired})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Repaired issues: %d\n", report.Issues())
				// Re-check after fixes so exit status reflects final state.
				report = service.RunDoctor(state)
			}
			if report.Issues() > 0 {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Attempt safe auto-fixes")
}
