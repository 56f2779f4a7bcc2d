package rexos

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/rating"
	"github.com/PradipLalpura/RexOS/internal/service"
)

var (
	todayDate  string
	todayJSON  bool
	ratingDate string
	ratingJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's habits, workout, diet and ratings",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(todayDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			status := service.TodaySummary(state, date)
			if todayJSON {
				return printJSON(cmd, "today", status)
			}
			out := cmd.OutOrStdout()
			if !state.IsRegistered {
				fmt.Fprintln(out, "Registration incomplete. Run rexos register status.")
			}
			fmt.Fprintf(out, "Date: %s (%s)\n", status.Date, status.Day)
			fmt.Fprintf(out, "Overall: %.0f%% (%s) %s\n", status.Ratings.Overall.Score, status.Ratings.Overall.Tier, status.Ratings.Overall.Message)
			fmt.Fprintf(out, "Habits: %d/%d\n", status.HabitsDone, status.HabitsTotal)
			if w := status.Workout; w != nil {
				name := w.WorkoutName
				switch {
				case w.RestDay:
					name = "Rest day"
				case name == "":
					name = w.Day
				}
				fmt.Fprintf(out, "Workout: %s | %d/%d exercises | %skg\n", name, w.Completed, len(w.Planned), rating.FormatNumber(w.TotalVolume))
			} else {
				fmt.Fprintln(out, "Workout: no plan")
			}
			fmt.Fprintf(out, "Intake: %.0f kcal | P %.1fg | C %.1fg | F %.1fg (%d meals)\n", status.Calories, status.ProteinG, status.CarbsG, status.FatG, status.MealCount)
			if status.HasTargets {
				fmt.Fprintf(out, "Targets: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", status.TargetCalories, status.TargetProteinG, status.TargetCarbsG, status.TargetFatG)
				fmt.Fprintf(out, "Remaining: %.0f kcal | P %.1fg | C %.1fg | F %.1fg\n", status.RemainingCalories, status.RemainingProteinG, status.RemainingCarbsG, status.RemainingFatG)
			} else {
				fmt.Fprintln(out, "Targets: not set")
			}
			if status.NotePreview != "" {
				fmt.Fprintf(out, "Note: %s\n", status.NotePreview)
			}
			return nil
		})
	},
}

var ratingCmd = &cobra.Command{
	Use:   "rating",
	Short: "Show habit, workout, diet and overall ratings for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(ratingDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			r := rating.Daily(s.store.State(), date)
			if ratingJSON {
				return printJSON(cmd, "rating", r)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "DOMAIN\tSCORE\tTIER\tMESSAGE")
			for _, row := range []struct {
				name string
				r    rating.Rating
			}{
				{"habits", r.Habit},
				{"workout", r.Workout},
				{"diet", r.Diet},
				{"overall", r.Overall},
			} {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f%%\t%s\t%s\n", row.name, row.r.Score, row.r.Tier, row.r.Message)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(todayCmd, ratingCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output JSON")
	ratingCmd.Flags().StringVar(&ratingDate, "date", "", "Date YYYY-MM-DD (default today)")
	ratingCmd.Flags().BoolVar(&ratingJSON, "json", false, "Output JSON")
}
