package rexos

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/export"
	"github.com/PradipLalpura/RexOS/internal/rating"
	"github.com/PradipLalpura/RexOS/internal/service"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Habit, volume and nutrition trends over a range",
}

var (
	analyticsJSON      bool
	analyticsWeek      string
	analyticsMonth     string
	analyticsFrom      string
	analyticsTo        string
	analyticsEnd       string
	analyticsTolerance float64
	analyticsCharts    bool
)

func runAnalytics(cmd *cobra.Command, from, to time.Time) error {
	if analyticsTolerance < 0 || analyticsTolerance > 1 {
		return fmt.Errorf("--tolerance must be between 0 and 1")
	}
	return withStore(cmd, func(s *session) error {
		report, err := service.AnalyticsBetween(s.store.State(), from, to, analyticsTolerance)
		if err != nil {
			return err
		}
		return printAnalytics(cmd, report)
	})
}

func printAnalytics(cmd *cobra.Command, report *service.AnalyticsReport) error {
	if analyticsJSON {
		return printJSON(cmd, "analytics", report)
	}
	printAnalyticsTable(cmd.OutOrStdout(), report)
	return nil
}

func printAnalyticsTable(out io.Writer, r *service.AnalyticsReport) {
	fmt.Fprintf(out, "Range: %s to %s (%d days)\n", r.FromDate, r.ToDate, len(r.Days))
	if r.TrackedHabits {
		fmt.Fprintf(out, "Avg habit completion: %.0f%%\n", r.AverageHabitPercent)
	} else {
		fmt.Fprintln(out, "Avg habit completion: no habits tracked")
	}
	fmt.Fprintf(out, "Total volume: %skg over %d workout days\n", rating.FormatNumber(r.TotalVolume), r.WorkoutDays)
	fmt.Fprintf(out, "Avg calories/day: %.0f (%d days logged)\n", r.AverageCaloriesPerDay, r.DaysWithCalories)
	fmt.Fprintf(out, "Avg protein/day: %.0fg\n", r.AverageProteinPerDay)
	fmt.Fprintf(out, "Consistency: %.0f%% (%s)\n", r.Consistency, rating.WeeklyVerdict(r.Consistency).Tier)
	if r.HighestDay != nil && r.LowestDay != nil {
		fmt.Fprintf(out, "Highest day: %s (%.0f kcal)\n", r.HighestDay.Date, r.HighestDay.Calories)
		fmt.Fprintf(out, "Lowest day: %s (%.0f kcal)\n", r.LowestDay.Date, r.LowestDay.Calories)
	}
	fmt.Fprintf(out, "Adherence: %d/%d days (%.1f%%)\n", r.Adherence.WithinGoalDays, r.Adherence.EvaluatedDays, r.Adherence.PercentWithin)

	fmt.Fprintln(out, "DATE\tHABITS\tVOLUME\tKCAL\tPROTEIN\tOVERALL")
	for _, d := range r.Days {
		fmt.Fprintf(out, "%s\t%.0f%%\t%s\t%.0f\t%.0f\t%.0f%%\n", d.Date, d.HabitPercent, rating.FormatNumber(d.Volume), d.Calories, d.Protein, d.Overall)
	}

	if !analyticsCharts || len(r.Days) == 0 {
		return
	}
	labels := make([]string, 0, len(r.Days))
	habits := make([]float64, 0, len(r.Days))
	volume := make([]float64, 0, len(r.Days))
	calories := make([]float64, 0, len(r.Days))
	for _, d := range r.Days {
		labels = append(labels, d.Date[5:])
		habits = append(habits, d.HabitPercent)
		volume = append(volume, d.Volume)
		calories = append(calories, d.Calories)
	}
	// ranges longer than a month print sparklines instead of bars
	if len(r.Days) > 31 {
		fmt.Fprintf(out, "Habits:   %s\n", export.Sparkline(habits))
		fmt.Fprintf(out, "Volume:   %s\n", export.Sparkline(volume))
		fmt.Fprintf(out, "Calories: %s\n", export.Sparkline(calories))
		return
	}
	export.Bars(out, "Habit completion", labels, habits, "%")
	export.Bars(out, "Volume", labels, volume, "kg")
	export.Bars(out, "Calories", labels, calories, " kcal")
}

var analyticsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Analytics for an ISO week (default current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := dates.ResolveWeek(strings.TrimSpace(analyticsWeek))
		if err != nil {
			return err
		}
		return runAnalytics(cmd, from, to)
	},
}

var analyticsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Analytics for a calendar month (default current)",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := dates.ResolveMonth(strings.TrimSpace(analyticsMonth))
		if err != nil {
			return err
		}
		return runAnalytics(cmd, from, to)
	},
}

var analyticsRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Analytics between two dates (inclusive)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if analyticsFrom == "" || analyticsTo == "" {
			return fmt.Errorf("--from and --to are required")
		}
		from, err := dates.Parse(analyticsFrom)
		if err != nil {
			return err
		}
		to, err := dates.Parse(analyticsTo)
		if err != nil {
			return err
		}
		return runAnalytics(cmd, from, to)
	},
}

var analyticsPeriodCmd = &cobra.Command{
	Use:   "period <day|week|month|6months|year>",
	Short: "Analytics for a trailing period ending at --end",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		end, err := parseDayFlag(analyticsEnd)
		if err != nil {
			return err
		}
		list, err := service.PeriodDates(args[0], end)
		if err != nil {
			return err
		}
		if analyticsTolerance < 0 || analyticsTolerance > 1 {
			return fmt.Errorf("--tolerance must be between 0 and 1")
		}
		return withStore(cmd, func(s *session) error {
			return printAnalytics(cmd, service.AnalyticsRange(s.store.State(), list, analyticsTolerance))
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.AddCommand(analyticsWeekCmd, analyticsMonthCmd, analyticsRangeCmd, analyticsPeriodCmd)

	analyticsCmd.PersistentFlags().BoolVar(&analyticsJSON, "json", false, "Output JSON")
	analyticsCmd.PersistentFlags().BoolVar(&analyticsCharts, "charts", false, "Print text charts under the table")
	analyticsCmd.PersistentFlags().Float64Var(&analyticsTolerance, "tolerance", service.DefaultAdherenceTolerance, "Adherence tolerance as a fraction of target")
	analyticsWeekCmd.Flags().StringVar(&analyticsWeek, "week", "", "ISO week YYYY-Www")
	analyticsMonthCmd.Flags().StringVar(&analyticsMonth, "month", "", "Month YYYY-MM")
	analyticsRangeCmd.Flags().StringVar(&analyticsFrom, "from", "", "Start date YYYY-MM-DD")
	analyticsRangeCmd.Flags().StringVar(&analyticsTo, "to", "", "End date YYYY-MM-DD")
	analyticsPeriodCmd.Flags().StringVar(&analyticsEnd, "end", "", "Last date of the period (default today)")
}
