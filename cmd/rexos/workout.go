package rexos

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var workoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Show the day's workout and log sets",
}

var workoutSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Add, update or remove logged sets",
}

var workoutExtraCmd = &cobra.Command{
	Use:   "extra",
	Short: "Log exercises outside the plan",
}

var (
	workoutDate    string
	workoutVariant string
	workoutName    string
	workoutReps    int
	workoutWeight  float64
	workoutSets    int
	workoutJSON    bool
)

// resolveVariant picks the schedule a set is logged against. The variant
// already recorded on the day wins over the flag.
func resolveVariant(s model.RexState, date, flag string) (model.PlanVariant, error) {
	flag = strings.ToLower(strings.TrimSpace(flag))
	if flag != "" && flag != string(model.VariantGym) && flag != string(model.VariantHome) {
		return "", fmt.Errorf("invalid --variant %q (use gym|home)", flag)
	}
	if log, ok := s.WorkoutLogFor(date); ok && log.PlanType != "" {
		return log.PlanType, nil
	}
	plan, ok := s.Plan()
	if !ok {
		if flag != "" {
			return model.PlanVariant(flag), nil
		}
		return model.VariantGym, nil
	}
	if plan.Type == model.PlanBoth && flag != "" {
		return model.PlanVariant(flag), nil
	}
	return plan.VariantFor(""), nil
}

func parseSetNumber(v string) (int, error) {
	return parsePositiveInt("set number", v)
}

var workoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show planned exercises and logged sets for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			w, ok := service.WorkoutForDay(state, date)
			if workoutJSON {
				if !ok {
					return printJSON(cmd, "workout", nil)
				}
				return printJSON(cmd, "workout", w)
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, "No workout plan set.")
				return nil
			}
			title := w.Day
			if w.WorkoutName != "" {
				title += " - " + w.WorkoutName
			}
			fmt.Fprintf(out, "%s (%s, %s)\n", title, w.Date, w.Variant)
			if w.RestDay {
				fmt.Fprintln(out, "Rest day")
			}
			for _, e := range w.Planned {
				fmt.Fprintf(out, "%s %s [%s] target %dx%d\n", checkMark(len(e.Sets) > 0), e.Name, e.ID, e.TargetSets, e.TargetReps)
				printSets(cmd, e.Sets)
			}
			for _, e := range w.Unplanned {
				fmt.Fprintf(out, "[x] %s [%s] (not in plan)\n", e.ExerciseName, e.ExerciseID)
				printSets(cmd, e.Sets)
			}
			for _, e := range w.Additional {
				fmt.Fprintf(out, "+ %s [%s] %dx%d @ %skg\n", e.Name, e.ID, e.Sets, e.Reps, rating.FormatNumber(e.Weight))
			}
			fmt.Fprintf(out, "Completed: %d/%d\n", w.Completed, len(w.Planned))
			fmt.Fprintf(out, "Volume: %skg (plan %skg)\n", rating.FormatNumber(w.TotalVolume), rating.FormatNumber(w.PlanVolume))
			r := rating.Workout(state, date)
			fmt.Fprintf(out, "Rating: %.0f%% (%s) %s\n", r.Score, r.Tier, r.Message)
			return nil
		})
	},
}

func printSets(cmd *cobra.Command, sets []model.ExerciseSet) {
	for _, set := range sets {
		fmt.Fprintf(cmd.OutOrStdout(), "    set %d: %d reps @ %skg\n", set.SetNumber, set.Reps, rating.FormatNumber(set.Weight))
	}
}

var workoutSetAddCmd = &cobra.Command{
	Use:   "add <exercise-id>",
	Short: "Log a set for an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		if workoutReps <= 0 {
			return fmt.Errorf("--reps must be > 0")
		}
		if workoutWeight < 0 {
			return fmt.Errorf("--weight must be >= 0")
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			exerciseID := strings.TrimSpace(args[0])
			name := strings.TrimSpace(workoutName)
			if plan, ok := state.Plan(); ok {
				if e, found := plan.ExerciseByID(exerciseID); found && name == "" {
					name = e.Name
				}
			}
			if log, ok := state.WorkoutLogFor(date); ok && name == "" {
				if el, found := log.ExerciseLogFor(exerciseID); found {
					name = el.ExerciseName
				}
			}
			if name == "" {
				return fmt.Errorf("exercise %q is not in the plan; pass --name to log it anyway", exerciseID)
			}
			variant, err := resolveVariant(state, date, workoutVariant)
			if err != nil {
				return err
			}

			state, err = s.dispatch(cmd, store.AddSet{
				Date:         date,
				Variant:      variant,
				ExerciseID:   exerciseID,
				ExerciseName: name,
				Reps:         workoutReps,
				Weight:       workoutWeight,
			})
			if err != nil {
				return err
			}
			log, _ := state.WorkoutLogFor(date)
			el, _ := log.ExerciseLogFor(exerciseID)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s set %d: %d reps @ %skg\n", name, len(el.Sets), workoutReps, rating.FormatNumber(workoutWeight))
			return nil
		})
	},
}

var workoutSetUpdateCmd = &cobra.Command{
	Use:   "update <exercise-id> <set-number>",
	Short: "Edit reps or weight of a logged set",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		n, err := parseSetNumber(args[1])
		if err != nil {
			return err
		}
		a := store.UpdateSet{Date: date, ExerciseID: args[0], SetNumber: n}
		if cmd.Flags().Changed("reps") {
			if workoutReps <= 0 {
				return fmt.Errorf("--reps must be > 0")
			}
			reps := workoutReps
			a.Reps = &reps
		}
		if cmd.Flags().Changed("weight") {
			if workoutWeight < 0 {
				return fmt.Errorf("--weight must be >= 0")
			}
			weight := workoutWeight
			a.Weight = &weight
		}
		if a.Reps == nil && a.Weight == nil {
			return fmt.Errorf("set --reps and/or --weight")
		}
		return withStore(cmd, func(s *session) error {
			if err := requireSet(s.store.State(), date, args[0], n); err != nil {
				return err
			}
			if _, err := s.dispatch(cmd, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated set %d of %s\n", n, args[0])
			return nil
		})
	},
}

var workoutSetRemoveCmd = &cobra.Command{
	Use:   "remove <exercise-id> <set-number>",
	Short: "Remove a logged set; later sets are renumbered",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		n, err := parseSetNumber(args[1])
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if err := requireSet(s.store.State(), date, args[0], n); err != nil {
				return err
			}
			if _, err := s.dispatch(cmd, store.RemoveSet{Date: date, ExerciseID: args[0], SetNumber: n}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed set %d of %s\n", n, args[0])
			return nil
		})
	},
}

func requireSet(s model.RexState, date, exerciseID string, n int) error {
	log, ok := s.WorkoutLogFor(date)
	if !ok {
		return fmt.Errorf("no workout logged on %s", date)
	}
	el, ok := log.ExerciseLogFor(exerciseID)
	if !ok || n > len(el.Sets) {
		return fmt.Errorf("set %d of %s not found on %s", n, exerciseID, date)
	}
	return nil
}

var workoutCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Mark the day's workout finished",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			log, ok := state.WorkoutLogFor(date)
			if !ok {
				variant, err := resolveVariant(state, date, workoutVariant)
				if err != nil {
					return err
				}
				log = model.WorkoutLog{Date: date, PlanType: variant, Exercises: []model.ExerciseLog{}}
			}
			log.CompletedAt = nowRFC3339()
			if _, err := s.dispatch(cmd, store.UpsertWorkoutLog{Log: log}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Workout on %s marked complete\n", date)
			return nil
		})
	},
}

var workoutExtraAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log an additional exercise",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(workoutName)
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		if workoutSets <= 0 || workoutReps <= 0 {
			return fmt.Errorf("--sets and --reps must be > 0")
		}
		if workoutWeight < 0 {
			return fmt.Errorf("--weight must be >= 0")
		}
		return withStore(cmd, func(s *session) error {
			variant, err := resolveVariant(s.store.State(), date, workoutVariant)
			if err != nil {
				return err
			}
			ex := model.AdditionalExercise{ID: model.NewID(), Name: name, Sets: workoutSets, Reps: workoutReps, Weight: workoutWeight}
			if _, err := s.dispatch(cmd, store.AddAdditionalExercise{Date: date, Variant: variant, Exercise: ex}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s): %dx%d @ %skg\n", name, ex.ID, ex.Sets, ex.Reps, rating.FormatNumber(ex.Weight))
			return nil
		})
	},
}

var workoutExtraRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an additional exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(workoutDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			log, ok := s.store.State().WorkoutLogFor(date)
			found := false
			for _, e := range log.AdditionalExercises {
				found = found || e.ID == args[0]
			}
			if !ok || !found {
				return fmt.Errorf("additional exercise %q not found on %s", args[0], date)
			}
			if _, err := s.dispatch(cmd, store.RemoveAdditionalExercise{Date: date, ExerciseID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed additional exercise %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(workoutCmd)
	workoutCmd.AddCommand(workoutShowCmd, workoutSetCmd, workoutExtraCmd, workoutCompleteCmd)
	workoutSetCmd.AddCommand(workoutSetAddCmd, workoutSetUpdateCmd, workoutSetRemoveCmd)
	workoutExtraCmd.AddCommand(workoutExtraAddCmd, workoutExtraRemoveCmd)

	for _, c := range []*cobra.Command{workoutShowCmd, workoutSetAddCmd, workoutSetUpdateCmd, workoutSetRemoveCmd, workoutCompleteCmd, workoutExtraAddCmd, workoutExtraRemoveCmd} {
		c.Flags().StringVar(&workoutDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}
	for _, c := range []*cobra.Command{workoutSetAddCmd, workoutCompleteCmd, workoutExtraAddCmd} {
		c.Flags().StringVar(&workoutVariant, "variant", "", "Schedule for plans of type both: gym|home")
	}
	workoutShowCmd.Flags().BoolVar(&workoutJSON, "json", false, "Output JSON")

	workoutSetAddCmd.Flags().IntVar(&workoutReps, "reps", 0, "Reps")
	workoutSetAddCmd.Flags().Float64Var(&workoutWeight, "weight", 0, "Weight in kg")
	workoutSetAddCmd.Flags().StringVar(&workoutName, "name", "", "Exercise name when it is not in the plan")
	workoutSetUpdateCmd.Flags().IntVar(&workoutReps, "reps", 0, "New reps")
	workoutSetUpdateCmd.Flags().Float64Var(&workoutWeight, "weight", 0, "New weight in kg")

	workoutExtraAddCmd.Flags().StringVar(&workoutName, "name", "", "Exercise name")
	workoutExtraAddCmd.Flags().IntVar(&workoutSets, "sets", 0, "Sets")
	workoutExtraAddCmd.Flags().IntVar(&workoutReps, "reps", 0, "Reps per set")
	workoutExtraAddCmd.Flags().Float64Var(&workoutWeight, "weight", 0, "Weight in kg")
}
