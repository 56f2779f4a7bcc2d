package rexos

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/store"
)

// planFile is the YAML shape accepted by plan set and register workout.
type planFile struct {
	Type string    `yaml:"type"`
	Gym  []planDay `yaml:"gym,omitempty"`
	Home []planDay `yaml:"home,omitempty"`
}

type planDay struct {
	Day       string         `yaml:"day"`
	Workout   string         `yaml:"workout"`
	Exercises []planExercise `yaml:"exercises"`
}

type planExercise struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	Sets int    `yaml:"sets"`
	Reps int    `yaml:"reps"`
}

func readPlanFile(path string) (model.WorkoutPlan, error) {
	if strings.TrimSpace(path) == "" {
		return model.WorkoutPlan{}, fmt.Errorf("--file is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("read plan file: %w", err)
	}
	return parsePlan(data)
}

func parsePlan(data []byte) (model.WorkoutPlan, error) {
	var f planFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return model.WorkoutPlan{}, fmt.Errorf("parse plan yaml: %w", err)
	}
	plan := model.WorkoutPlan{Type: model.PlanType(strings.ToLower(strings.TrimSpace(f.Type)))}
	switch plan.Type {
	case model.PlanGym, model.PlanHome, model.PlanBoth:
	default:
		return model.WorkoutPlan{}, fmt.Errorf("invalid plan type %q (use gym|home|both)", f.Type)
	}

	var err error
	if plan.Gym, err = convertSchedule("gym", f.Gym); err != nil {
		return model.WorkoutPlan{}, err
	}
	if plan.Home, err = convertSchedule("home", f.Home); err != nil {
		return model.WorkoutPlan{}, err
	}
	if (plan.Type == model.PlanGym || plan.Type == model.PlanBoth) && len(plan.Gym) == 0 {
		return model.WorkoutPlan{}, fmt.Errorf("plan type %s needs a gym schedule", plan.Type)
	}
	if (plan.Type == model.PlanHome || plan.Type == model.PlanBoth) && len(plan.Home) == 0 {
		return model.WorkoutPlan{}, fmt.Errorf("plan type %s needs a home schedule", plan.Type)
	}
	return plan, nil
}

func convertSchedule(name string, days []planDay) ([]model.DayWorkout, error) {
	if len(days) == 0 {
		return nil, nil
	}
	seen := make(map[string]bool, len(days))
	out := make([]model.DayWorkout, 0, len(days))
	for _, d := range days {
		day, err := normalizeWeekday(d.Day)
		if err != nil {
			return nil, fmt.Errorf("%s schedule: %w", name, err)
		}
		if seen[day] {
			return nil, fmt.Errorf("%s schedule: %s listed twice", name, day)
		}
		seen[day] = true

		exercises := make([]model.Exercise, 0, len(d.Exercises))
		for _, e := range d.Exercises {
			if strings.TrimSpace(e.Name) == "" {
				return nil, fmt.Errorf("%s schedule: %s has an exercise without a name", name, day)
			}
			if e.Sets < 0 || e.Reps < 0 {
				return nil, fmt.Errorf("%s schedule: %s sets and reps must be >= 0", name, e.Name)
			}
			id := strings.TrimSpace(e.ID)
			if id == "" {
				id = model.NewID()
			}
			exercises = append(exercises, model.Exercise{ID: id, Name: strings.TrimSpace(e.Name), TargetSets: e.Sets, TargetReps: e.Reps})
		}
		out = append(out, model.DayWorkout{Day: day, WorkoutName: strings.TrimSpace(d.Workout), Exercises: exercises})
	}
	return out, nil
}

func normalizeWeekday(v string) (string, error) {
	day := cases.Title(language.English).String(strings.TrimSpace(v))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == day {
			return day, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", v)
}

func planToFile(p model.WorkoutPlan) planFile {
	convert := func(days []model.DayWorkout) []planDay {
		out := make([]planDay, 0, len(days))
		for _, d := range days {
			pd := planDay{Day: d.Day, Workout: d.WorkoutName, Exercises: make([]planExercise, 0, len(d.Exercises))}
			for _, e := range d.Exercises {
				pd.Exercises = append(pd.Exercises, planExercise{ID: e.ID, Name: e.Name, Sets: e.TargetSets, Reps: e.TargetReps})
			}
			out = append(out, pd)
		}
		return out
	}
	return planFile{Type: string(p.Type), Gym: convert(p.Gym), Home: convert(p.Home)}
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show or replace the weekly workout plan",
}

var planFilePath string

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the workout plan as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			plan, ok := s.store.State().Plan()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No workout plan set.")
				return nil
			}
			b, err := yaml.Marshal(planToFile(plan))
			if err != nil {
				return fmt.Errorf("marshal plan yaml: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(b))
			return nil
		})
	},
}

var planSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace the workout plan from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readPlanFile(planFilePath)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.SetWorkoutPlan{Plan: plan}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s workout plan (%d gym days, %d home days)\n", plan.Type, len(plan.Gym), len(plan.Home))
			return nil
		})
	},
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Show or set daily nutrition targets",
}

var (
	targetCalories float64
	targetProtein  float64
	targetCarbs    float64
	targetFat      float64
)

func targetsFromFlags() (model.DietTargets, error) {
	if targetCalories <= 0 || targetProtein <= 0 {
		return model.DietTargets{}, fmt.Errorf("--calories and --protein must be > 0")
	}
	if err := validateNonNegative(map[string]float64{"carbs": targetCarbs, "fat": targetFat}); err != nil {
		return model.DietTargets{}, err
	}
	return model.DietTargets{Calories: targetCalories, Protein: targetProtein, Carbs: targetCarbs, Fat: targetFat}, nil
}

func bindTargetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&targetCalories, "calories", 0, "Daily calorie target")
	cmd.Flags().Float64Var(&targetProtein, "protein", 0, "Daily protein target (g)")
	cmd.Flags().Float64Var(&targetCarbs, "carbs", 0, "Daily carbs target (g)")
	cmd.Flags().Float64Var(&targetFat, "fat", 0, "Daily fat target (g)")
}

var targetsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show nutrition targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			t, ok := s.store.State().Targets()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No diet targets set.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "CALORIES\tPROTEIN\tCARBS\tFAT")
			fmt.Fprintf(cmd.OutOrStdout(), "%.0f\t%.0fg\t%.0fg\t%.0fg\n", t.Calories, t.Protein, t.Carbs, t.Fat)
			return nil
		})
	},
}

var targetsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set nutrition targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := targetsFromFlags()
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.SetDietTargets{Targets: t}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set targets: %.0f kcal, P%.0f C%.0f F%.0f\n", t.Calories, t.Protein, t.Carbs, t.Fat)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd, targetsCmd)
	planCmd.AddCommand(planShowCmd, planSetCmd)
	targetsCmd.AddCommand(targetsShowCmd, targetsSetCmd)

	planSetCmd.Flags().StringVar(&planFilePath, "file", "", "YAML plan file")
	bindTargetFlags(targetsSetCmd)
}
