package rexos

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Walk through first-time setup",
	Long:  "Registration has four steps: profile, habits, workout plan and diet targets. Run register complete once they are done.",
}

var (
	regName   string
	regWeight float64
	regHeight float64
	regHabits []string
	regPreset []string
	regList   bool
	regPlan   string

	weightUnit string
	lengthUnit string
)

var registerProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Step 1: name, weight (kg) and height (cm)",
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.TrimSpace(regName)
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		if regWeight <= 0 || regHeight <= 0 {
			return fmt.Errorf("--weight and --height must be > 0")
		}
		weight, err := service.WeightKG(regWeight, weightUnit)
		if err != nil {
			return fmt.Errorf("--weight-unit: %w", err)
		}
		height, err := service.LengthCM(regHeight, lengthUnit)
		if err != nil {
			return fmt.Errorf("--length-unit: %w", err)
		}
		return withStore(cmd, func(s *session) error {
			profile := model.Profile{Name: name, Weight: weight, Height: height, CreatedAt: nowRFC3339()}
			if _, err := s.dispatch(cmd, store.SetProfile{Profile: profile}, store.SetStep{Step: 2}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile for %s\n", name)
			return nil
		})
	},
}

// parseHabitSpec reads "name|icon|description"; icon and description are
// optional.
func parseHabitSpec(spec string) (model.Habit, error) {
	parts := strings.SplitN(spec, "|", 3)
	h := model.Habit{ID: model.NewID(), Name: strings.TrimSpace(parts[0])}
	if h.Name == "" {
		return model.Habit{}, fmt.Errorf("invalid --habit %q (name is required)", spec)
	}
	if len(parts) > 1 {
		h.Icon = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		h.Description = strings.TrimSpace(parts[2])
	}
	return h, nil
}

var presetHabits = []model.Habit{
	{Name: "Sleep 7-8 Hours", Icon: "🌙", Description: "Quality sleep for recovery and mental clarity"},
	{Name: "Drink Water", Icon: "💧", Description: "Stay hydrated, minimum 2-3 liters daily"},
	{Name: "Reading", Icon: "📖", Description: "Read for at least 30 minutes daily"},
	{Name: "Meditation", Icon: "🧘", Description: "Practice mindfulness for 10-20 minutes"},
	{Name: "Workout", Icon: "💪", Description: "Complete your daily training session"},
	{Name: "Journaling", Icon: "📝", Description: "Reflect on your day and set intentions"},
	{Name: "Cold Shower", Icon: "🥶", Description: "Start or end your day with cold exposure"},
	{Name: "No Social Media", Icon: "📵", Description: "Limit mindless scrolling"},
	{Name: "Walk 10k Steps", Icon: "🚶", Description: "Stay active throughout the day"},
	{Name: "Healthy Eating", Icon: "🥗", Description: "Follow your nutrition plan strictly"},
}

// presetHabit looks a preset up by case-insensitive name and gives it a
// fresh ID.
func presetHabit(name string) (model.Habit, error) {
	for _, h := range presetHabits {
		if strings.EqualFold(h.Name, strings.TrimSpace(name)) {
			h.ID = model.NewID()
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("unknown preset %q (see register habits --list-presets)", name)
}

var registerHabitsCmd = &cobra.Command{
	Use:   "habits",
	Short: "Step 2: the daily habits to track",
	RunE: func(cmd *cobra.Command, args []string) error {
		if regList {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "NAME\tICON\tDESCRIPTION")
			for _, h := range presetHabits {
				fmt.Fprintf(out, "%s\t%s\t%s\n", h.Name, h.Icon, h.Description)
			}
			return nil
		}
		if len(regHabits)+len(regPreset) == 0 {
			return fmt.Errorf("at least one --habit or --preset is required")
		}
		habits := make([]model.Habit, 0, len(regHabits)+len(regPreset))
		for _, name := range regPreset {
			h, err := presetHabit(name)
			if err != nil {
				return err
			}
			habits = append(habits, h)
		}
		for _, spec := range regHabits {
			h, err := parseHabitSpec(spec)
			if err != nil {
				return err
			}
			habits = append(habits, h)
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.SetHabits{Habits: habits}, store.SetStep{Step: 3}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d habit(s)\n", len(habits))
			return nil
		})
	},
}

var registerWorkoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Step 3: the weekly workout plan from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := readPlanFile(regPlan)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.SetWorkoutPlan{Plan: plan}, store.SetStep{Step: model.LastRegistrationStep}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s workout plan\n", plan.Type)
			return nil
		})
	},
}

var registerDietCmd = &cobra.Command{
	Use:   "diet",
	Short: "Step 4: daily nutrition targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := targetsFromFlags()
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.SetDietTargets{Targets: t}, store.SetStep{Step: model.LastRegistrationStep}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved diet targets")
			return nil
		})
	},
}

var registerCompleteCmd = &cobra.Command{
	Use:   "complete",
	Short: "Finish registration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			if _, ok := state.UserProfile(); !ok {
				return fmt.Errorf("register a profile first (rexos register profile)")
			}
			if _, err := s.dispatch(cmd, store.CompleteRegistration{}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registration complete")
			return nil
		})
	},
}

var registerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show registration progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registered: %t\n", state.IsRegistered)
			fmt.Fprintf(out, "Step: %d/%d\n", state.CurrentStep, model.LastRegistrationStep)
			_, hasProfile := state.UserProfile()
			_, hasPlan := state.Plan()
			_, hasTargets := state.Targets()
			fmt.Fprintf(out, "Profile: %s\n", doneLabel(hasProfile))
			fmt.Fprintf(out, "Habits: %d\n", len(state.Habits))
			fmt.Fprintf(out, "Workout plan: %s\n", doneLabel(hasPlan))
			fmt.Fprintf(out, "Diet targets: %s\n", doneLabel(hasTargets))
			return nil
		})
	},
}

func doneLabel(ok bool) string {
	if ok {
		return "set"
	}
	return "missing"
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.AddCommand(registerProfileCmd, registerHabitsCmd, registerWorkoutCmd, registerDietCmd, registerCompleteCmd, registerStatusCmd)

	registerProfileCmd.Flags().StringVar(&regName, "name", "", "Your name")
	registerProfileCmd.Flags().Float64Var(&regWeight, "weight", 0, "Weight (see --weight-unit)")
	registerProfileCmd.Flags().Float64Var(&regHeight, "height", 0, "Height (see --length-unit)")
	bindUnitFlags(registerProfileCmd)
	registerHabitsCmd.Flags().StringArrayVar(&regHabits, "habit", nil, "Habit as name|icon|description (repeatable)")
	registerHabitsCmd.Flags().StringArrayVar(&regPreset, "preset", nil, "Preset habit by name (repeatable)")
	registerHabitsCmd.Flags().BoolVar(&regList, "list-presets", false, "List preset habits and exit")
	registerWorkoutCmd.Flags().StringVar(&regPlan, "file", "", "YAML plan file")
	bindTargetFlags(registerDietCmd)
}
