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

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile and body measurements",
}

var (
	profName   string
	profWeight float64
	profHeight float64
	profJSON   bool

	measureFlags = []string{"biceps", "chest", "waist", "abs", "thighs", "calves"}
	measureVals  = make(map[string]*float64, len(measureFlags))
)

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show profile, BMI and measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			p, ok := s.store.State().UserProfile()
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No profile yet. Run rexos register profile.")
				return nil
			}
			bmi := service.BMI(p)
			rows := service.Measurements(p.Measurements)
			if profJSON {
				return printJSON(cmd, "profile", struct {
					model.Profile
					BMI          float64                  `json:"bmi"`
					BMICategory  string                   `json:"bmiCategory"`
					Measurements []service.MeasurementRow `json:"measurementRows"`
				}{p, bmi, service.BMICategory(bmi), rows})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name: %s\n", p.Name)
			fmt.Fprintf(out, "Weight: %skg\n", rating.FormatNumber(p.Weight))
			fmt.Fprintf(out, "Height: %scm\n", rating.FormatNumber(p.Height))
			fmt.Fprintf(out, "BMI: %.1f (%s)\n", bmi, service.BMICategory(bmi))
			if len(rows) > 0 {
				fmt.Fprintln(out, "MEASUREMENT\tCM")
				for _, r := range rows {
					fmt.Fprintf(out, "%s\t%s\n", r.Name, rating.FormatNumber(r.Value))
				}
			}
			return nil
		})
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields; unset flags are left unchanged",
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch store.ProfilePatch
		changes := 0
		if cmd.Flags().Changed("name") {
			name := strings.TrimSpace(profName)
			if name == "" {
				return fmt.Errorf("--name must not be empty")
			}
			patch.Name = &name
			changes++
		}
		if cmd.Flags().Changed("weight") {
			if profWeight <= 0 {
				return fmt.Errorf("--weight must be > 0")
			}
			w, err := service.WeightKG(profWeight, weightUnit)
			if err != nil {
				return fmt.Errorf("--weight-unit: %w", err)
			}
			patch.Weight = &w
			changes++
		}
		if cmd.Flags().Changed("height") {
			if profHeight <= 0 {
				return fmt.Errorf("--height must be > 0")
			}
			h, err := service.LengthCM(profHeight, lengthUnit)
			if err != nil {
				return fmt.Errorf("--length-unit: %w", err)
			}
			patch.Height = &h
			changes++
		}

		return withStore(cmd, func(s *session) error {
			p, ok := s.store.State().UserProfile()
			if !ok {
				return fmt.Errorf("no profile yet; run rexos register profile")
			}
			m, measured, err := measurementsFromFlags(cmd, p.Measurements)
			if err != nil {
				return err
			}
			if measured {
				patch.Measurements = m
				changes++
			}
			if changes == 0 {
				return fmt.Errorf("set at least one flag")
			}
			if _, err := s.dispatch(cmd, store.UpdateProfile{Patch: patch}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d profile field(s)\n", changes)
			return nil
		})
	},
}

// measurementsFromFlags merges the measurement flags that were set into a
// copy of current.
func measurementsFromFlags(cmd *cobra.Command, current *model.BodyMeasurements) (*model.BodyMeasurements, bool, error) {
	next := &model.BodyMeasurements{}
	if current != nil {
		*next = *current
	}
	fields := map[string]**float64{
		"biceps": &next.Biceps,
		"chest":  &next.Chest,
		"waist":  &next.Waist,
		"abs":    &next.Abs,
		"thighs": &next.Thighs,
		"calves": &next.Calves,
	}
	changed := false
	for _, name := range measureFlags {
		if !cmd.Flags().Changed(name) {
			continue
		}
		v := *measureVals[name]
		if v <= 0 {
			return nil, false, fmt.Errorf("--%s must be > 0", name)
		}
		v, err := service.LengthCM(v, lengthUnit)
		if err != nil {
			return nil, false, fmt.Errorf("--length-unit: %w", err)
		}
		*fields[name] = &v
		changed = true
	}
	if !changed {
		return nil, false, nil
	}
	next.UpdatedAt = nowRFC3339()
	return next, true, nil
}

// bindUnitFlags lets body values be entered in other units. They are stored
// in kg and cm.
func bindUnitFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&weightUnit, "weight-unit", "kg", "Unit for --weight (kg|lb|oz|g)")
	cmd.Flags().StringVar(&lengthUnit, "length-unit", "cm", "Unit for height and measurements (cm|in|mm|m|ft)")
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)

	profileShowCmd.Flags().BoolVar(&profJSON, "json", false, "Output JSON")
	profileUpdateCmd.Flags().StringVar(&profName, "name", "", "Name")
	profileUpdateCmd.Flags().Float64Var(&profWeight, "weight", 0, "Weight (see --weight-unit)")
	profileUpdateCmd.Flags().Float64Var(&profHeight, "height", 0, "Height (see --length-unit)")
	for _, name := range measureFlags {
		v := new(float64)
		measureVals[name] = v
		profileUpdateCmd.Flags().Float64Var(v, name, 0, name+" measurement (see --length-unit)")
	}
	bindUnitFlags(profileUpdateCmd)
}
