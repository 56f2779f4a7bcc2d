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

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log, list and delete meals",
}

var (
	mealDate     string
	mealName     string
	mealCalories float64
	mealProtein  float64
	mealCarbs    float64
	mealFat      float64
	mealTime     string
	mealItems    []string
	mealJSON     bool
)

// parseFoodItem reads "name:amount" where amount is grams or carries a mass
// unit such as 7oz or 0.5kg.
func parseFoodItem(spec string) (model.FoodItem, error) {
	i := strings.LastIndex(spec, ":")
	if i <= 0 {
		return model.FoodItem{}, fmt.Errorf("invalid --item %q (expected name:amount)", spec)
	}
	name := strings.TrimSpace(spec[:i])
	if name == "" {
		return model.FoodItem{}, fmt.Errorf("invalid --item %q (expected name:amount)", spec)
	}
	weight, err := service.ParseGrams(spec[i+1:])
	if err != nil {
		return model.FoodItem{}, fmt.Errorf("invalid --item %q: %w", spec, err)
	}
	return model.FoodItem{ID: model.NewID(), Name: name, Weight: weight}, nil
}

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(mealDate)
		if err != nil {
			return err
		}
		name := strings.TrimSpace(mealName)
		if name == "" {
			return fmt.Errorf("--name is required")
		}
		if err := validateNonNegative(map[string]float64{
			"calories": mealCalories, "protein": mealProtein, "carbs": mealCarbs, "fat": mealFat,
		}); err != nil {
			return err
		}
		clock, err := validateClock(mealTime)
		if err != nil {
			return err
		}
		items := make([]model.FoodItem, 0, len(mealItems))
		for _, spec := range mealItems {
			item, err := parseFoodItem(spec)
			if err != nil {
				return err
			}
			items = append(items, item)
		}
		meal := model.NewMeal(name, items, mealCalories, mealProtein, mealCarbs, mealFat, clock)

		return withStore(cmd, func(s *session) error {
			if _, err := s.dispatch(cmd, store.LogMeal{Date: date, Meal: meal}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s (%s) on %s: %.0f kcal, P%.0f C%.0f F%.0f\n",
				meal.MealName, meal.ID, date, meal.Calories, meal.Protein, meal.Carbs, meal.Fat)
			return nil
		})
	},
}

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals of a date with totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(mealDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			log, _ := state.DietLogFor(date)
			meals := log.Meals
			if meals == nil {
				meals = []model.Meal{}
			}
			if mealJSON {
				return printJSON(cmd, "meals", meals)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tTIME\tNAME\tQTY\tKCAL\tP\tC\tF")
			for _, m := range meals {
				fmt.Fprintf(out, "%s\t%s\t%s\t%sg\t%.0f\t%.0f\t%.0f\t%.0f\n",
					m.ID, m.Time, m.MealName, rating.FormatNumber(m.Quantity), m.Calories, m.Protein, m.Carbs, m.Fat)
			}
			t := rating.MealTotals(meals)
			fmt.Fprintf(out, "Total: %.0f kcal, P%.0f C%.0f F%.0f\n", t.Calories, t.Protein, t.Carbs, t.Fat)
			if targets, ok := state.Targets(); ok {
				fmt.Fprintf(out, "Remaining: %.0f kcal, P%.0f C%.0f F%.0f\n",
					targets.Calories-t.Calories, targets.Protein-t.Protein, targets.Carbs-t.Carbs, targets.Fat-t.Fat)
			}
			r := rating.Diet(state, date)
			fmt.Fprintf(out, "Rating: %.0f%% (%s) %s\n", r.Score, r.Tier, r.Message)
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <meal-id>",
	Short: "Delete a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(mealDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			log, _ := s.store.State().DietLogFor(date)
			found := false
			for _, m := range log.Meals {
				found = found || m.ID == args[0]
			}
			if !found {
				return fmt.Errorf("meal %q not found on %s", args[0], date)
			}
			if _, err := s.dispatch(cmd, store.DeleteMeal{Date: date, MealID: args[0]}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted meal %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	for _, c := range []*cobra.Command{mealAddCmd, mealListCmd, mealDeleteCmd} {
		c.Flags().StringVar(&mealDate, "date", "", "Date (YYYY-MM-DD, default today)")
	}
	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealAddCmd.Flags().Float64Var(&mealCalories, "calories", 0, "Calories")
	mealAddCmd.Flags().Float64Var(&mealProtein, "protein", 0, "Protein (g)")
	mealAddCmd.Flags().Float64Var(&mealCarbs, "carbs", 0, "Carbs (g)")
	mealAddCmd.Flags().Float64Var(&mealFat, "fat", 0, "Fat (g)")
	mealAddCmd.Flags().StringVar(&mealTime, "time", "", "Time of day (HH:MM, default now)")
	mealAddCmd.Flags().StringArrayVar(&mealItems, "item", nil, "Food item as name:amount, e.g. rice:200g or oats:2oz (repeatable)")
	mealListCmd.Flags().BoolVar(&mealJSON, "json", false, "Output JSON")
}
