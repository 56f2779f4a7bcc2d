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

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "List habits and log daily completion",
}

var (
	habitDate string
	habitUndo bool
)

// findHabit matches a habit by id or, case-insensitively, by name.
func findHabit(s model.RexState, ref string) (model.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, ok := s.HabitByID(ref); ok {
		return h, nil
	}
	for _, h := range s.Habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return model.Habit{}, fmt.Errorf("habit %q not found", ref)
}

func checkMark(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

var habitListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured habits",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(s *session) error {
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tICON\tDESCRIPTION")
			for _, h := range s.store.State().Habits {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", h.ID, h.Name, h.Icon, h.Description)
			}
			return nil
		})
	},
}

var habitDoneCmd = &cobra.Command{
	Use:   "done <habit-id-or-name>",
	Short: "Mark a habit completed for a date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(habitDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			h, err := findHabit(s.store.State(), args[0])
			if err != nil {
				return err
			}
			log := model.HabitLog{HabitID: h.ID, Completed: !habitUndo}
			if log.Completed {
				log.CompletedAt = nowRFC3339()
			}
			state, err := s.dispatch(cmd, store.LogHabit{Date: date, Log: log})
			if err != nil {
				return err
			}
			done, total := service.HabitCompletion(state, date)
			verb := "Completed"
			if habitUndo {
				verb = "Unmarked"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s on %s (%d/%d)\n", verb, h.Name, date, done, total)
			return nil
		})
	},
}

var habitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show habit completion and rating for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateFlag(habitDate)
		if err != nil {
			return err
		}
		return withStore(cmd, func(s *session) error {
			state := s.store.State()
			for _, h := range service.HabitStatuses(state, date) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", checkMark(h.Completed), h.Icon, h.Name)
			}
			r := rating.Habit(state, date)
			fmt.Fprintf(cmd.OutOrStdout(), "Rating: %.0f%% (%s) %s\n", r.Score, r.Tier, r.Message)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(habitCmd)
	habitCmd.AddCommand(habitListCmd, habitDoneCmd, habitStatusCmd)

	habitDoneCmd.Flags().StringVar(&habitDate, "date", "", "Date (YYYY-MM-DD, default today)")
	habitDoneCmd.Flags().BoolVar(&habitUndo, "undo", false, "Mark the habit as not completed")
	habitStatusCmd.Flags().StringVar(&habitDate, "date", "", "Date (YYYY-MM-DD, default today)")
}
