package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
	"github.com/PradipLalpura/RexOS/internal/service"
)

func shortDay(day string) string {
	if len(day) > 3 {
		return day[:3]
	}
	return day
}

func formatSets(sets []model.ExerciseSet) string {
	parts := make([]string, 0, len(sets))
	for _, s := range sets {
		parts = append(parts, fmt.Sprintf("%dx%skg", s.Reps, rating.FormatNumber(s.Weight)))
	}
	return strings.Join(parts, ", ")
}

func formatAdditional(e model.AdditionalExercise) string {
	return fmt.Sprintf("%dx%dx%skg", e.Sets, e.Reps, rating.FormatNumber(e.Weight))
}

func pct(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v)))
}

func renderText(w io.Writer, r *service.WeeklyReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "RexOS Weekly Report: %s to %s\n", r.WeekStart, r.WeekEnd)
	if r.ProfileName != "" {
		fmt.Fprintf(&b, "Athlete: %s\n", r.ProfileName)
	}
	fmt.Fprintf(&b, "Consistency: %s (%s)\n", pct(r.Consistency), r.Verdict.Tier)
	fmt.Fprintf(&b, "%s\n", r.Verdict.Message)

	labels := make([]string, 0, len(r.Days))
	habitPct := make([]float64, 0, len(r.Days))
	volumes := make([]float64, 0, len(r.Days))
	calories := make([]float64, 0, len(r.Days))
	for _, d := range r.Days {
		labels = append(labels, shortDay(d.Day))
		p := 0.0
		if d.HabitsTotal > 0 {
			p = float64(d.HabitsDone) / float64(d.HabitsTotal) * 100
		}
		habitPct = append(habitPct, p)
		volumes = append(volumes, d.Volume)
		calories = append(calories, d.Diet.Calories)
	}

	fmt.Fprintln(&b, "\nHabits")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "  %s %d/%d\n", shortDay(d.Day), d.HabitsDone, d.HabitsTotal)
	}
	for _, h := range r.Habits {
		fmt.Fprintf(&b, "  %s %s: %d/7 days\n", h.Icon, h.Name, h.DaysCompleted)
	}
	Bars(&b, "Habit completion", labels, habitPct, "%")

	fmt.Fprintf(&b, "\nWorkout\nTotal weekly volume: %skg over %d days\n", rating.FormatNumber(r.TotalVolume), r.WorkoutDays)
	for _, d := range r.Days {
		name := d.Day
		if d.WorkoutName != "" {
			name += " - " + d.WorkoutName
		}
		fmt.Fprintf(&b, "  %s: %skg\n", name, rating.FormatNumber(d.Volume))
		for _, e := range d.Exercises {
			fmt.Fprintf(&b, "    %s: %s\n", e.ExerciseName, formatSets(e.Sets))
		}
		for _, e := range d.Additional {
			fmt.Fprintf(&b, "    + %s: %s\n", e.Name, formatAdditional(e))
		}
	}
	fmt.Fprintf(&b, "Intensity: %s\n", Sparkline(volumes))

	fmt.Fprintln(&b, "\nDiet")
	fmt.Fprintf(&b, "Averages/day: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", r.DietAverages.Calories, r.DietAverages.Protein, r.DietAverages.Carbs, r.DietAverages.Fat)
	if r.HasTargets {
		fmt.Fprintf(&b, "Targets: %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", r.Targets.Calories, r.Targets.Protein, r.Targets.Carbs, r.Targets.Fat)
	}
	Bars(&b, "Calories", labels, calories, " kcal")

	fmt.Fprintln(&b, "\nDaily Breakdown")
	fmt.Fprintln(&b, "DAY\tDATE\tOVERALL\tHABITS\tWORKOUT\tDIET")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\t%s\n", shortDay(d.Day), d.Date,
			pct(d.Ratings.Overall.Score), pct(d.Ratings.Habit.Score), pct(d.Ratings.Workout.Score), pct(d.Ratings.Diet.Score))
	}

	fmt.Fprintln(&b, "\nNotes")
	if r.NotesRecorded == 0 {
		fmt.Fprintln(&b, "No notes recorded this week.")
	}
	for _, d := range r.Days {
		if d.Note != "" {
			fmt.Fprintf(&b, "%s %s:\n%s\n", d.Day, d.Date, d.Note)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

func renderMarkdown(w io.Writer, r *service.WeeklyReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# RexOS Weekly Report\n\n")
	fmt.Fprintf(&b, "- Week: `%s` to `%s`\n", r.WeekStart, r.WeekEnd)
	if r.ProfileName != "" {
		fmt.Fprintf(&b, "- Athlete: %s\n", r.ProfileName)
	}
	fmt.Fprintf(&b, "- Consistency: **%s** (%s)\n\n", pct(r.Consistency), r.Verdict.Tier)
	fmt.Fprintf(&b, "> %s\n\n", r.Verdict.Message)

	fmt.Fprintf(&b, "## Habits\n\n| Day | Done |\n|---|---|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %s | %d/%d |\n", d.Day, d.HabitsDone, d.HabitsTotal)
	}
	if len(r.Habits) > 0 {
		b.WriteString("\n")
		for _, h := range r.Habits {
			fmt.Fprintf(&b, "- %s %s: %d/7 days\n", h.Icon, h.Name, h.DaysCompleted)
		}
	}

	fmt.Fprintf(&b, "\n## Workout\n\nTotal weekly volume: **%skg** over %d days\n\n", rating.FormatNumber(r.TotalVolume), r.WorkoutDays)
	for _, d := range r.Days {
		if len(d.Exercises) == 0 && len(d.Additional) == 0 {
			continue
		}
		title := d.Day
		if d.WorkoutName != "" {
			title += " - " + d.WorkoutName
		}
		fmt.Fprintf(&b, "### %s (%skg)\n", title, rating.FormatNumber(d.Volume))
		for _, e := range d.Exercises {
			fmt.Fprintf(&b, "- %s: %s\n", e.ExerciseName, formatSets(e.Sets))
		}
		for _, e := range d.Additional {
			fmt.Fprintf(&b, "- %s (additional): %s\n", e.Name, formatAdditional(e))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Diet\n\n")
	fmt.Fprintf(&b, "- Avg calories: %.0f\n- Avg protein: %.0fg\n- Avg carbs: %.0fg\n- Avg fat: %.0fg\n\n",
		r.DietAverages.Calories, r.DietAverages.Protein, r.DietAverages.Carbs, r.DietAverages.Fat)
	fmt.Fprintf(&b, "| Day | kcal | Protein |\n|---|---|---|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %s | %.0f | %.0fg |\n", shortDay(d.Day), d.Diet.Calories, d.Diet.Protein)
	}

	fmt.Fprintf(&b, "\n## Daily Breakdown\n\n| Day | Overall | Habits | Workout | Diet |\n|---|---|---|---|---|\n")
	for _, d := range r.Days {
		fmt.Fprintf(&b, "| %s %s | %s | %s | %s | %s |\n", shortDay(d.Day), d.Date[5:],
			pct(d.Ratings.Overall.Score), pct(d.Ratings.Habit.Score), pct(d.Ratings.Workout.Score), pct(d.Ratings.Diet.Score))
	}

	fmt.Fprintf(&b, "\n## Notes & Reflections\n\n")
	if r.NotesRecorded == 0 {
		b.WriteString("No notes recorded this week.\n")
	}
	for _, d := range r.Days {
		if d.Note != "" {
			fmt.Fprintf(&b, "**%s %s**\n\n%s\n\n", d.Day, d.Date, d.Note)
		}
	}

	fmt.Fprintf(&b, "\n## Progress Review Prompt\n\n```\n%s\n```\n", service.CoachPrompt)

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}
