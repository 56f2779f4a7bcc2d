package service

import (
	"strings"
	"unicode/utf8"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
)

const notePreviewLen = 100

type HabitStatus struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Completed bool   `json:"completed"`
}

type ExerciseStatus struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	TargetSets int                 `json:"target_sets"`
	TargetReps int                 `json:"target_reps"`
	Sets       []model.ExerciseSet `json:"sets"`
}

// DayWorkout is the planned session of a date joined with what was logged.
type DayWorkout struct {
	Date        string                     `json:"date"`
	Day         string                     `json:"day"`
	Variant     model.PlanVariant          `json:"variant"`
	WorkoutName string                     `json:"workout_name,omitempty"`
	RestDay     bool                       `json:"rest_day"`
	Planned     []ExerciseStatus           `json:"planned"`
	Unplanned   []model.ExerciseLog        `json:"unplanned,omitempty"`
	Additional  []model.AdditionalExercise `json:"additional,omitempty"`
	Completed   int                        `json:"completed"`
	PlanVolume  float64                    `json:"plan_volume"`
	TotalVolume float64                    `json:"total_volume"`
	Logged      bool                       `json:"logged"`
}

type TodayStatus struct {
	Date              string            `json:"date"`
	Day               string            `json:"day"`
	Ratings           rating.DayRatings `json:"ratings"`
	HabitsDone        int               `json:"habits_done"`
	HabitsTotal       int               `json:"habits_total"`
	Habits            []HabitStatus     `json:"habits"`
	Workout           *DayWorkout       `json:"workout,omitempty"`
	Calories          float64           `json:"calories"`
	ProteinG          float64           `json:"protein_g"`
	CarbsG            float64           `json:"carbs_g"`
	FatG              float64           `json:"fat_g"`
	MealCount         int               `json:"meal_count"`
	HasTargets        bool              `json:"has_targets"`
	TargetCalories    float64           `json:"target_calories,omitempty"`
	TargetProteinG    float64           `json:"target_protein_g,omitempty"`
	TargetCarbsG      float64           `json:"target_carbs_g,omitempty"`
	TargetFatG        float64           `json:"target_fat_g,omitempty"`
	RemainingCalories float64           `json:"remaining_calories,omitempty"`
	RemainingProteinG float64           `json:"remaining_protein_g,omitempty"`
	RemainingCarbsG   float64           `json:"remaining_carbs_g,omitempty"`
	RemainingFatG     float64           `json:"remaining_fat_g,omitempty"`
	NotePreview       string            `json:"note_preview,omitempty"`
}

func TodaySummary(s model.RexState, date string) *TodayStatus {
	status := &TodayStatus{
		Date:    date,
		Day:     dates.DayName(date),
		Ratings: rating.Daily(s, date),
	}
	status.HabitsDone, status.HabitsTotal = HabitCompletion(s, date)
	status.Habits = HabitStatuses(s, date)

	if w, ok := WorkoutForDay(s, date); ok {
		status.Workout = &w
	}

	totals := DayMealTotals(s, date)
	status.Calories = totals.Calories
	status.ProteinG = totals.Protein
	status.CarbsG = totals.Carbs
	status.FatG = totals.Fat
	if log, ok := s.DietLogFor(date); ok {
		status.MealCount = len(log.Meals)
	}

	if t, ok := s.Targets(); ok {
		status.HasTargets = true
		status.TargetCalories = t.Calories
		status.TargetProteinG = t.Protein
		status.TargetCarbsG = t.Carbs
		status.TargetFatG = t.Fat
		status.RemainingCalories = t.Calories - totals.Calories
		status.RemainingProteinG = t.Protein - totals.Protein
		status.RemainingCarbsG = t.Carbs - totals.Carbs
		status.RemainingFatG = t.Fat - totals.Fat
	}

	if note, ok := s.NoteFor(date); ok {
		status.NotePreview = Preview(note.Content, notePreviewLen)
	}
	return status
}

func HabitStatuses(s model.RexState, date string) []HabitStatus {
	record, _ := s.HabitRecord(date)
	done := make(map[string]bool, len(record.Logs))
	for _, l := range record.Logs {
		if l.Completed {
			done[l.HabitID] = true
		}
	}
	out := make([]HabitStatus, 0, len(s.Habits))
	for _, h := range s.Habits {
		out = append(out, HabitStatus{ID: h.ID, Name: h.Name, Icon: h.Icon, Completed: done[h.ID]})
	}
	return out
}

// WorkoutForDay joins the plan with the log of date. It reports false when
// there is neither a plan nor a log.
func WorkoutForDay(s model.RexState, date string) (DayWorkout, bool) {
	plan, hasPlan := s.Plan()
	log, logged := s.WorkoutLogFor(date)
	if !hasPlan && !logged {
		return DayWorkout{}, false
	}

	out := DayWorkout{
		Date:       date,
		Day:        dates.DayName(date),
		Variant:    model.VariantGym,
		Logged:     logged,
		Planned:    []ExerciseStatus{},
		Additional: log.AdditionalExercises,
	}
	if logged && log.PlanType != "" {
		out.Variant = log.PlanType
	}

	seen := map[string]bool{}
	if hasPlan {
		out.Variant = plan.VariantFor(log.PlanType)
		day, ok := plan.DayFor(out.Variant, out.Day)
		out.WorkoutName = day.WorkoutName
		out.RestDay = !ok || len(day.Exercises) == 0
		for _, e := range day.Exercises {
			st := ExerciseStatus{ID: e.ID, Name: e.Name, TargetSets: e.TargetSets, TargetReps: e.TargetReps, Sets: []model.ExerciseSet{}}
			if el, found := log.ExerciseLogFor(e.ID); found {
				st.Sets = el.Sets
				if len(el.Sets) > 0 {
					out.Completed++
				}
			}
			seen[e.ID] = true
			out.Planned = append(out.Planned, st)
		}
	}
	for _, el := range log.Exercises {
		if !seen[el.ExerciseID] {
			out.Unplanned = append(out.Unplanned, el)
		}
	}
	out.PlanVolume = rating.PlanVolume(log)
	out.TotalVolume = TotalVolume(log)
	return out, true
}

// Preview trims text to n runes, marking the cut with "...".
func Preview(text string, n int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= n {
		return text
	}
	return string([]rune(text)[:n]) + "..."
}
