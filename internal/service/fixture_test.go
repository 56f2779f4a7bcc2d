package service_test

import (
	"testing"
	"time"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/store"
)

// The fixture week starts on Monday 2026-02-09.
const (
	monday    = "2026-02-09"
	tuesday   = "2026-02-10"
	wednesday = "2026-02-11"
)

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	return d
}

func newFixtureState(t *testing.T) model.RexState {
	t.Helper()
	actions := []store.Action{
		store.SetProfile{Profile: model.Profile{Name: "Rex", Weight: 80, Height: 180, CreatedAt: "2026-02-01T08:00:00Z"}},
		store.SetHabits{Habits: []model.Habit{
			{ID: "h1", Name: "Read", Icon: "book"},
			{ID: "h2", Name: "Meditate", Icon: "lotus"},
		}},
		store.SetWorkoutPlan{Plan: model.WorkoutPlan{
			Type: model.PlanGym,
			Gym: []model.DayWorkout{
				{Day: "Monday", WorkoutName: "Push", Exercises: []model.Exercise{
					{ID: "e1", Name: "Bench", TargetSets: 3, TargetReps: 8},
					{ID: "e2", Name: "Dips", TargetSets: 3, TargetReps: 10},
				}},
				{Day: "Wednesday", WorkoutName: "Legs", Exercises: []model.Exercise{
					{ID: "e3", Name: "Squat", TargetSets: 5, TargetReps: 5},
				}},
			},
		}},
		store.SetDietTargets{Targets: model.DietTargets{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}},
		store.CompleteRegistration{},

		store.LogHabit{Date: monday, Log: model.HabitLog{HabitID: "h1", Completed: true}},
		store.LogHabit{Date: monday, Log: model.HabitLog{HabitID: "h2", Completed: true}},
		store.AddSet{Date: monday, ExerciseID: "e1", ExerciseName: "Bench", Reps: 10, Weight: 100},
		store.AddSet{Date: monday, ExerciseID: "e1", ExerciseName: "Bench", Reps: 8, Weight: 100},
		store.AddSet{Date: monday, ExerciseID: "e2", ExerciseName: "Dips", Reps: 10, Weight: 20},
		store.AddAdditionalExercise{Date: monday, Exercise: model.AdditionalExercise{ID: "x1", Name: "Curl", Sets: 3, Reps: 10, Weight: 10}},
		store.LogMeal{Date: monday, Meal: model.NewMeal("Lunch", []model.FoodItem{{ID: "f1", Name: "Rice", Weight: 250}}, 900, 60, 100, 20, "13:00")},
		store.LogMeal{Date: monday, Meal: model.NewMeal("Dinner", nil, 1100, 80, 90, 40, "20:00")},
		store.LogNote{Note: model.DailyNote{Date: monday, Content: "Bench felt heavy.", UpdatedAt: "2026-02-09T21:00:00Z"}},

		store.LogHabit{Date: tuesday, Log: model.HabitLog{HabitID: "h1", Completed: true}},
		store.LogMeal{Date: tuesday, Meal: model.NewMeal("Everything", nil, 1500, 80, 150, 50, "12:00")},

		store.AddSet{Date: wednesday, ExerciseID: "e3", ExerciseName: "Squat", Reps: 5, Weight: 140},
	}
	s := model.DefaultState()
	for _, a := range actions {
		s = store.Reduce(s, a)
	}
	return s
}
