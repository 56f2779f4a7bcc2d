package service

import (
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
)

// AdditionalVolume sums sets x reps x weight over the ad hoc exercises.
func AdditionalVolume(log model.WorkoutLog) float64 {
	var volume float64
	for _, e := range log.AdditionalExercises {
		volume += float64(e.Sets) * float64(e.Reps) * e.Weight
	}
	return volume
}

// TotalVolume is plan volume plus ad hoc volume. Ratings only ever use the
// plan part; reports show both.
func TotalVolume(log model.WorkoutLog) float64 {
	return rating.PlanVolume(log) + AdditionalVolume(log)
}

func DayMealTotals(s model.RexState, date string) rating.Totals {
	log, ok := s.DietLogFor(date)
	if !ok {
		return rating.Totals{}
	}
	return rating.MealTotals(log.Meals)
}

func HabitCompletion(s model.RexState, date string) (done, total int) {
	total = len(s.Habits)
	if record, ok := s.HabitRecord(date); ok {
		done = rating.CompletedHabits(record)
	}
	if done > total {
		done = total
	}
	return done, total
}

func percent(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

// AdherenceWithin reports whether actual is within tolerance (a fraction) of
// target. A non-positive target always passes.
func AdherenceWithin(actual, target, tolerance float64) bool {
	if target <= 0 {
		return true
	}
	diff := actual - target
	if diff < 0 {
		diff = -diff
	}
	return diff <= target*tolerance
}
