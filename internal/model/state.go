package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	FirstRegistrationStep = 1
	LastRegistrationStep  = 4
)

// DefaultState returns the empty aggregate used on first start and after a reset.
func DefaultState() RexState {
	return RexState{
		CurrentStep:  FirstRegistrationStep,
		Habits:       []Habit{},
		HabitRecords: []DailyHabitRecord{},
		WorkoutLogs:  []WorkoutLog{},
		DietLogs:     []DailyDietLog{},
		Notes:        []DailyNote{},
	}
}

// NewID returns a time-ordered identifier. Callers only ever compare ids.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString())
	}
	return id.String()
}

func (s RexState) UserProfile() (Profile, bool) {
	if s.Profile == nil {
		return Profile{}, false
	}
	return s.Profile.Clone(), true
}

func (s RexState) Plan() (WorkoutPlan, bool) {
	if s.WorkoutPlan == nil {
		return WorkoutPlan{}, false
	}
	return s.WorkoutPlan.Clone(), true
}

func (s RexState) Targets() (DietTargets, bool) {
	if s.DietTargets == nil {
		return DietTargets{}, false
	}
	return *s.DietTargets, true
}

func (s RexState) HabitRecord(date string) (DailyHabitRecord, bool) {
	for i := range s.HabitRecords {
		if s.HabitRecords[i].Date == date {
			return s.HabitRecords[i], true
		}
	}
	return DailyHabitRecord{}, false
}

func (s RexState) WorkoutLogFor(date string) (WorkoutLog, bool) {
	for i := range s.WorkoutLogs {
		if s.WorkoutLogs[i].Date == date {
			return s.WorkoutLogs[i], true
		}
	}
	return WorkoutLog{}, false
}

func (s RexState) DietLogFor(date string) (DailyDietLog, bool) {
	for i := range s.DietLogs {
		if s.DietLogs[i].Date == date {
			return s.DietLogs[i], true
		}
	}
	return DailyDietLog{}, false
}

func (s RexState) NoteFor(date string) (DailyNote, bool) {
	for i := range s.Notes {
		if s.Notes[i].Date == date {
			return s.Notes[i], true
		}
	}
	return DailyNote{}, false
}

func (s RexState) HabitByID(id string) (Habit, bool) {
	for _, h := range s.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return Habit{}, false
}

// Schedule returns the weekly schedule for a variant, or nil if the plan has none.
func (p WorkoutPlan) Schedule(v PlanVariant) []DayWorkout {
	if v == VariantHome {
		return p.Home
	}
	return p.Gym
}

// VariantFor picks the schedule a day should be read from. For a plan of type
// both the variant recorded on the day wins.
func (p WorkoutPlan) VariantFor(logged PlanVariant) PlanVariant {
	switch p.Type {
	case PlanHome:
		return VariantHome
	case PlanBoth:
		if logged == VariantHome {
			return VariantHome
		}
		return VariantGym
	default:
		return VariantGym
	}
}

func (p WorkoutPlan) DayFor(v PlanVariant, dayName string) (DayWorkout, bool) {
	for _, d := range p.Schedule(v) {
		if d.Day == dayName {
			return d, true
		}
	}
	return DayWorkout{}, false
}

func (p WorkoutPlan) ExerciseByID(id string) (Exercise, bool) {
	for _, schedule := range [][]DayWorkout{p.Gym, p.Home} {
		for _, d := range schedule {
			for _, e := range d.Exercises {
				if e.ID == id {
					return e, true
				}
			}
		}
	}
	return Exercise{}, false
}

func (l WorkoutLog) ExerciseLogFor(exerciseID string) (ExerciseLog, bool) {
	for _, e := range l.Exercises {
		if e.ExerciseID == exerciseID {
			return e, true
		}
	}
	return ExerciseLog{}, false
}

// NewMeal builds a meal with a fresh id and a quantity derived from its items.
func NewMeal(name string, items []FoodItem, calories, protein, carbs, fat float64, timeOfDay string) Meal {
	m := Meal{
		ID:        NewID(),
		MealName:  name,
		FoodItems: cloneSlice(items),
		Calories:  calories,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		Time:      timeOfDay,
	}
	if m.FoodItems == nil {
		m.FoodItems = []FoodItem{}
	}
	m.Quantity = m.TotalQuantity()
	return m
}

func (m Meal) TotalQuantity() float64 {
	var total float64
	for _, item := range m.FoodItems {
		total += item.Weight
	}
	return total
}
