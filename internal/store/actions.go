package store

import "github.com/PradipLalpura/RexOS/internal/model"

// Action is a named state transition. The interface is sealed: every variant
// lives in this package and carries its own apply, so a new variant cannot be
// added without a handler.
type Action interface {
	Kind() string
	apply(s *model.RexState)
}

type SetProfile struct{ Profile model.Profile }

type SetHabits struct{ Habits []model.Habit }

type SetWorkoutPlan struct{ Plan model.WorkoutPlan }

type SetDietTargets struct{ Targets model.DietTargets }

// SetStep moves the registration wizard. The caller keeps it within
// model.FirstRegistrationStep..model.LastRegistrationStep.
type SetStep struct{ Step int }

type CompleteRegistration struct{}

type LogHabit struct {
	Date string
	Log  model.HabitLog
}

// UpsertWorkoutLog sets or replaces the whole workout log for Log.Date.
type UpsertWorkoutLog struct{ Log model.WorkoutLog }

type AddAdditionalExercise struct {
	Date string
	// Variant is recorded on the day's log when one has to be created.
	// Empty means gym.
	Variant  model.PlanVariant
	Exercise model.AdditionalExercise
}

type RemoveAdditionalExercise struct {
	Date       string
	ExerciseID string
}

type AddSet struct {
	Date string
	// Variant is recorded only when the day's log has to be created. An
	// existing log keeps its plan type.
	Variant      model.PlanVariant
	ExerciseID   string
	ExerciseName string
	Reps         int
	Weight       float64
}

// UpdateSet edits one logged set. Nil fields are left unchanged.
type UpdateSet struct {
	Date       string
	ExerciseID string
	SetNumber  int
	Reps       *int
	Weight     *float64
}

type RemoveSet struct {
	Date       string
	ExerciseID string
	SetNumber  int
}

type LogMeal struct {
	Date string
	Meal model.Meal
}

type DeleteMeal struct {
	Date   string
	MealID string
}

// ProfilePatch is a partial profile. Nil fields are left unchanged.
type ProfilePatch struct {
	Name         *string
	Weight       *float64
	Height       *float64
	Measurements *model.BodyMeasurements
}

type UpdateProfile struct{ Patch ProfilePatch }

type LogNote struct{ Note model.DailyNote }

type LoadState struct{ State model.RexState }

type Reset struct{}

func (SetProfile) Kind() string               { return "set_profile" }
func (SetHabits) Kind() string                { return "set_habits" }
func (SetWorkoutPlan) Kind() string           { return "set_workout_plan" }
func (SetDietTargets) Kind() string           { return "set_diet_targets" }
func (SetStep) Kind() string                  { return "set_step" }
func (CompleteRegistration) Kind() string     { return "complete_registration" }
func (LogHabit) Kind() string                 { return "log_habit" }
func (UpsertWorkoutLog) Kind() string         { return "upsert_workout_log" }
func (AddAdditionalExercise) Kind() string    { return "add_additional_exercise" }
func (RemoveAdditionalExercise) Kind() string { return "remove_additional_exercise" }
func (AddSet) Kind() string                   { return "add_set" }
func (UpdateSet) Kind() string                { return "update_set" }
func (RemoveSet) Kind() string                { return "remove_set" }
func (LogMeal) Kind() string                  { return "log_meal" }
func (DeleteMeal) Kind() string               { return "delete_meal" }
func (UpdateProfile) Kind() string            { return "update_profile" }
func (LogNote) Kind() string                  { return "log_note" }
func (LoadState) Kind() string                { return "load_state" }
func (Reset) Kind() string                    { return "reset" }
