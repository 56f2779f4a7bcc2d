package store

import "github.com/PradipLalpura/RexOS/internal/model"

// Reduce applies a to a copy of state and returns the copy. state itself is
// never modified and the result shares no memory with it or with a.
func Reduce(state model.RexState, a Action) model.RexState {
	next := state.Clone()
	a.apply(&next)
	return next
}

func (a SetProfile) apply(s *model.RexState) {
	p := a.Profile.Clone()
	s.Profile = &p
}

func (a SetHabits) apply(s *model.RexState) {
	s.Habits = make([]model.Habit, len(a.Habits))
	copy(s.Habits, a.Habits)
}

func (a SetWorkoutPlan) apply(s *model.RexState) {
	p := a.Plan.Clone()
	s.WorkoutPlan = &p
}

func (a SetDietTargets) apply(s *model.RexState) {
	t := a.Targets
	s.DietTargets = &t
}

func (a SetStep) apply(s *model.RexState) {
	s.CurrentStep = a.Step
}

func (CompleteRegistration) apply(s *model.RexState) {
	s.IsRegistered = true
}

func (a LogHabit) apply(s *model.RexState) {
	idx := habitRecordIndex(s, a.Date)
	if idx < 0 {
		s.HabitRecords = append(s.HabitRecords, model.DailyHabitRecord{
			Date: a.Date,
			Logs: []model.HabitLog{a.Log},
		})
		return
	}

	rec := &s.HabitRecords[idx]
	logs := make([]model.HabitLog, 0, len(rec.Logs)+1)
	replaced := false
	for _, l := range rec.Logs {
		if l.HabitID != a.Log.HabitID {
			logs = append(logs, l)
			continue
		}
		// the first match is replaced in place; any stray duplicates go
		if !replaced {
			logs = append(logs, a.Log)
			replaced = true
		}
	}
	if !replaced {
		logs = append(logs, a.Log)
	}
	rec.Logs = logs
}

func (a UpsertWorkoutLog) apply(s *model.RexState) {
	log := a.Log.Clone()
	normalizeWorkoutLog(&log)
	if idx := workoutLogIndex(s, log.Date); idx >= 0 {
		s.WorkoutLogs[idx] = log
		return
	}
	s.WorkoutLogs = append(s.WorkoutLogs, log)
}

func (a AddAdditionalExercise) apply(s *model.RexState) {
	idx := workoutLogIndex(s, a.Date)
	if idx < 0 {
		s.WorkoutLogs = append(s.WorkoutLogs, model.WorkoutLog{
			Date:                a.Date,
			PlanType:            variantOrGym(a.Variant),
			Exercises:           []model.ExerciseLog{},
			AdditionalExercises: []model.AdditionalExercise{a.Exercise},
		})
		return
	}

	log := &s.WorkoutLogs[idx]
	for i := range log.AdditionalExercises {
		if log.AdditionalExercises[i].ID == a.Exercise.ID {
			log.AdditionalExercises[i] = a.Exercise
			return
		}
	}
	log.AdditionalExercises = append(log.AdditionalExercises, a.Exercise)
}

func (a RemoveAdditionalExercise) apply(s *model.RexState) {
	idx := workoutLogIndex(s, a.Date)
	if idx < 0 {
		return
	}
	log := &s.WorkoutLogs[idx]
	kept := make([]model.AdditionalExercise, 0, len(log.AdditionalExercises))
	for _, e := range log.AdditionalExercises {
		if e.ID != a.ExerciseID {
			kept = append(kept, e)
		}
	}
	log.AdditionalExercises = kept
}

func (a AddSet) apply(s *model.RexState) {
	idx := workoutLogIndex(s, a.Date)
	if idx < 0 {
		s.WorkoutLogs = append(s.WorkoutLogs, model.WorkoutLog{
			Date:      a.Date,
			PlanType:  variantOrGym(a.Variant),
			Exercises: []model.ExerciseLog{},
		})
		idx = len(s.WorkoutLogs) - 1
	}
	appendSet(&s.WorkoutLogs[idx], a)
}

func (a UpdateSet) apply(s *model.RexState) {
	idx := workoutLogIndex(s, a.Date)
	if idx < 0 {
		return
	}
	updateSet(&s.WorkoutLogs[idx], a)
}

func (a RemoveSet) apply(s *model.RexState) {
	idx := workoutLogIndex(s, a.Date)
	if idx < 0 {
		return
	}
	removeSet(&s.WorkoutLogs[idx], a.ExerciseID, a.SetNumber)
}

func (a LogMeal) apply(s *model.RexState) {
	meal := a.Meal.Clone()
	if idx := dietLogIndex(s, a.Date); idx >= 0 {
		s.DietLogs[idx].Meals = append(s.DietLogs[idx].Meals, meal)
		return
	}
	s.DietLogs = append(s.DietLogs, model.DailyDietLog{Date: a.Date, Meals: []model.Meal{meal}})
}

func (a DeleteMeal) apply(s *model.RexState) {
	idx := dietLogIndex(s, a.Date)
	if idx < 0 {
		return
	}
	log := &s.DietLogs[idx]
	kept := make([]model.Meal, 0, len(log.Meals))
	for _, m := range log.Meals {
		if m.ID != a.MealID {
			kept = append(kept, m)
		}
	}
	log.Meals = kept
}

func (a UpdateProfile) apply(s *model.RexState) {
	if s.Profile == nil {
		return
	}
	p := a.Patch
	if p.Name != nil {
		s.Profile.Name = *p.Name
	}
	if p.Weight != nil {
		s.Profile.Weight = *p.Weight
	}
	if p.Height != nil {
		s.Profile.Height = *p.Height
	}
	if p.Measurements != nil {
		m := p.Measurements.Clone()
		s.Profile.Measurements = &m
	}
}

func (a LogNote) apply(s *model.RexState) {
	for i := range s.Notes {
		if s.Notes[i].Date == a.Note.Date {
			s.Notes[i] = a.Note
			return
		}
	}
	s.Notes = append(s.Notes, a.Note)
}

func (a LoadState) apply(s *model.RexState) {
	*s = a.State.Clone()
}

func (Reset) apply(s *model.RexState) {
	*s = model.DefaultState()
}

func habitRecordIndex(s *model.RexState, date string) int {
	for i := range s.HabitRecords {
		if s.HabitRecords[i].Date == date {
			return i
		}
	}
	return -1
}

func workoutLogIndex(s *model.RexState, date string) int {
	for i := range s.WorkoutLogs {
		if s.WorkoutLogs[i].Date == date {
			return i
		}
	}
	return -1
}

func dietLogIndex(s *model.RexState, date string) int {
	for i := range s.DietLogs {
		if s.DietLogs[i].Date == date {
			return i
		}
	}
	return -1
}

func variantOrGym(v model.PlanVariant) model.PlanVariant {
	if v == model.VariantHome {
		return model.VariantHome
	}
	return model.VariantGym
}
