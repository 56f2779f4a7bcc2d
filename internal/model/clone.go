package model

// Clone returns a deep copy that shares no slices or pointers with s.
func (s RexState) Clone() RexState {
	out := s
	if s.Profile != nil {
		p := s.Profile.Clone()
		out.Profile = &p
	}
	if s.WorkoutPlan != nil {
		p := s.WorkoutPlan.Clone()
		out.WorkoutPlan = &p
	}
	if s.DietTargets != nil {
		t := *s.DietTargets
		out.DietTargets = &t
	}
	out.Habits = cloneSlice(s.Habits)
	out.HabitRecords = cloneEach(s.HabitRecords, DailyHabitRecord.Clone)
	out.WorkoutLogs = cloneEach(s.WorkoutLogs, WorkoutLog.Clone)
	out.DietLogs = cloneEach(s.DietLogs, DailyDietLog.Clone)
	out.Notes = cloneSlice(s.Notes)
	return out
}

func (p Profile) Clone() Profile {
	if p.Measurements != nil {
		m := p.Measurements.Clone()
		p.Measurements = &m
	}
	return p
}

func (m BodyMeasurements) Clone() BodyMeasurements {
	m.Biceps = cloneFloat(m.Biceps)
	m.Chest = cloneFloat(m.Chest)
	m.Waist = cloneFloat(m.Waist)
	m.Abs = cloneFloat(m.Abs)
	m.Thighs = cloneFloat(m.Thighs)
	m.Calves = cloneFloat(m.Calves)
	return m
}

func (p WorkoutPlan) Clone() WorkoutPlan {
	p.Gym = cloneEach(p.Gym, DayWorkout.Clone)
	p.Home = cloneEach(p.Home, DayWorkout.Clone)
	return p
}

func (d DayWorkout) Clone() DayWorkout {
	d.Exercises = cloneSlice(d.Exercises)
	return d
}

func (r DailyHabitRecord) Clone() DailyHabitRecord {
	r.Logs = cloneSlice(r.Logs)
	return r
}

func (l WorkoutLog) Clone() WorkoutLog {
	l.Exercises = cloneEach(l.Exercises, ExerciseLog.Clone)
	l.AdditionalExercises = cloneSlice(l.AdditionalExercises)
	return l
}

func (e ExerciseLog) Clone() ExerciseLog {
	e.Sets = cloneSlice(e.Sets)
	return e
}

func (l DailyDietLog) Clone() DailyDietLog {
	l.Meals = cloneEach(l.Meals, Meal.Clone)
	return l
}

func (m Meal) Clone() Meal {
	m.FoodItems = cloneSlice(m.FoodItems)
	return m
}

// cloneSlice keeps nil and empty distinct so a decoded document re-encodes
// to the same bytes.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneEach[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i := range in {
		out[i] = fn(in[i])
	}
	return out
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
