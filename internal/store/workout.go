package store

import "github.com/PradipLalpura/RexOS/internal/model"

// Set bookkeeping for a single day's workout log. Invariants kept here:
// exercise logs never hold zero sets and set numbers run 1..n.

func appendSet(log *model.WorkoutLog, a AddSet) {
	for i := range log.Exercises {
		e := &log.Exercises[i]
		if e.ExerciseID != a.ExerciseID {
			continue
		}
		e.Sets = append(e.Sets, model.ExerciseSet{SetNumber: len(e.Sets) + 1, Reps: a.Reps, Weight: a.Weight})
		return
	}
	log.Exercises = append(log.Exercises, model.ExerciseLog{
		ExerciseID:   a.ExerciseID,
		ExerciseName: a.ExerciseName,
		Sets:         []model.ExerciseSet{{SetNumber: 1, Reps: a.Reps, Weight: a.Weight}},
	})
}

func updateSet(log *model.WorkoutLog, a UpdateSet) {
	for i := range log.Exercises {
		e := &log.Exercises[i]
		if e.ExerciseID != a.ExerciseID {
			continue
		}
		for j := range e.Sets {
			if e.Sets[j].SetNumber != a.SetNumber {
				continue
			}
			if a.Reps != nil {
				e.Sets[j].Reps = *a.Reps
			}
			if a.Weight != nil {
				e.Sets[j].Weight = *a.Weight
			}
			return
		}
		return
	}
}

func removeSet(log *model.WorkoutLog, exerciseID string, setNumber int) {
	for i := range log.Exercises {
		e := &log.Exercises[i]
		if e.ExerciseID != exerciseID {
			continue
		}
		kept := make([]model.ExerciseSet, 0, len(e.Sets))
		for _, set := range e.Sets {
			if set.SetNumber != setNumber {
				kept = append(kept, set)
			}
		}
		e.Sets = kept
	}
	normalizeWorkoutLog(log)
}

// normalizeWorkoutLog prunes exercise logs without sets and renumbers the
// remaining sets contiguously, keeping their order.
func normalizeWorkoutLog(log *model.WorkoutLog) {
	if log.Exercises == nil {
		log.Exercises = []model.ExerciseLog{}
	}
	kept := log.Exercises[:0]
	for _, e := range log.Exercises {
		if len(e.Sets) == 0 {
			continue
		}
		for i := range e.Sets {
			e.Sets[i].SetNumber = i + 1
		}
		kept = append(kept, e)
	}
	log.Exercises = kept
}
