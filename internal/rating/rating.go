// Package rating derives scores from the aggregate. Every function is total:
// missing configuration or data maps to a fixed rating, never an error.
package rating

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/model"
)

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierWarning   Tier = "warning"
	TierDanger    Tier = "danger"
)

type Rating struct {
	Score   float64 `json:"score"`
	Tier    Tier    `json:"tier"`
	Message string  `json:"message"`
}

// DayRatings bundles every rating of a single date.
type DayRatings struct {
	Date    string `json:"date"`
	Habit   Rating `json:"habit"`
	Workout Rating `json:"workout"`
	Diet    Rating `json:"diet"`
	Overall Rating `json:"overall"`
}

const (
	msgNoHabits  = "No habits tracked yet."
	msgNoWorkout = "No workout logged."
	msgNoTargets = "Set your diet targets first."
	msgNoMeals   = "No meals logged. Track your nutrition."
	msgRestDay   = "Rest day. Recovery is part of the process."
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders v with thousands separators and at most one decimal.
func FormatNumber(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.1f", v)
}

// Habit rates the share of configured habits completed on date.
func Habit(s model.RexState, date string) Rating {
	record, ok := s.HabitRecord(date)
	total := len(s.Habits)
	if !ok || total == 0 {
		return Rating{Score: 0, Tier: TierWarning, Message: msgNoHabits}
	}

	pct := math.Min(float64(CompletedHabits(record))/float64(total)*100, 100)
	switch {
	case pct >= 100:
		return Rating{Score: 100, Tier: TierExcellent, Message: "PERFECT! All habits crushed. Stay aggressive."}
	case pct >= 80:
		return Rating{Score: pct, Tier: TierGood, Message: "Doing great. Push for 100% tomorrow."}
	case pct >= 50:
		return Rating{Score: pct, Tier: TierWarning, Message: "Needs improvement. Discipline requires consistency."}
	default:
		return Rating{Score: pct, Tier: TierDanger, Message: "Unacceptable. Reset. Execute harder tomorrow."}
	}
}

// CompletedHabits counts distinct habits marked completed in record.
func CompletedHabits(record model.DailyHabitRecord) int {
	seen := make(map[string]struct{}, len(record.Logs))
	for _, l := range record.Logs {
		if l.Completed {
			seen[l.HabitID] = struct{}{}
		}
	}
	return len(seen)
}

// PlannedExercises resolves the exercises scheduled for date, reading the
// variant recorded on the day's log when the plan covers both.
func PlannedExercises(plan model.WorkoutPlan, logged model.PlanVariant, date string) []model.Exercise {
	day, ok := plan.DayFor(plan.VariantFor(logged), dates.DayName(date))
	if !ok {
		return nil
	}
	return day.Exercises
}

// PlanVolume sums reps x weight over the plan exercise logs only.
func PlanVolume(log model.WorkoutLog) float64 {
	var volume float64
	for _, e := range log.Exercises {
		for _, set := range e.Sets {
			volume += float64(set.Reps) * set.Weight
		}
	}
	return volume
}

func Workout(s model.RexState, date string) Rating {
	log, ok := s.WorkoutLogFor(date)
	plan, hasPlan := s.Plan()
	if !ok || !hasPlan {
		return Rating{Score: 0, Tier: TierWarning, Message: msgNoWorkout}
	}

	planned := PlannedExercises(plan, log.PlanType, date)
	if len(planned) == 0 {
		return Rating{Score: 100, Tier: TierGood, Message: msgRestDay}
	}

	done := 0
	for _, e := range log.Exercises {
		if len(e.Sets) > 0 {
			done++
		}
	}
	pct := math.Min(float64(done)/float64(len(planned))*100, 100)
	volume := FormatNumber(PlanVolume(log))

	switch {
	case pct >= 100:
		return Rating{Score: 100, Tier: TierExcellent, Message: "EXECUTED! Total volume: " + volume + "kg. Beast mode."}
	case pct >= 80:
		return Rating{Score: pct, Tier: TierGood, Message: "Solid session. Volume: " + volume + "kg. Finish stronger next time."}
	case pct >= 50:
		return Rating{Score: pct, Tier: TierWarning, Message: "Half-effort gets half-results. Volume: " + volume + "kg. Complete the workout."}
	default:
		return Rating{Score: pct, Tier: TierDanger, Message: "Workout incomplete. Volume: " + volume + "kg. No excuses. Execute fully."}
	}
}

// Totals is the macro sum of a day's meals.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func MealTotals(meals []model.Meal) Totals {
	var t Totals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
	}
	return t
}

func Diet(s model.RexState, date string) Rating {
	targets, ok := s.Targets()
	if !ok || targets.Protein <= 0 || targets.Calories <= 0 {
		return Rating{Score: 0, Tier: TierWarning, Message: msgNoTargets}
	}
	log, ok := s.DietLogFor(date)
	if !ok || len(log.Meals) == 0 {
		return Rating{Score: 0, Tier: TierDanger, Message: msgNoMeals}
	}

	totals := MealTotals(log.Meals)
	proteinPct := math.Min(totals.Protein/targets.Protein*100, 100)
	deviation := math.Abs(totals.Calories-targets.Calories) / targets.Calories * 100
	score := 0.5*proteinPct + 0.5*math.Max(0, 100-deviation)
	protein := FormatNumber(totals.Protein)

	// tier is decided by compound conditions, not by score
	switch {
	case proteinPct >= 90 && deviation <= 10:
		return Rating{Score: score, Tier: TierExcellent, Message: "Nutrition on point. " + protein + "g protein. Excellent execution."}
	case proteinPct >= 80:
		return Rating{Score: score, Tier: TierGood, Message: protein + "g protein. Close to target. Stay consistent."}
	case proteinPct >= 60:
		return Rating{Score: score, Tier: TierWarning, Message: "Diet needs work. Prioritize protein intake."}
	default:
		return Rating{Score: score, Tier: TierDanger, Message: "Nutrition failure. Fuel your body properly."}
	}
}

// DailyOverall averages the three domain scores. Its breakpoints are 90/75/50,
// unlike the per-domain 100/80/50.
func DailyOverall(s model.RexState, date string) Rating {
	return overall(Habit(s, date), Workout(s, date), Diet(s, date))
}

func Daily(s model.RexState, date string) DayRatings {
	h, w, d := Habit(s, date), Workout(s, date), Diet(s, date)
	return DayRatings{
		Date:    date,
		Habit:   h,
		Workout: w,
		Diet:    d,
		Overall: overall(h, w, d),
	}
}

func overall(h, w, d Rating) Rating {
	avg := (h.Score + w.Score + d.Score) / 3
	switch {
	case avg >= 90:
		return Rating{Score: avg, Tier: TierExcellent, Message: "DOMINANT DAY. This is who you are. Stay aggressive."}
	case avg >= 75:
		return Rating{Score: avg, Tier: TierGood, Message: "Solid execution. Room for improvement. Push harder."}
	case avg >= 50:
		return Rating{Score: avg, Tier: TierWarning, Message: "Mediocre performance. You are capable of more."}
	default:
		return Rating{Score: avg, Tier: TierDanger, Message: "Unacceptable. Tomorrow is a new battle. Win it."}
	}
}
