package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
)

// DefaultAdherenceTolerance is the fraction a day's calories may stray from
// the target and still count as on target.
const DefaultAdherenceTolerance = 0.10

type DaySummary struct {
	Date         string  `json:"date"`
	HabitPercent float64 `json:"habit_percent"`
	Volume       float64 `json:"volume"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein_g"`
	Carbs        float64 `json:"carbs_g"`
	Fat          float64 `json:"fat_g"`
	Overall      float64 `json:"overall_score"`
}

type AdherenceSummary struct {
	EvaluatedDays  int     `json:"evaluated_days"`
	WithinGoalDays int     `json:"within_goal_days"`
	PercentWithin  float64 `json:"percent_within_goal"`
}

type AnalyticsReport struct {
	FromDate              string           `json:"from_date"`
	ToDate                string           `json:"to_date"`
	Days                  []DaySummary     `json:"days"`
	TrackedHabits         bool             `json:"tracked_habits"`
	AverageHabitPercent   float64          `json:"avg_habit_percent"`
	TotalVolume           float64          `json:"total_volume"`
	WorkoutDays           int              `json:"workout_days"`
	DaysWithCalories      int              `json:"days_with_calories"`
	AverageCaloriesPerDay float64          `json:"avg_calories_per_day"`
	AverageProteinPerDay  float64          `json:"avg_protein_per_day"`
	Consistency           float64          `json:"consistency"`
	HighestDay            *DaySummary      `json:"highest_day,omitempty"`
	LowestDay             *DaySummary      `json:"lowest_day,omitempty"`
	Adherence             AdherenceSummary `json:"adherence"`
}

// Period names accepted by PeriodDates with their length in days.
var periods = map[string]int{
	"day":     1,
	"week":    7,
	"month":   30,
	"6months": 180,
	"year":    365,
}

func PeriodNames() []string {
	names := make([]string, 0, len(periods))
	for name := range periods {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return periods[names[i]] < periods[names[j]] })
	return names
}

// PeriodDates returns the dates of a named period ending with end.
func PeriodDates(period string, end time.Time) ([]string, error) {
	n, ok := periods[strings.ToLower(strings.TrimSpace(period))]
	if !ok {
		return nil, fmt.Errorf("invalid period %q (expected one of %s)", period, strings.Join(PeriodNames(), ", "))
	}
	return dates.LastNDays(end, n), nil
}

func AnalyticsBetween(s model.RexState, from, to time.Time, tolerance float64) (*AnalyticsReport, error) {
	list, err := dates.Range(from, to)
	if err != nil {
		return nil, err
	}
	return AnalyticsRange(s, list, tolerance), nil
}

// AnalyticsRange summarizes dateList. Habit percentages are against the
// current habit list. Calorie averages only count days that have calories.
func AnalyticsRange(s model.RexState, dateList []string, tolerance float64) *AnalyticsReport {
	report := &AnalyticsReport{
		Days:          make([]DaySummary, 0, len(dateList)),
		TrackedHabits: len(s.Habits) > 0,
	}
	if len(dateList) == 0 {
		return report
	}
	report.FromDate = dateList[0]
	report.ToDate = dateList[len(dateList)-1]

	targets, hasTargets := s.Targets()
	var habitSum, calorieSum, proteinSum float64
	for _, date := range dateList {
		done, total := HabitCompletion(s, date)
		totals := DayMealTotals(s, date)
		day := DaySummary{
			Date:         date,
			HabitPercent: percent(float64(done), float64(total)),
			Calories:     totals.Calories,
			Protein:      totals.Protein,
			Carbs:        totals.Carbs,
			Fat:          totals.Fat,
			Overall:      rating.DailyOverall(s, date).Score,
		}
		if log, ok := s.WorkoutLogFor(date); ok {
			day.Volume = rating.PlanVolume(log)
			if len(log.Exercises) > 0 {
				report.WorkoutDays++
			}
		}
		report.Days = append(report.Days, day)

		habitSum += day.HabitPercent
		report.TotalVolume += day.Volume
		if day.Calories > 0 {
			report.DaysWithCalories++
			calorieSum += day.Calories
			proteinSum += day.Protein
			if hasTargets && targets.Calories > 0 {
				report.Adherence.EvaluatedDays++
				if AdherenceWithin(day.Calories, targets.Calories, tolerance) &&
					day.Protein >= targets.Protein*(1-tolerance) {
					report.Adherence.WithinGoalDays++
				}
			}
		}
	}

	if report.TrackedHabits {
		report.AverageHabitPercent = habitSum / float64(len(dateList))
	}
	if report.DaysWithCalories > 0 {
		report.AverageCaloriesPerDay = calorieSum / float64(report.DaysWithCalories)
		report.AverageProteinPerDay = proteinSum / float64(report.DaysWithCalories)
		report.HighestDay, report.LowestDay = extremeDays(report.Days)
	}
	report.Adherence.PercentWithin = percent(float64(report.Adherence.WithinGoalDays), float64(report.Adherence.EvaluatedDays))
	report.Consistency = rating.WeeklyConsistency(s, dateList)
	return report
}

// extremeDays picks the highest and lowest calorie days among those with
// any calories.
func extremeDays(days []DaySummary) (*DaySummary, *DaySummary) {
	withCalories := make([]DaySummary, 0, len(days))
	for _, d := range days {
		if d.Calories > 0 {
			withCalories = append(withCalories, d)
		}
	}
	if len(withCalories) == 0 {
		return nil, nil
	}
	sort.SliceStable(withCalories, func(i, j int) bool {
		return withCalories[i].Calories < withCalories[j].Calories
	})
	low := withCalories[0]
	high := withCalories[len(withCalories)-1]
	return &high, &low
}
