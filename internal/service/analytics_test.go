package service_test

import (
	"math"
	"testing"

	"github.com/PradipLalpura/RexOS/internal/service"
)

func TestAnalyticsRangeTotalsAndAdherence(t *testing.T) {
	t.Parallel()
	s := newFixtureState(t)
	report, err := service.AnalyticsBetween(s, day(t, monday), day(t, wednesday), service.DefaultAdherenceTolerance)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if len(report.Days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(report.Days))
	}
	if report.AverageHabitPercent != 50 {
		t.Fatalf("expected 50%% average habit completion, got %.2f", report.AverageHabitPercent)
	}
	if report.TotalVolume != 2700 {
		t.Fatalf("expected plan volume 2700, got %.0f", report.TotalVolume)
	}
	if report.WorkoutDays != 2 {
		t.Fatalf("expected 2 workout days, got %d", report.WorkoutDays)
	}
	if report.DaysWithCalories != 2 || report.AverageCaloriesPerDay != 1750 {
		t.Fatalf("expected 2 days averaging 1750 kcal, got %d averaging %.0f", report.DaysWithCalories, report.AverageCaloriesPerDay)
	}
	if report.HighestDay == nil || report.HighestDay.Date != monday {
		t.Fatalf("expected highest day %s, got %+v", monday, report.HighestDay)
	}
	if report.LowestDay == nil || report.LowestDay.Date != tuesday {
		t.Fatalf("expected lowest day %s, got %+v", tuesday, report.LowestDay)
	}
	if report.Adherence.EvaluatedDays != 2 || report.Adherence.WithinGoalDays != 1 {
		t.Fatalf("expected adherence 1/2, got %d/%d", report.Adherence.WithinGoalDays, report.Adherence.EvaluatedDays)
	}
	if math.Abs(report.Consistency-200.0/3) > 1e-9 {
		t.Fatalf("expected consistency 66.67, got %.4f", report.Consistency)
	}
}

func TestAnalyticsRejectsInvertedRange(t *testing.T) {
	t.Parallel()
	if _, err := service.AnalyticsBetween(newFixtureState(t), day(t, wednesday), day(t, monday), 0.1); err == nil {
		t.Fatalf("expected inverted range to fail")
	}
}

func TestAnalyticsWithoutHabitsOrMeals(t *testing.T) {
	t.Parallel()
	report := service.AnalyticsRange(newFixtureState(t), []string{"2030-01-01"}, 0.1)
	if report.AverageCaloriesPerDay != 0 || report.HighestDay != nil {
		t.Fatalf("expected no calorie stats, got %+v", report)
	}
	empty := service.AnalyticsRange(newFixtureState(t), nil, 0.1)
	if len(empty.Days) != 0 || empty.Consistency != 0 {
		t.Fatalf("expected empty report, got %+v", empty)
	}
}

func TestPeriodDates(t *testing.T) {
	t.Parallel()
	cases := map[string]int{"day": 1, "week": 7, "month": 30, "6months": 180, "year": 365}
	for period, n := range cases {
		got, err := service.PeriodDates(period, day(t, monday))
		if err != nil {
			t.Fatalf("period %s: %v", period, err)
		}
		if len(got) != n || got[len(got)-1] != monday {
			t.Fatalf("expected %d dates ending %s for %s, got %d ending %s", n, monday, period, len(got), got[len(got)-1])
		}
	}
	if _, err := service.PeriodDates("decade", day(t, monday)); err == nil {
		t.Fatalf("expected unknown period to fail")
	}
}
