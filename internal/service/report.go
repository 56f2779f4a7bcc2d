package service

import (
	"strings"
	"time"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/rating"
)

// CoachPrompt is printed under the report for pasting into an assistant
// together with the exported file.
const CoachPrompt = `Analyze my weekly performance report covering habits, workouts, and diet.
Identify strengths, weaknesses, consistency issues, and areas of improvement.
Give clear, actionable advice for the next week focused on discipline,
progression, recovery, and nutrition.`

type ReportDay struct {
	Date        string                     `json:"date"`
	Day         string                     `json:"day"`
	HabitsDone  int                        `json:"habits_done"`
	HabitsTotal int                        `json:"habits_total"`
	Workout     bool                       `json:"workout_logged"`
	WorkoutName string                     `json:"workout_name,omitempty"`
	Exercises   []model.ExerciseLog        `json:"exercises,omitempty"`
	Additional  []model.AdditionalExercise `json:"additional,omitempty"`
	Volume      float64                    `json:"volume"`
	Diet        rating.Totals              `json:"diet"`
	Ratings     rating.DayRatings          `json:"ratings"`
	Note        string                     `json:"note,omitempty"`
}

type HabitWeek struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	DaysCompleted int    `json:"days_completed"`
}

type WeeklyReport struct {
	WeekStart     string            `json:"week_start"`
	WeekEnd       string            `json:"week_end"`
	GeneratedAt   string            `json:"generated_at"`
	ProfileName   string            `json:"profile_name,omitempty"`
	Consistency   float64           `json:"consistency"`
	Verdict       rating.Verdict    `json:"verdict"`
	Days          []ReportDay       `json:"days"`
	Habits        []HabitWeek       `json:"habits"`
	TotalVolume   float64           `json:"total_volume"`
	WorkoutDays   int               `json:"workout_days"`
	DietTotals    rating.Totals     `json:"diet_totals"`
	DietAverages  rating.Totals     `json:"diet_averages"`
	HasTargets    bool              `json:"has_targets"`
	Targets       model.DietTargets `json:"targets"`
	NotesRecorded int               `json:"notes_recorded"`
}

// BuildWeeklyReport covers the Monday-first week containing day. Diet
// averages divide by seven regardless of how many days were logged.
func BuildWeeklyReport(s model.RexState, day time.Time) *WeeklyReport {
	week := dates.WeekDates(day)
	report := &WeeklyReport{
		WeekStart:   week[0],
		WeekEnd:     week[len(week)-1],
		GeneratedAt: time.Now().Format(time.RFC3339),
		Consistency: rating.WeeklyConsistency(s, week),
		Days:        make([]ReportDay, 0, len(week)),
		Habits:      make([]HabitWeek, 0, len(s.Habits)),
	}
	report.Verdict = rating.WeeklyVerdict(report.Consistency)
	if p, ok := s.UserProfile(); ok {
		report.ProfileName = p.Name
	}
	if t, ok := s.Targets(); ok {
		report.HasTargets = true
		report.Targets = t
	}

	for _, date := range week {
		rd := ReportDay{
			Date:    date,
			Day:     dates.DayName(date),
			Diet:    DayMealTotals(s, date),
			Ratings: rating.Daily(s, date),
		}
		rd.HabitsDone, rd.HabitsTotal = HabitCompletion(s, date)
		if log, ok := s.WorkoutLogFor(date); ok {
			rd.Workout = len(log.Exercises) > 0 || len(log.AdditionalExercises) > 0
			rd.Exercises = log.Exercises
			rd.Additional = log.AdditionalExercises
			rd.Volume = TotalVolume(log)
		}
		if w, ok := WorkoutForDay(s, date); ok {
			rd.WorkoutName = w.WorkoutName
		}
		if note, ok := s.NoteFor(date); ok && strings.TrimSpace(note.Content) != "" {
			rd.Note = note.Content
			report.NotesRecorded++
		}

		report.TotalVolume += rd.Volume
		if rd.Workout {
			report.WorkoutDays++
		}
		report.DietTotals.Calories += rd.Diet.Calories
		report.DietTotals.Protein += rd.Diet.Protein
		report.DietTotals.Carbs += rd.Diet.Carbs
		report.DietTotals.Fat += rd.Diet.Fat
		report.Days = append(report.Days, rd)
	}

	n := float64(len(week))
	report.DietAverages = rating.Totals{
		Calories: report.DietTotals.Calories / n,
		Protein:  report.DietTotals.Protein / n,
		Carbs:    report.DietTotals.Carbs / n,
		Fat:      report.DietTotals.Fat / n,
	}

	for _, h := range s.Habits {
		hw := HabitWeek{ID: h.ID, Name: h.Name, Icon: h.Icon}
		for _, date := range week {
			record, ok := s.HabitRecord(date)
			if !ok {
				continue
			}
			for _, l := range record.Logs {
				if l.HabitID == h.ID && l.Completed {
					hw.DaysCompleted++
					break
				}
			}
		}
		report.Habits = append(report.Habits, hw)
	}
	return report
}

// DefaultReportFilename names the export of the week starting weekStart.
func DefaultReportFilename(weekStart, ext string) string {
	return "RexOS-Weekly-Report-" + weekStart + "." + ext
}
