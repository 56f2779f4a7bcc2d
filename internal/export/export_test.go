package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

const weekStart = "2026-03-02"

func testReport(t *testing.T) *service.WeeklyReport {
	t.Helper()
	s := model.DefaultState()
	for _, a := range []store.Action{
		store.SetProfile{Profile: model.Profile{Name: "Rex", Weight: 80, Height: 180}},
		store.SetHabits{Habits: []model.Habit{{ID: "h1", Name: "Read", Icon: "book"}}},
		store.SetWorkoutPlan{Plan: model.WorkoutPlan{Type: model.PlanGym, Gym: []model.DayWorkout{{
			Day: "Monday", WorkoutName: "Push", Exercises: []model.Exercise{{ID: "e1", Name: "Bench", TargetSets: 3, TargetReps: 8}},
		}}}},
		store.SetDietTargets{Targets: model.DietTargets{Calories: 2000, Protein: 150, Carbs: 200, Fat: 70}},
		store.LogHabit{Date: weekStart, Log: model.HabitLog{HabitID: "h1", Completed: true}},
		store.AddSet{Date: weekStart, ExerciseID: "e1", ExerciseName: "Bench", Reps: 8, Weight: 100},
		store.AddAdditionalExercise{Date: weekStart, Exercise: model.AdditionalExercise{ID: "x1", Name: "Plank", Sets: 3, Reps: 1}},
		store.LogMeal{Date: weekStart, Meal: model.NewMeal("Lunch", nil, 1400, 110, 150, 40, "13:00")},
		store.LogNote{Note: model.DailyNote{Date: weekStart, Content: "Felt strong on bench."}},
	} {
		s = store.Reduce(s, a)
	}
	day, err := time.ParseInLocation("2006-01-02", weekStart, time.Local)
	require.NoError(t, err)
	return service.BuildWeeklyReport(s, day)
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]Format{"": FormatPDF, "PDF": FormatPDF, "md": FormatMarkdown, "text": FormatText, "json": FormatJSON} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("docx")
	assert.ErrorContains(t, err, "invalid format")
}

func TestRenderText(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testReport(t), FormatText))

	out := buf.String()
	assert.Contains(t, out, "RexOS Weekly Report: 2026-03-02 to 2026-03-08")
	assert.Contains(t, out, "Athlete: Rex")
	assert.Contains(t, out, "Mon 1/1")
	assert.Contains(t, out, "Total weekly volume: 800kg over 1 days")
	assert.Contains(t, out, "Bench: 8x100kg")
	assert.Contains(t, out, "+ Plank: 3x1x0kg")
	assert.Contains(t, out, "Felt strong on bench.")
	assert.Contains(t, out, "DAY\tDATE\tOVERALL\tHABITS\tWORKOUT\tDIET")
}

func TestRenderMarkdownIncludesPrompt(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testReport(t), FormatMarkdown))

	out := buf.String()
	assert.Contains(t, out, "# RexOS Weekly Report")
	assert.Contains(t, out, "## Daily Breakdown")
	assert.Contains(t, out, "### Monday - Push (800kg)")
	assert.Contains(t, out, service.CoachPrompt)
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testReport(t), FormatJSON))

	var got service.WeeklyReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, weekStart, got.WeekStart)
	assert.Len(t, got.Days, 7)
	assert.Equal(t, 1, got.NotesRecorded)
}

func TestRenderPDF(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testReport(t), FormatPDF))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestExportWritesDefaultFilename(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	e := New(nil)

	path, err := e.Export(context.Background(), testReport(t), Options{Format: FormatMarkdown, Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "RexOS-Weekly-Report-2026-03-02.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# RexOS Weekly Report")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestExportExplicitPathDefaultsToPDF(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "week.pdf")
	got, err := New(nil).Export(context.Background(), testReport(t), Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExportRejectsConcurrentCall(t *testing.T) {
	t.Parallel()
	e := New(nil)
	e.mu.Lock()

	_, err := e.Export(context.Background(), testReport(t), Options{Format: FormatText, Dir: t.TempDir()})
	assert.True(t, errors.Is(err, ErrExportInProgress))

	e.mu.Unlock()
	_, err = e.Export(context.Background(), testReport(t), Options{Format: FormatText, Dir: t.TempDir()})
	assert.NoError(t, err)
}

func TestExportCancelledContextWritesNothing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Export(ctx, testReport(t), Options{Format: FormatJSON, Dir: dir})
	require.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportNilReport(t *testing.T) {
	t.Parallel()
	_, err := New(nil).Export(context.Background(), nil, Options{Dir: t.TempDir()})
	assert.Error(t, err)
}
