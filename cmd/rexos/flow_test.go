package rexos

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PradipLalpura/RexOS/internal/service"
)

const (
	flowMonday = "2026-03-02"
	flowPlan   = `type: gym
gym:
  - day: Monday
    workout: Push
    exercises:
      - {id: bench, name: Bench Press, sets: 3, reps: 8}
      - {id: dips, name: Dips, sets: 3, reps: 10}
  - day: Wednesday
    workout: Legs
    exercises:
      - {id: squat, name: Squat, sets: 5, reps: 5}
`
)

func registerFixture(t *testing.T, dir string) {
	t.Helper()
	planPath := filepath.Join(dir, "plan.yaml")
	if err := os.WriteFile(planPath, []byte(flowPlan), 0o644); err != nil {
		t.Fatalf("write plan: %v", err)
	}
	mustRun(t, dir, "init")
	mustRun(t, dir, "register", "profile", "--name", "Rex", "--weight", "80", "--height", "180")
	mustRun(t, dir, "register", "habits", "--habit", "Read|book", "--habit", "Meditate")
	mustRun(t, dir, "register", "workout", "--file", planPath)
	mustRun(t, dir, "register", "diet", "--calories", "2000", "--protein", "150", "--carbs", "200", "--fat", "70")
	mustRun(t, dir, "register", "complete")
}

func fetchToday(t *testing.T, dir, date string) service.TodayStatus {
	t.Helper()
	out := mustRun(t, dir, "today", "--date", date, "--json")
	var status service.TodayStatus
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode today json: %v (%s)", err, out)
	}
	return status
}

func TestDayInTheLifeFlow(t *testing.T) {
	dir := t.TempDir()
	registerFixture(t, dir)

	out := mustRun(t, dir, "register", "status")
	if !strings.Contains(out, "Registered: true") || !strings.Contains(out, "Habits: 2") {
		t.Fatalf("unexpected register status: %s", out)
	}

	mustRun(t, dir, "habit", "done", "read", "--date", flowMonday)
	mustRun(t, dir, "workout", "set", "add", "bench", "--reps", "8", "--weight", "100", "--date", flowMonday)
	mustRun(t, dir, "workout", "set", "add", "bench", "--reps", "8", "--weight", "100", "--date", flowMonday)
	mustRun(t, dir, "workout", "set", "update", "bench", "2", "--reps", "6", "--date", flowMonday)
	mustRun(t, dir, "workout", "set", "remove", "bench", "1", "--date", flowMonday)
	mustRun(t, dir, "workout", "extra", "add", "--name", "Plank", "--sets", "3", "--reps", "1", "--date", flowMonday)
	mustRun(t, dir, "meal", "add", "--name", "Lunch", "--calories", "1400", "--protein", "110", "--carbs", "150", "--fat", "40",
		"--time", "13:00", "--item", "rice:200", "--item", "chicken:150", "--date", flowMonday)
	mustRun(t, dir, "note", "set", "Felt", "strong", "--date", flowMonday)

	status := fetchToday(t, dir, flowMonday)
	if status.HabitsDone != 1 || status.HabitsTotal != 2 {
		t.Fatalf("expected 1/2 habits, got %d/%d", status.HabitsDone, status.HabitsTotal)
	}
	if status.Workout == nil || status.Workout.Completed != 1 || status.Workout.WorkoutName != "Push" {
		t.Fatalf("unexpected workout: %+v", status.Workout)
	}
	if got := status.Workout.Planned[0].Sets; len(got) != 1 || got[0].SetNumber != 1 || got[0].Reps != 6 {
		t.Fatalf("expected one renumbered set of 6 reps, got %+v", got)
	}
	if status.MealCount != 1 || status.Calories != 1400 || status.RemainingCalories != 600 {
		t.Fatalf("unexpected diet summary: %+v", status)
	}
	if status.NotePreview != "Felt strong" {
		t.Fatalf("expected note preview, got %q", status.NotePreview)
	}

	out = mustRun(t, dir, "meal", "list", "--date", flowMonday)
	if !strings.Contains(out, "350g") {
		t.Fatalf("expected meal quantity from items, got %s", out)
	}

	out = mustRun(t, dir, "rating", "--date", flowMonday)
	if !strings.Contains(out, "overall") || !strings.Contains(out, "habits") {
		t.Fatalf("unexpected rating output: %s", out)
	}

	out = mustRun(t, dir, "workout", "show", "--date", flowMonday)
	if !strings.Contains(out, "Monday - Push") || !strings.Contains(out, "+ Plank") {
		t.Fatalf("unexpected workout show output: %s", out)
	}

	out = mustRun(t, dir, "report", "--date", flowMonday, "--format", "markdown", "--prompt")
	if !strings.Contains(out, "# RexOS Weekly Report") || !strings.Contains(out, "Felt strong") || !strings.Contains(out, service.CoachPrompt) {
		t.Fatalf("unexpected markdown report: %s", out)
	}

	reportDir := filepath.Join(dir, "reports")
	out = mustRun(t, dir, "report", "--date", flowMonday, "--format", "pdf", "--dir", reportDir)
	pdfPath := filepath.Join(reportDir, "RexOS-Weekly-Report-"+flowMonday+".pdf")
	if !strings.Contains(out, pdfPath) {
		t.Fatalf("expected report path in output, got %s", out)
	}
	if _, err := os.Stat(pdfPath); err != nil {
		t.Fatalf("expected pdf report: %v", err)
	}

	out = mustRun(t, dir, "analytics", "range", "--from", flowMonday, "--to", "2026-03-08", "--json")
	var report service.AnalyticsReport
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode analytics json: %v", err)
	}
	if len(report.Days) != 7 || report.WorkoutDays != 1 || report.DaysWithCalories != 1 {
		t.Fatalf("unexpected analytics: %+v", report)
	}
	out = mustRun(t, dir, "analytics", "period", "week", "--end", "2026-03-08", "--charts")
	if !strings.Contains(out, "Calories:") || !strings.Contains(out, "#") {
		t.Fatalf("expected charts, got %s", out)
	}

	mustRun(t, dir, "doctor")
}

func TestNoteWriteAutosavesFromStdin(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	out, stderr, err := runCLIWithInput(t, dir, "line one\nline two\n", "note", "write", "--date", flowMonday)
	if err != nil {
		t.Fatalf("note write failed: %v (stderr=%s)", err, stderr)
	}
	if !strings.Contains(out, "(1 autosave(s))") {
		t.Fatalf("expected a single debounced save, got %s", out)
	}

	out = mustRun(t, dir, "note", "show", "--date", flowMonday)
	if !strings.Contains(out, "line one\nline two") {
		t.Fatalf("unexpected note: %s", out)
	}

	if _, _, err := runCLIWithInput(t, dir, "line three\n", "note", "write", "--append", "--date", flowMonday); err != nil {
		t.Fatalf("note append failed: %v", err)
	}
	out = mustRun(t, dir, "note", "list")
	if !strings.Contains(out, flowMonday) || !strings.Contains(out, "line three") {
		t.Fatalf("unexpected note list: %s", out)
	}
}

func TestNoteWriteWithEmptyInputSavesNothing(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	out, stderr, err := runCLIWithInput(t, dir, "\n\n", "note", "write", "--date", flowMonday)
	if err != nil {
		t.Fatalf("note write failed: %v (stderr=%s)", err, stderr)
	}
	if strings.Contains(out, "Saved note") || !strings.Contains(out, "Nothing to save for "+flowMonday) {
		t.Fatalf("expected nothing saved, got %s", out)
	}
	out = mustRun(t, dir, "note", "list")
	if strings.Contains(out, flowMonday) {
		t.Fatalf("expected no notes, got %s", out)
	}
}

func TestRegisterHabitPresets(t *testing.T) {
	dir := t.TempDir()
	mustRun(t, dir, "init")

	out := mustRun(t, dir, "register", "habits", "--list-presets")
	if !strings.Contains(out, "Drink Water") || !strings.Contains(out, "Healthy Eating") {
		t.Fatalf("unexpected preset list: %s", out)
	}

	mustRun(t, dir, "register", "habits", "--preset", "drink water", "--preset", "Reading", "--habit", "Stretch")
	out = mustRun(t, dir, "habit", "list")
	for _, name := range []string{"Drink Water", "Reading", "Stretch"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in habit list, got %s", name, out)
		}
	}
	if _, _, err := runCLI(t, dir, "register", "habits", "--preset", "Juggling"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestBackupExportResetImport(t *testing.T) {
	dir := t.TempDir()
	registerFixture(t, dir)
	mustRun(t, dir, "habit", "done", "Read", "--date", flowMonday)

	backupDir := filepath.Join(dir, "backups")
	out := mustRun(t, dir, "backup", "create", "--dir", backupDir)
	if !strings.Contains(out, "Checksum:") {
		t.Fatalf("unexpected backup output: %s", out)
	}
	out = mustRun(t, dir, "backup", "list", "--dir", backupDir)
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected header and one backup, got %s", out)
	}

	snapshot := filepath.Join(dir, "export.json")
	mustRun(t, dir, "data", "export", "--out", snapshot)
	mustRun(t, dir, "reset", "--yes")

	if status := fetchToday(t, dir, flowMonday); status.HabitsTotal != 0 {
		t.Fatalf("expected no habits after reset, got %d", status.HabitsTotal)
	}

	out = mustRun(t, dir, "data", "import", "--in", snapshot, "--dry-run")
	if !strings.Contains(out, "2 habits") {
		t.Fatalf("unexpected dry run output: %s", out)
	}
	if status := fetchToday(t, dir, flowMonday); status.HabitsTotal != 0 {
		t.Fatalf("dry run must not write, got %d habits", status.HabitsTotal)
	}

	mustRun(t, dir, "data", "import", "--in", snapshot)
	if status := fetchToday(t, dir, flowMonday); status.HabitsDone != 1 {
		t.Fatalf("expected imported habit log, got %d done", status.HabitsDone)
	}

	mustRun(t, dir, "reset", "--yes")
	entries, err := os.ReadDir(backupDir)
	if err != nil {
		t.Fatalf("read backup dir: %v", err)
	}
	var backupFile string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".json") {
			backupFile = filepath.Join(backupDir, e.Name())
		}
	}
	mustRun(t, dir, "backup", "restore", "--file", backupFile)
	out = mustRun(t, dir, "habit", "list")
	if !strings.Contains(out, "Read") {
		t.Fatalf("expected restored habits, got %s", out)
	}
}

func TestCommandValidation(t *testing.T) {
	dir := t.TempDir()
	registerFixture(t, dir)

	cases := [][]string{
		{"habit", "done", "Swim"},
		{"workout", "set", "add", "unknown", "--reps", "5"},
		{"workout", "set", "add", "bench", "--reps", "0"},
		{"workout", "set", "remove", "bench", "1", "--date", flowMonday},
		{"meal", "add", "--name", "Snack", "--calories", "-5"},
		{"meal", "add", "--name", "Snack", "--time", "25:99"},
		{"meal", "delete", "missing"},
		{"targets", "set", "--calories", "0", "--protein", "100"},
		{"report", "--format", "docx"},
		{"analytics", "period", "decade"},
		{"analytics", "week", "--week", "2026-W60"},
		{"profile", "update"},
	}
	for _, args := range cases {
		if _, _, err := runCLI(t, dir, args...); err == nil {
			t.Fatalf("%s: expected error", strings.Join(args, " "))
		}
	}
}

func TestProfileUpdate(t *testing.T) {
	dir := t.TempDir()
	registerFixture(t, dir)

	mustRun(t, dir, "profile", "update", "--weight", "78.5", "--waist", "82")
	out := mustRun(t, dir, "profile", "show")
	if !strings.Contains(out, "Weight: 78.5kg") || !strings.Contains(out, "BMI: 24.2 (Normal)") || !strings.Contains(out, "waist\t82") {
		t.Fatalf("unexpected profile: %s", out)
	}
}

func TestProfileUpdateWithUnits(t *testing.T) {
	dir := t.TempDir()
	registerFixture(t, dir)

	mustRun(t, dir, "profile", "update", "--weight", "176", "--weight-unit", "lb", "--chest", "40", "--length-unit", "in")
	out := mustRun(t, dir, "profile", "show")
	if !strings.Contains(out, "Weight: 79.8kg") || !strings.Contains(out, "chest\t101.6") {
		t.Fatalf("unexpected profile: %s", out)
	}
	if _, _, err := runCLI(t, dir, "profile", "update", "--weight", "80", "--weight-unit", "stone"); err == nil {
		t.Fatalf("expected unsupported unit error")
	}
}
