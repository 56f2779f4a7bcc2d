package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PradipLalpura/RexOS/internal/dates"
	"github.com/PradipLalpura/RexOS/internal/model"
)

var ErrChecksumMismatch = errors.New("backup checksum mismatch")

const (
	backupPrefix = "rexos-"
	backupExt    = ".json"
)

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

type DoctorReport struct {
	DuplicateHabitRecords int `json:"duplicate_habit_records"`
	DuplicateHabitLogs    int `json:"duplicate_habit_logs"`
	UnknownHabitLogs      int `json:"unknown_habit_logs"`
	DuplicateWorkoutLogs  int `json:"duplicate_workout_logs"`
	EmptyExerciseLogs     int `json:"empty_exercise_logs"`
	MisnumberedSets       int `json:"misnumbered_sets"`
	DuplicateDietLogs     int `json:"duplicate_diet_logs"`
	QuantityMismatches    int `json:"quantity_mismatches"`
	DuplicateNotes        int `json:"duplicate_notes"`
	InvalidDates          int `json:"invalid_dates"`
}

func (r DoctorReport) Issues() int {
	return r.DuplicateHabitRecords + r.DuplicateHabitLogs + r.DuplicateWorkoutLogs +
		r.EmptyExerciseLogs + r.MisnumberedSets + r.DuplicateDietLogs +
		r.QuantityMismatches + r.DuplicateNotes
}

// RunDoctor inspects the aggregate for states the store never produces on its
// own, such as hand-edited or imported documents. Unknown habit references and
// invalid dates are reported but never repaired.
func RunDoctor(s model.RexState) DoctorReport {
	var report DoctorReport
	known := make(map[string]bool, len(s.Habits))
	for _, h := range s.Habits {
		known[h.ID] = true
	}

	seen := map[string]bool{}
	for _, r := range s.HabitRecords {
		if seen[r.Date] {
			report.DuplicateHabitRecords++
		}
		seen[r.Date] = true
		report.InvalidDates += invalidDate(r.Date)
		logs := map[string]bool{}
		for _, l := range r.Logs {
			if logs[l.HabitID] {
				report.DuplicateHabitLogs++
			}
			logs[l.HabitID] = true
			if !known[l.HabitID] {
				report.UnknownHabitLogs++
			}
		}
	}

	seen = map[string]bool{}
	for _, l := range s.WorkoutLogs {
		if seen[l.Date] {
			report.DuplicateWorkoutLogs++
		}
		seen[l.Date] = true
		report.InvalidDates += invalidDate(l.Date)
		for _, e := range l.Exercises {
			if len(e.Sets) == 0 {
				report.EmptyExerciseLogs++
			}
			for i, set := range e.Sets {
				if set.SetNumber != i+1 {
					report.MisnumberedSets++
				}
			}
		}
	}

	seen = map[string]bool{}
	for _, l := range s.DietLogs {
		if seen[l.Date] {
			report.DuplicateDietLogs++
		}
		seen[l.Date] = true
		report.InvalidDates += invalidDate(l.Date)
		for _, m := range l.Meals {
			if len(m.FoodItems) > 0 && m.Quantity != m.TotalQuantity() {
				report.QuantityMismatches++
			}
		}
	}

	seen = map[string]bool{}
	for _, n := range s.Notes {
		if seen[n.Date] {
			report.DuplicateNotes++
		}
		seen[n.Date] = true
	}
	return report
}

func invalidDate(date string) int {
	if _, err := dates.Parse(date); err != nil {
		return 1
	}
	return 0
}

// Repair returns a normalized copy of s: per-date duplicates are merged with
// later entries winning, empty exercise logs are pruned, sets renumbered and
// meal quantities recomputed.
func Repair(s model.RexState) model.RexState {
	out := s.Clone()

	out.HabitRecords = mergeByDate(out.HabitRecords,
		func(r model.DailyHabitRecord) string { return r.Date },
		func(prev, next model.DailyHabitRecord) model.DailyHabitRecord {
			prev.Logs = append(prev.Logs, next.Logs...)
			return prev
		})
	for i := range out.HabitRecords {
		out.HabitRecords[i].Logs = dedupeHabitLogs(out.HabitRecords[i].Logs)
	}

	out.WorkoutLogs = mergeByDate(out.WorkoutLogs,
		func(l model.WorkoutLog) string { return l.Date },
		func(_, next model.WorkoutLog) model.WorkoutLog { return next })
	for i := range out.WorkoutLogs {
		log := &out.WorkoutLogs[i]
		kept := make([]model.ExerciseLog, 0, len(log.Exercises))
		for _, e := range log.Exercises {
			if len(e.Sets) == 0 {
				continue
			}
			for j := range e.Sets {
				e.Sets[j].SetNumber = j + 1
			}
			kept = append(kept, e)
		}
		log.Exercises = kept
	}

	out.DietLogs = mergeByDate(out.DietLogs,
		func(l model.DailyDietLog) string { return l.Date },
		func(prev, next model.DailyDietLog) model.DailyDietLog {
			prev.Meals = append(prev.Meals, next.Meals...)
			return prev
		})
	for i := range out.DietLogs {
		for j := range out.DietLogs[i].Meals {
			m := &out.DietLogs[i].Meals[j]
			if len(m.FoodItems) > 0 {
				m.Quantity = m.TotalQuantity()
			}
		}
	}

	out.Notes = mergeByDate(out.Notes,
		func(n model.DailyNote) string { return n.Date },
		func(_, next model.DailyNote) model.DailyNote { return next })
	return out
}

// mergeByDate folds entries sharing a key into the position of the first one.
func mergeByDate[T any](in []T, key func(T) string, merge func(prev, next T) T) []T {
	if in == nil {
		return nil
	}
	index := make(map[string]int, len(in))
	out := make([]T, 0, len(in))
	for _, item := range in {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = merge(out[i], item)
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}

func dedupeHabitLogs(logs []model.HabitLog) []model.HabitLog {
	return mergeByDate(logs,
		func(l model.HabitLog) string { return l.HabitID },
		func(_, next model.HabitLog) model.HabitLog { return next })
}

// BackupPath names a new backup in dir.
func BackupPath(dir string, now time.Time) string {
	return filepath.Join(dir, backupPrefix+now.Format("20060102-150405")+backupExt)
}

// CreateBackup writes state as a snapshot file with a .sha256 sidecar.
func CreateBackup(s model.RexState, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("create backup file: %w", err)
	}
	if err := ExportSnapshot(f, s); err != nil {
		_ = f.Close()
		return BackupInfo{}, err
	}
	if err := f.Close(); err != nil {
		return BackupInfo{}, fmt.Errorf("close backup file: %w", err)
	}

	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+".sha256", []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	st, err := os.Stat(outPath)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	return BackupInfo{Path: outPath, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()}, nil
}

// RestoreBackup verifies the sidecar checksum when present and decodes the
// snapshot. The caller loads the result into the store.
func RestoreBackup(backupPath string) (model.RexState, error) {
	if strings.TrimSpace(backupPath) == "" {
		return model.RexState{}, fmt.Errorf("backup path is required")
	}
	if expected, err := os.ReadFile(backupPath + ".sha256"); err == nil {
		actual, err := fileSHA256(backupPath)
		if err != nil {
			return model.RexState{}, err
		}
		if strings.TrimSpace(string(expected)) != actual {
			return model.RexState{}, ErrChecksumMismatch
		}
	}
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return model.RexState{}, fmt.Errorf("read backup: %w", err)
	}
	return ImportSnapshot(data)
}

func ListBackups(dir string) ([]BackupInfo, error) {
	files, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), backupExt) {
			continue
		}
		full := filepath.Join(dir, f.Name())
		st, err := os.Stat(full)
		if err != nil {
			continue
		}
		checksum := ""
		if b, err := os.ReadFile(full + ".sha256"); err == nil {
			checksum = strings.TrimSpace(string(b))
		}
		out = append(out, BackupInfo{Path: full, Checksum: checksum, CreatedAt: st.ModTime(), SizeBytes: st.Size()})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
