package storage_test

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PradipLalpura/RexOS/internal/db"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/storage"
	"github.com/PradipLalpura/RexOS/internal/store"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	sqldb, err := db.Open(filepath.Join(t.TempDir(), "rexos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqldb.Close() })
	require.NoError(t, db.ApplyMigrations(sqldb))
	return sqldb
}

func openRepo(t *testing.T) (*storage.StateRepository, *storage.KV) {
	t.Helper()
	sqldb := openDB(t)
	return storage.NewStateRepository(sqldb, storage.WithInitialBackoff(time.Millisecond)), storage.NewKV(sqldb)
}

func TestLoadMissingKeyReturnsDefault(t *testing.T) {
	t.Parallel()
	repo, _ := openRepo(t)

	state, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultState(), state)
}

func populated() model.RexState {
	s := model.DefaultState()
	waist := 81.0
	s = store.Reduce(s, store.SetProfile{Profile: model.Profile{
		Name: "Rex", Weight: 82, Height: 180,
		Measurements: &model.BodyMeasurements{Waist: &waist},
		CreatedAt:    "2026-01-01T08:00:00Z",
	}})
	s = store.Reduce(s, store.SetHabits{Habits: []model.Habit{{ID: "h1", Name: "Read", Icon: "book"}}})
	s = store.Reduce(s, store.SetDietTargets{Targets: model.DietTargets{Calories: 2200, Protein: 160, Carbs: 220, Fat: 70}})
	s = store.Reduce(s, store.LogHabit{Date: "2026-01-05", Log: model.HabitLog{HabitID: "h1", Completed: true, CompletedAt: "2026-01-05T21:00:00Z"}})
	s = store.Reduce(s, store.AddSet{Date: "2026-01-05", ExerciseID: "e1", ExerciseName: "Squat", Reps: 5, Weight: 120.5})
	s = store.Reduce(s, store.AddAdditionalExercise{Date: "2026-01-06", Exercise: model.AdditionalExercise{ID: "x1", Name: "Plank", Sets: 3, Reps: 1}})
	s = store.Reduce(s, store.LogMeal{Date: "2026-01-05", Meal: model.NewMeal("Lunch", []model.FoodItem{{ID: "f1", Name: "Rice", Weight: 200}}, 650, 40, 80, 12, "13:00")})
	s = store.Reduce(s, store.LogNote{Note: model.DailyNote{Date: "2026-01-05", Content: "Felt strong.", UpdatedAt: "2026-01-05T22:00:00Z"}})
	return store.Reduce(s, store.CompleteRegistration{})
}

func TestSaveLoadSaveIsByteIdentical(t *testing.T) {
	t.Parallel()
	repo, kv := openRepo(t)
	ctx := context.Background()

	want := populated()
	require.NoError(t, repo.Save(ctx, want))
	first, ok, err := kv.Get(ctx, storage.StateKey)
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, loaded))
	second, _, err := kv.Get(ctx, storage.StateKey)
	require.NoError(t, err)

	assert.True(t, bytes.Equal([]byte(first.Value), []byte(second.Value)), "documents differ:\n%s\n%s", first.Value, second.Value)
	assert.Equal(t, want, loaded)
	assert.Equal(t, first.Revision+1, second.Revision)
}

func TestDecodeStateAcceptsOlderDocument(t *testing.T) {
	t.Parallel()
	doc := `{"isRegistered":true,"currentStep":4,"profile":null,"habits":[],"workoutPlan":null,"dietTargets":null,"habitRecords":[],"workoutLogs":[],"dietLogs":[]}`
	state, err := storage.DecodeState([]byte(doc))
	require.NoError(t, err)
	assert.True(t, state.IsRegistered)
	assert.Empty(t, state.Notes)
}

func TestLoadRejectsCorruptDocument(t *testing.T) {
	t.Parallel()
	repo, kv := openRepo(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, storage.StateKey, "{not json"))

	_, err := repo.Load(ctx)
	assert.Error(t, err)
}

func TestSaveHonoursCancelledContext(t *testing.T) {
	t.Parallel()
	repo, _ := openRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, repo.Save(ctx, model.DefaultState()))
}

func TestRepositoryBacksStore(t *testing.T) {
	t.Parallel()
	repo, _ := openRepo(t)
	ctx := context.Background()

	s := store.New(model.DefaultState(), repo, nil)
	_, err := s.Dispatch(ctx, store.SetStep{Step: 2})
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.CurrentStep)

	rev, _, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
}

func TestSaveRetriesUntilTableIsBack(t *testing.T) {
	t.Parallel()
	sqldb := openDB(t)
	core, logs := observer.New(zapcore.InfoLevel)
	repo := storage.NewStateRepository(sqldb,
		storage.WithRetries(10),
		storage.WithInitialBackoff(10*time.Millisecond),
		storage.WithLogger(zap.New(core)),
	)
	ctx := context.Background()

	_, err := sqldb.Exec(`ALTER TABLE kv_store RENAME TO kv_store_away`)
	require.NoError(t, err)
	restored := make(chan error, 1)
	go func() {
		time.Sleep(30 * time.Millisecond)
		_, err := sqldb.Exec(`ALTER TABLE kv_store_away RENAME TO kv_store`)
		restored <- err
	}()

	require.NoError(t, repo.Save(ctx, populated()))
	require.NoError(t, <-restored)
	assert.NotEmpty(t, logs.FilterMessage("retrying state save").All())

	rev, _, err := repo.Revision(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
}

func TestSaveGivesUpAfterBoundedRetries(t *testing.T) {
	t.Parallel()
	sqldb := openDB(t)
	core, logs := observer.New(zapcore.InfoLevel)
	repo := storage.NewStateRepository(sqldb,
		storage.WithRetries(2),
		storage.WithInitialBackoff(time.Millisecond),
		storage.WithLogger(zap.New(core)),
	)

	_, err := sqldb.Exec(`DROP TABLE kv_store`)
	require.NoError(t, err)

	err = repo.Save(context.Background(), model.DefaultState())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Len(t, logs.FilterMessage("retrying state save").All(), 2)
}
