package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/PradipLalpura/RexOS/internal/model"
)

type recordingPersister struct {
	mu    sync.Mutex
	saved []model.RexState
	err   error
}

func (p *recordingPersister) Save(_ context.Context, state model.RexState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.saved = append(p.saved, state.Clone())
	return nil
}

func TestDispatchPersistsEveryTransition(t *testing.T) {
	t.Parallel()
	p := &recordingPersister{}
	s := New(model.DefaultState(), p, zap.NewNop())

	_, err := s.Dispatch(context.Background(), SetStep{Step: 2})
	require.NoError(t, err)
	state, err := s.Dispatch(context.Background(), CompleteRegistration{})
	require.NoError(t, err)

	assert.True(t, state.IsRegistered)
	require.Len(t, p.saved, 2)
	assert.Equal(t, 2, p.saved[0].CurrentStep)
	assert.True(t, p.saved[1].IsRegistered)
}

func TestDispatchKeepsStateWhenPersistFails(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.WarnLevel)
	p := &recordingPersister{err: errors.New("disk full")}
	s := New(model.DefaultState(), p, zap.New(core))

	state, err := s.Dispatch(context.Background(), CompleteRegistration{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.True(t, state.IsRegistered)
	assert.True(t, s.State().IsRegistered)

	entries := logs.FilterMessage("state not persisted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "complete_registration", entries[0].ContextMap()["action"])
}

func TestStateReturnsCopy(t *testing.T) {
	t.Parallel()
	s := New(model.DefaultState(), nil, nil)
	_, err := s.Dispatch(context.Background(), SetHabits{Habits: []model.Habit{{ID: "h1", Name: "Read"}}})
	require.NoError(t, err)

	snapshot := s.State()
	snapshot.Habits[0].Name = "changed"
	assert.Equal(t, "Read", s.State().Habits[0].Name)
}

func TestConcurrentDispatchesAreSerialized(t *testing.T) {
	t.Parallel()
	s := New(model.DefaultState(), &recordingPersister{}, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Dispatch(context.Background(), LogMeal{Date: day, Meal: model.NewMeal("Snack", nil, 100, 5, 10, 2, "16:00")})
		}()
	}
	wg.Wait()

	log, ok := s.State().DietLogFor(day)
	require.True(t, ok)
	assert.Len(t, log.Meals, 50)
}

func TestDispatchAll(t *testing.T) {
	t.Parallel()
	s := New(model.DefaultState(), nil, nil)
	state, err := s.DispatchAll(context.Background(),
		SetProfile{Profile: model.Profile{Name: "Rex"}},
		SetStep{Step: 4},
		CompleteRegistration{},
	)
	require.NoError(t, err)
	assert.Equal(t, 4, state.CurrentStep)
	assert.True(t, state.IsRegistered)
}

func TestDispatchAllAppliesEveryActionWhenPersistFails(t *testing.T) {
	t.Parallel()
	p := &recordingPersister{err: errors.New("disk full")}
	s := New(model.DefaultState(), p, zap.NewNop())

	state, err := s.DispatchAll(context.Background(),
		SetProfile{Profile: model.Profile{Name: "Rex"}},
		SetStep{Step: 2},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, 2, state.CurrentStep)
	_, hasProfile := state.UserProfile()
	assert.True(t, hasProfile)
	assert.Equal(t, 2, s.State().CurrentStep)
}
