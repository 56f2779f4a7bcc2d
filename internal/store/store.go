// Package store owns the in-memory RexState and the only way to change it:
// dispatching an Action. Every successful dispatch is handed to a Persister.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PradipLalpura/RexOS/internal/model"
)

// ErrPersist wraps failures of the Persister. The in-memory state has already
// advanced when it is returned.
var ErrPersist = errors.New("persist state")

type Persister interface {
	Save(ctx context.Context, state model.RexState) error
}

type Store struct {
	mu        sync.Mutex
	state     model.RexState
	persister Persister
	logger    *zap.Logger
}

// New returns a store seeded with initial. A nil persister keeps the state in
// memory only and a nil logger discards logs.
func New(initial model.RexState, persister Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		state:     initial.Clone(),
		persister: persister,
		logger:    logger,
	}
}

// State returns a copy of the current state.
func (s *Store) State() model.RexState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch reduces a into the current state, persists the result and returns
// a copy of it. Dispatches are serialized.
func (s *Store) Dispatch(ctx context.Context, a Action) (model.RexState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	s.state = Reduce(s.state, a)
	s.logger.Debug("action dispatched",
		zap.String("action", a.Kind()),
		zap.Duration("duration", time.Since(started)),
	)

	if s.persister == nil {
		return s.state.Clone(), nil
	}
	if err := s.persister.Save(ctx, s.state); err != nil {
		s.logger.Warn("state not persisted",
			zap.String("action", a.Kind()),
			zap.Error(err),
		)
		return s.state.Clone(), fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return s.state.Clone(), nil
}

// DispatchAll applies every action in order. A failed save does not stop the
// batch; all persistence failures are returned joined, each wrapping
// ErrPersist.
func (s *Store) DispatchAll(ctx context.Context, actions ...Action) (model.RexState, error) {
	state := s.State()
	var errs []error
	for _, a := range actions {
		next, err := s.Dispatch(ctx, a)
		state = next
		if err != nil {
			errs = append(errs, err)
		}
	}
	return state, errors.Join(errs...)
}
