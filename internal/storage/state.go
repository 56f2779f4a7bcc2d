package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/PradipLalpura/RexOS/internal/model"
)

// StateKey is the fixed key the aggregate document lives under.
const StateKey = "rexos_data"

const DefaultSaveRetries = 3

// StateRepository loads and saves the whole aggregate as one JSON document.
type StateRepository struct {
	kv      *KV
	retries uint64
	initial time.Duration
	logger  *zap.Logger
}

type Option func(*StateRepository)

// WithRetries bounds how many times a failed save is retried.
func WithRetries(n int) Option {
	return func(r *StateRepository) {
		if n < 0 {
			n = 0
		}
		r.retries = uint64(n)
	}
}

func WithInitialBackoff(d time.Duration) Option {
	return func(r *StateRepository) {
		if d > 0 {
			r.initial = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(r *StateRepository) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewStateRepository(db *sql.DB, opts ...Option) *StateRepository {
	r := &StateRepository{
		kv:      NewKV(db),
		retries: DefaultSaveRetries,
		initial: 100 * time.Millisecond,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load returns the stored aggregate, or the default aggregate when nothing
// has been saved yet. A document that does not decode is an error; it is
// never silently replaced.
func (r *StateRepository) Load(ctx context.Context) (model.RexState, error) {
	entry, ok, err := r.kv.Get(ctx, StateKey)
	if err != nil {
		return model.RexState{}, fmt.Errorf("load state: %w", err)
	}
	if !ok {
		return model.DefaultState(), nil
	}
	state, err := DecodeState([]byte(entry.Value))
	if err != nil {
		return model.RexState{}, fmt.Errorf("load state: %w", err)
	}
	return state, nil
}

// Save writes the aggregate, retrying transient failures with exponential
// backoff. It implements store.Persister.
func (r *StateRepository) Save(ctx context.Context, state model.RexState) error {
	payload, err := EncodeState(state)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initial
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.retries), ctx)

	attempt := 0
	op := func() error {
		attempt++
		return r.kv.Set(ctx, StateKey, string(payload))
	}
	notify := func(err error, wait time.Duration) {
		r.logger.Info("retrying state save",
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return fmt.Errorf("save state after %d attempts: %w", attempt, err)
	}
	return nil
}

// Revision reports how many times the aggregate has been written.
func (r *StateRepository) Revision(ctx context.Context) (int64, string, error) {
	entry, ok, err := r.kv.Get(ctx, StateKey)
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return 0, "", nil
	}
	return entry.Revision, entry.UpdatedAt, nil
}

func (r *StateRepository) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, StateKey)
}

func EncodeState(state model.RexState) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return payload, nil
}

func DecodeState(data []byte) (model.RexState, error) {
	var state model.RexState
	if err := json.Unmarshal(data, &state); err != nil {
		return model.RexState{}, fmt.Errorf("decode state: %w", err)
	}
	return state, nil
}
