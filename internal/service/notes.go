package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/PradipLalpura/RexOS/internal/debounce"
	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/store"
)

const DefaultNoteDebounce = time.Second

// Dispatcher is the part of *store.Store the autosaver needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, a store.Action) (model.RexState, error)
	State() model.RexState
}

// NoteAutosaver saves a note once edits have been quiet for the debounce
// delay. Only the latest content of a burst is saved.
type NoteAutosaver struct {
	store    Dispatcher
	debounce *debounce.Debouncer
	logger   *zap.Logger
	now      func() time.Time

	mu      sync.Mutex
	saves   int
	lastErr error
}

func NewNoteAutosaver(s Dispatcher, delay time.Duration, logger *zap.Logger) *NoteAutosaver {
	if delay <= 0 {
		delay = DefaultNoteDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteAutosaver{
		store:    s,
		debounce: debounce.New(delay),
		logger:   logger,
		now:      time.Now,
	}
}

// Edit schedules content to be saved for date, superseding any unsaved edit.
func (a *NoteAutosaver) Edit(date, content string) {
	a.debounce.Trigger(func() { a.save(date, content) })
}

func (a *NoteAutosaver) save(date, content string) {
	_, exists := a.store.State().NoteFor(date)
	if !exists && strings.TrimSpace(content) == "" {
		return
	}
	note := model.DailyNote{
		Date:      date,
		Content:   content,
		UpdatedAt: a.now().UTC().Format(time.RFC3339),
	}
	_, err := a.store.Dispatch(context.Background(), store.LogNote{Note: note})

	a.mu.Lock()
	a.saves++
	a.lastErr = err
	a.mu.Unlock()
	if err != nil {
		a.logger.Warn("note autosave failed", zap.String("date", date), zap.Error(err))
	}
}

// Close flushes a pending edit and returns the error of the last save.
func (a *NoteAutosaver) Close() error {
	a.debounce.Flush()
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

func (a *NoteAutosaver) Pending() bool {
	return a.debounce.Pending()
}

// Saves counts dispatched saves.
func (a *NoteAutosaver) Saves() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.saves
}
