package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/PradipLalpura/RexOS/internal/model"
	"github.com/PradipLalpura/RexOS/internal/service"
	"github.com/PradipLalpura/RexOS/internal/store"
)

func TestNoteAutosaverSavesLastEdit(t *testing.T) {
	t.Parallel()
	s := store.New(model.DefaultState(), nil, nil)
	saver := service.NewNoteAutosaver(s, 10*time.Millisecond, nil)

	saver.Edit(monday, "F")
	saver.Edit(monday, "Fe")
	saver.Edit(monday, "Felt good")

	deadline := time.Now().Add(time.Second)
	for saver.Saves() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if saver.Saves() != 1 {
		t.Fatalf("expected one save, got %d", saver.Saves())
	}
	note, ok := s.State().NoteFor(monday)
	if !ok || note.Content != "Felt good" {
		t.Fatalf("expected latest content saved, got %+v", note)
	}
	if err := saver.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNoteAutosaverCloseFlushes(t *testing.T) {
	t.Parallel()
	s := store.New(model.DefaultState(), nil, nil)
	saver := service.NewNoteAutosaver(s, time.Hour, nil)

	saver.Edit(monday, "written before exit")
	if !saver.Pending() {
		t.Fatalf("expected pending edit")
	}
	if err := saver.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := s.State().NoteFor(monday); !ok {
		t.Fatalf("expected note saved on close")
	}
}

func TestNoteAutosaverSkipsEmptyNewNote(t *testing.T) {
	t.Parallel()
	s := store.New(model.DefaultState(), nil, nil)
	saver := service.NewNoteAutosaver(s, time.Hour, nil)

	saver.Edit(monday, "   ")
	_ = saver.Close()
	if _, ok := s.State().NoteFor(monday); ok {
		t.Fatalf("expected empty note for a new day to be skipped")
	}

	_, _ = s.Dispatch(context.Background(), store.LogNote{Note: model.DailyNote{Date: tuesday, Content: "draft"}})
	saver = service.NewNoteAutosaver(s, time.Hour, nil)
	saver.Edit(tuesday, "")
	_ = saver.Close()
	note, ok := s.State().NoteFor(tuesday)
	if !ok || note.Content != "" {
		t.Fatalf("expected existing note to be cleared, got %+v", note)
	}
}
