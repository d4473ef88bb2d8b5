package log

import (
	"testing"
	"time"
)

func TestAppendAndReadAll(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	events := []LogEvent{
		{Event: EventTimerStarted, SessionID: "ts-1", Process: "CUTTING", ProjectID: "p1"},
		{Event: EventTimerStopped, SessionID: "ts-1", Process: "CUTTING", Hours: 1.5},
		{Event: EventTaskCompleteFailed, SessionID: "ts-1", TaskID: "t1", Error: "task is locked"},
	}
	for _, ev := range events {
		if err := logger.Append(ev); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("events: got %d, want 3", len(got))
	}
	if got[0].Event != EventTimerStarted || got[0].Process != "CUTTING" {
		t.Errorf("first event: got %+v", got[0])
	}
	if got[2].Error != "task is locked" {
		t.Errorf("third event error: got %q", got[2].Error)
	}
	for i, ev := range got {
		if ev.Time.IsZero() {
			t.Errorf("event %d has no timestamp", i)
		}
	}
}

func TestAppendSetsTimeOnlyWhenZero(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	explicit := time.Date(2026, 8, 25, 7, 30, 0, 0, time.UTC)
	if err := logger.Append(LogEvent{Event: EventTimerCancelled, Time: explicit}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !got[0].Time.Equal(explicit) {
		t.Errorf("time: got %v, want %v", got[0].Time, explicit)
	}
}

func TestReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no events, got %d", len(got))
	}
}
