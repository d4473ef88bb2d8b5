package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopfloor-dev/shopfloor/internal/timer"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndListSince(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	recs := []timer.StopRecord{
		{SessionID: "ts-1", Process: "CUTTING", ProjectID: "p1", StartedAt: base, StoppedAt: base.Add(time.Hour), Hours: 1},
		{SessionID: "ts-2", Process: "ADMIN", StartedAt: base.Add(2 * time.Hour), StoppedAt: base.Add(3 * time.Hour), Hours: 1.5},
	}
	for _, r := range recs {
		if err := s.Record(r); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	entries, err := s.ListSince(base)
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries: got %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].SessionID != "ts-2" {
		t.Errorf("order: got %s first, want ts-2", entries[0].SessionID)
	}

	// A later cutoff excludes the earlier entry.
	entries, err = s.ListSince(base.Add(2 * time.Hour))
	if err != nil {
		t.Fatalf("ListSince: %v", err)
	}
	if len(entries) != 1 || entries[0].SessionID != "ts-2" {
		t.Errorf("cutoff: got %v", entries)
	}
}

func TestHoursSince(t *testing.T) {
	s := openStore(t)
	base := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	_ = s.Record(timer.StopRecord{SessionID: "a", Process: "CUTTING", StoppedAt: base.Add(time.Hour), Hours: 1.25})
	_ = s.Record(timer.StopRecord{SessionID: "b", Process: "ADMIN", StoppedAt: base.Add(2 * time.Hour), Hours: 0.5})

	total, err := s.HoursSince(base)
	if err != nil {
		t.Fatalf("HoursSince: %v", err)
	}
	if total != 1.75 {
		t.Errorf("total: got %v, want 1.75", total)
	}
}

func TestHoursSinceEmptyJournal(t *testing.T) {
	s := openStore(t)
	total, err := s.HoursSince(time.Now())
	if err != nil {
		t.Fatalf("HoursSince: %v", err)
	}
	if total != 0 {
		t.Errorf("empty journal total: got %v, want 0", total)
	}
}
