package store

import (
	"path/filepath"
	"testing"

	"github.com/rjcarver/manna/internal/db"
	"github.com/rjcarver/manna/internal/models"
)

func openFileStore(t *testing.T, path string) *Store {
	t.Helper()
	gdb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s, err := New(gdb)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestMarkSent_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manna.db")

	s := openFileStore(t, path)
	p, err := s.EnqueueSchedule(models.ScheduledPassage{
		Book: "Psalms", Chapter: 23, StartVerse: 1, EndVerse: 6,
		TimeOfDay: "08:00", Recipient: "+15551234567",
	})
	if err != nil {
		t.Fatalf("EnqueueSchedule: %v", err)
	}
	if err := s.MarkSent(p.ID); err != nil {
		t.Fatalf("MarkSent: %v", err)
	}

	reopened := openFileStore(t, path)
	rows, err := reopened.PendingSchedules()
	if err != nil {
		t.Fatalf("PendingSchedules: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("pending after reopen = %d, want 0", len(rows))
	}
}

func TestState_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manna.db")

	s := openFileStore(t, path)
	if err := s.SetState("last_book", "Romans"); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	reopened := openFileStore(t, path)
	got, err := reopened.GetState("last_book", "")
	if err != nil {
		t.Fatalf("GetState: %v", err)
	}
	if got != "Romans" {
		t.Errorf("value = %q, want Romans", got)
	}
}
