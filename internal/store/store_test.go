package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("journal should not exist before New()")
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer s.Close()

	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("journal file not created: %v", err)
	}

	tests := []struct {
		kind string
		name string
	}{
		{"table", "sessions"},
		{"table", "events"},
		{"table", "settings"},
		{"index", "idx_events_session_id"},
		{"index", "idx_sessions_started_at"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var name string
			err := s.DB().QueryRow(
				"SELECT name FROM sqlite_master WHERE type=? AND name=?", tt.kind, tt.name,
			).Scan(&name)
			if err != nil {
				t.Errorf("%s %q missing after migrations: %v", tt.kind, tt.name, err)
			}
		})
	}
}

func TestNew_ReopenKeepsJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	sess := &Session{StartedAt: time.Date(2026, 4, 2, 18, 0, 0, 0, time.UTC)}
	if err := s.Sessions().Create(sess); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Settings().SetBool("enabled", false); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("queries should fail after Close()")
	}

	// Migrations run again on an existing file without touching its rows.
	s, err = New(path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	if _, err := s.Sessions().GetByID(sess.ID); err != nil {
		t.Errorf("session lost across reopen: %v", err)
	}
	if s.Settings().Bool("enabled", true) {
		t.Error("setting lost across reopen")
	}
}

func TestStore_DeleteSessionCascadesEvents(t *testing.T) {
	s := newTestStore(t)

	var fk int
	if err := s.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("PRAGMA foreign_keys error = %v", err)
	}
	if fk != 1 {
		t.Fatal("foreign keys should be enabled")
	}

	keep := &Session{}
	drop := &Session{}
	for _, sess := range []*Session{keep, drop} {
		if err := s.Sessions().Create(sess); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		for _, kind := range []string{"heart", "ok_sign"} {
			if err := s.Events().Append(&Event{SessionID: sess.ID, Kind: kind, Mode: "idle"}); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}
	}

	if _, err := s.DB().Exec("DELETE FROM sessions WHERE id = ?", drop.ID); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	gone, err := s.Events().ListBySession(drop.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(gone) != 0 {
		t.Errorf("deleted session still has %d events", len(gone))
	}

	kept, err := s.Events().ListBySession(keep.ID)
	if err != nil {
		t.Fatalf("ListBySession() error = %v", err)
	}
	if len(kept) != 2 {
		t.Errorf("other session has %d events, want 2", len(kept))
	}
}
