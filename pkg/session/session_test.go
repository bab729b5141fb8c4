package session

import (
	"path/filepath"
	"testing"

	"inkpress/pkg/models"
	"inkpress/pkg/store"
)

var actor = models.Actor{ID: "u1", DisplayName: "Ada", Role: models.RoleAdmin}

func TestInMemoryOnly(t *testing.T) {
	m := NewManager()
	if m.Authenticated() || m.Actor() != nil || m.Token() != "" {
		t.Fatal("new manager must be unauthenticated")
	}
	if err := m.Set(actor, "tok-1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !m.Authenticated() || m.Token() != "tok-1" {
		t.Fatal("session not set")
	}
	got := m.Actor()
	if got == nil || got.ID != "u1" || got.Role != models.RoleAdmin {
		t.Fatalf("Actor: %+v", got)
	}
	// returned actor is a copy; mutating it must not leak back
	got.Role = models.RoleViewer
	if m.Actor().Role != models.RoleAdmin {
		t.Fatal("Actor must return a copy")
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.Authenticated() {
		t.Fatal("cleared session still authenticated")
	}
}

func TestPersistAcrossRestart(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	if err := store.Open(dir); err != nil {
		t.Fatalf("store.Open: %v", err)
	}

	m := NewManager()
	if err := m.Set(actor, "tok-2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// fresh process: reopen store, restore into a new manager
	if err := store.Open(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	m2 := NewManager()
	if err := m2.Restore(); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if m2.Token() != "tok-2" {
		t.Fatalf("restored token = %q", m2.Token())
	}
	if a := m2.Actor(); a == nil || a.ID != "u1" {
		t.Fatalf("restored actor = %+v", a)
	}

	// clear removes the persisted record too
	if err := m2.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	m3 := NewManager()
	if err := m3.Restore(); err != nil {
		t.Fatalf("Restore after clear: %v", err)
	}
	if m3.Authenticated() {
		t.Fatal("cleared session must not restore")
	}
}

func TestRestoreWithoutStore(t *testing.T) {
	m := NewManager()
	if err := m.Restore(); err != nil {
		t.Fatalf("Restore without store: %v", err)
	}
	if m.Authenticated() {
		t.Fatal("nothing to restore")
	}
}
