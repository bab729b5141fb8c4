package store

import (
	"path/filepath"
	"testing"
	"time"

	"inkpress/pkg/models"
)

func openTemp(t *testing.T) {
	t.Helper()
	if err := Open(filepath.Join(t.TempDir(), "db")); err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = Close() })
}

func TestSessionRoundTrip(t *testing.T) {
	openTemp(t)

	if got, err := GetSession(); err != nil || got != nil {
		t.Fatalf("empty store: got %v, %v", got, err)
	}
	if err := SaveSession([]byte(`{"token":"abc"}`)); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	got, err := GetSession()
	if err != nil || string(got) != `{"token":"abc"}` {
		t.Fatalf("GetSession: got %q, %v", got, err)
	}
	if err := DeleteSession(); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if got, err := GetSession(); err != nil || got != nil {
		t.Fatalf("after delete: got %v, %v", got, err)
	}
}

func TestSessionSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "db")
	if err := Open(dir); err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	if err := SaveSession([]byte("persisted")); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if err := Open(dir); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer Close()
	got, err := GetSession()
	if err != nil || string(got) != "persisted" {
		t.Fatalf("after reopen: got %q, %v", got, err)
	}
}

func TestCacheAndPrune(t *testing.T) {
	openTemp(t)

	for _, id := range []string{"a1", "a2", "a3"} {
		if err := CacheArticle(models.Article{ID: id, Title: "t-" + id}); err != nil {
			t.Fatalf("CacheArticle(%s): %v", id, err)
		}
	}
	entry, ok, err := GetCachedArticle("a2")
	if err != nil || !ok || entry.Article.Title != "t-a2" {
		t.Fatalf("GetCachedArticle: %+v, %v, %v", entry, ok, err)
	}
	all, err := ListCachedArticles()
	if err != nil || len(all) != 3 {
		t.Fatalf("ListCachedArticles: %d entries, %v", len(all), err)
	}

	// nothing is older than a cutoff in the past
	n, err := PruneCache(time.Now().Add(-time.Hour))
	if err != nil || n != 0 {
		t.Fatalf("prune past cutoff: %d, %v", n, err)
	}
	// everything is older than a cutoff in the future
	n, err = PruneCache(time.Now().Add(time.Hour))
	if err != nil || n != 3 {
		t.Fatalf("prune future cutoff: %d, %v", n, err)
	}
	if _, ok, _ := GetCachedArticle("a1"); ok {
		t.Fatal("a1 should be pruned")
	}
}

func TestNotOpened(t *testing.T) {
	if Ready() {
		t.Fatal("store should not be open")
	}
	if err := SaveSession(nil); err == nil {
		t.Fatal("expected error when store closed")
	}
}
