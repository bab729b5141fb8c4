package retention

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"inkpress/pkg/config"
	"inkpress/pkg/models"
	"inkpress/pkg/store"
)

func openTemp(t *testing.T) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "db")
	if err := store.Open(dir); err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
}

func TestRunOnceRemovesStaleEntries(t *testing.T) {
	openTemp(t)

	for _, a := range []models.Article{
		{ID: "a1", Title: "First"},
		{ID: "a2", Title: "Second"},
	} {
		if err := store.CacheArticle(a); err != nil {
			t.Fatalf("cache %s: %v", a.ID, err)
		}
	}

	// generous window keeps everything
	n, err := RunOnce(24 * time.Hour)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 0 {
		t.Fatalf("removed = %d, want 0", n)
	}

	// negative window puts the cutoff in the future, expiring all
	n, err = RunOnce(-time.Hour)
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if n != 2 {
		t.Fatalf("removed = %d, want 2", n)
	}
	left, err := store.ListCachedArticles()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("left = %+v", left)
	}
}

func TestRunOnceWithoutStore(t *testing.T) {
	if _, err := RunOnce(time.Hour); err == nil {
		t.Fatalf("expected error when store is closed")
	}
}

func TestStartDisabledIsNoop(t *testing.T) {
	cancel, err := Start(context.Background(), config.RetentionConfig{Enabled: false})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	cancel()
}

func TestStartRejectsBadCron(t *testing.T) {
	openTemp(t)
	_, err := Start(context.Background(), config.RetentionConfig{Enabled: true, Cron: "not a cron"})
	if err == nil {
		t.Fatalf("expected invalid cron error")
	}
}
