package mediacache

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "media.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLookupMissing(t *testing.T) {
	store := openTestStore(t)
	path, err := store.Lookup(context.Background(), "video.mkv", KindAudio, 1, 2)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if path != "" {
		t.Fatalf("expected empty path, got %q", path)
	}
}

func TestRecordAndLookup(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "video.mkv", KindAudio, 1.5, 4.25, "clip.mp3"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	path, err := store.Lookup(ctx, "video.mkv", KindAudio, 1.5, 4.25)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if path != "clip.mp3" {
		t.Fatalf("path = %q, want clip.mp3", path)
	}

	// Same key, different kind.
	path, err = store.Lookup(ctx, "video.mkv", KindImage, 1.5, 4.25)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if path != "" {
		t.Fatalf("kind leaked across lookups: %q", path)
	}
}

func TestRecordUpserts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, "video.mkv", KindImage, 3, 3, "old.jpg"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "video.mkv", KindImage, 3, 3, "new.jpg"); err != nil {
		t.Fatalf("Record again: %v", err)
	}
	path, err := store.Lookup(ctx, "video.mkv", KindImage, 3, 3)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if path != "new.jpg" {
		t.Fatalf("path = %q, want new.jpg", path)
	}
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "media.db")
	ctx := context.Background()

	store, err := Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(ctx, "v.mkv", KindAudio, 0, 1, "a.mp3"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	store, err = Open(ctx, dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()
	path, err := store.Lookup(ctx, "v.mkv", KindAudio, 0, 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if path != "a.mp3" {
		t.Fatalf("path = %q after reopen", path)
	}
}
