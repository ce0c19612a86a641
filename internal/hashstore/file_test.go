package hashstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "hashes.txt"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	seen, err := store.Has(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Has on missing file: %v", err)
	}
	if seen {
		t.Fatalf("missing file must mean no hashes recorded")
	}
}

func TestFileStoreRecordAndHas(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "hashes.txt"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Record(ctx, "hash-1", "report.pdf"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	seen, err := store.Has(ctx, "hash-1")
	if err != nil || !seen {
		t.Fatalf("expected hash-1 recorded, seen=%v err=%v", seen, err)
	}
	seen, _ = store.Has(ctx, "hash-2")
	if seen {
		t.Fatalf("hash-2 was never recorded")
	}
}

// The dedup key is the content hash, not the filename: the same filename
// with different content yields two entries.
func TestFileStoreSameFilenameDifferentContent(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "hashes.txt"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := store.Record(ctx, "hash-a", "report.pdf"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Record(ctx, "hash-b", "report.pdf"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
}

func TestFileStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hashes.txt")
	content := "\n\nhash-1\treport.pdf\n\t\nhash-2\tother.pdf\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected malformed lines skipped, got %d entries", len(entries))
	}
	if entries[0].Hash != "hash-1" || entries[0].Filename != "report.pdf" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestFileStoreUnreadableDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	// point the store at a directory: reads fail, Has must still answer
	store, err := NewFileStore(filepath.Join(dir, "sub"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	seen, err := store.Has(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Has must not error on unreadable store: %v", err)
	}
	if seen {
		t.Fatalf("unreadable store must behave as empty")
	}
}
