package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/jward/navigator/internal/docstore"
)

func TestIndexSkipsUnchangedFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\nfunc main() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := docstore.Open(filepath.Join(t.TempDir(), "idx"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	stats, err := Index(context.Background(), root, store, map[string]string{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Indexed != 1 {
		t.Fatalf("expected 1 file indexed, got %d", stats.Indexed)
	}

	doc, ok, err := store.DocumentByPath(filepath.Join(root, "main.go"))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected document for main.go")
	}

	existing, err := store.ExistingHashes()
	if err != nil {
		t.Fatal(err)
	}
	if existing[doc.Path] != doc.Hash {
		t.Fatalf("existing hash snapshot mismatch: %q vs %q", existing[doc.Path], doc.Hash)
	}

	stats2, err := Index(context.Background(), root, store, existing, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats2.Unchanged != 1 || stats2.Indexed != 0 {
		t.Fatalf("expected unchanged rerun, got %+v", stats2)
	}
}

func TestIndexFlushesInMultipleBatchesUnderSmallBufferBudget(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "f"+string(rune('a'+i))+".go")
		if err := os.WriteFile(name, []byte("package main\nfunc main() {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := docstore.Open(filepath.Join(t.TempDir(), "idx"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	// One worker, a buffer budget smaller than a single file's content,
	// forcing a flush after every document instead of one batch at the end.
	stats, err := Index(context.Background(), root, store, map[string]string{}, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Indexed != 5 {
		t.Fatalf("expected 5 files indexed, got %+v", stats)
	}

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "f"+string(rune('a'+i))+".go")
		if _, ok, err := store.DocumentByPath(name); err != nil || !ok {
			t.Fatalf("expected %s to be indexed: ok=%v err=%v", name, ok, err)
		}
	}
}

func TestIndexSkipsPlaintextAndIgnored(t *testing.T) {
	root := t.TempDir()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(os.WriteFile(filepath.Join(root, ".gitignore"), []byte("ignored.go\n"), 0o644))
	must(os.WriteFile(filepath.Join(root, "README.md"), []byte("hello"), 0o644))
	must(os.WriteFile(filepath.Join(root, "ignored.go"), []byte("package main"), 0o644))
	must(os.WriteFile(filepath.Join(root, "kept.go"), []byte("package main"), 0o644))

	store, err := docstore.Open(filepath.Join(t.TempDir(), "idx"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	stats, err := Index(context.Background(), root, store, map[string]string{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Indexed != 1 {
		t.Fatalf("expected exactly 1 file indexed (kept.go), got %+v", stats)
	}
}
