package search

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jward/navigator/internal/docstore"
	"github.com/jward/navigator/internal/indexer"
)

func newTestStore(t *testing.T, files map[string]string) (*docstore.Store, string) {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	store, err := docstore.Open(filepath.Join(t.TempDir(), "idx"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	_, err = indexer.Index(context.Background(), root, store, map[string]string{}, 0, 0)
	require.NoError(t, err)
	return store, root
}

func TestTextSearchCaseSensitive(t *testing.T) {
	store, root := newTestStore(t, map[string]string{
		"main.go": "package main\n\nfunc Greet() {\n\tprintln(\"Hello\")\n}\n",
	})
	s := New(store)

	results, err := s.TextSearch("Hello", true)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	found := false
	for _, r := range results {
		if r.Path == filepath.Join(root, "main.go") {
			found = true
			require.Contains(t, r.Context, "Hello")
		}
	}
	require.True(t, found, "expected a match in main.go, got %+v", results)
}

func TestTextSearchCaseInsensitive(t *testing.T) {
	store, root := newTestStore(t, map[string]string{
		"main.go": "package main\n\nfunc Greet() {\n\tprintln(\"HELLO\")\n}\n",
	})
	s := New(store)

	results, err := s.TextSearch("hello", false)
	require.NoError(t, err)

	found := false
	for _, r := range results {
		if r.Path == filepath.Join(root, "main.go") {
			found = true
		}
	}
	require.True(t, found, "expected a case-insensitive match, got %+v", results)
}

// TestTextSearchFindsFirstLine is spec.md §8 Seed Scenario S4: searching
// "hello" case-insensitively in "Hello\nhello\n" must report hits on both
// line 1 and line 2 — the line-pairing bug the original's windows(2)
// enumeration had (which can only ever report line 2 onward) must not
// resurface here.
func TestTextSearchFindsFirstLine(t *testing.T) {
	store, root := newTestStore(t, map[string]string{
		"greeting.go": "Hello\nhello\n",
	})
	s := New(store)

	results, err := s.TextSearch("hello", false)
	require.NoError(t, err)

	path := filepath.Join(root, "greeting.go")
	var lines []int
	for _, r := range results {
		if r.Path == path {
			lines = append(lines, r.LineNumber)
		}
	}
	require.Contains(t, lines, 1, "expected a hit on line 1, got %+v", results)
	require.Contains(t, lines, 2, "expected a hit on line 2, got %+v", results)
}

// TestTextSearchSingleLineFile covers a file with no second line at all —
// the buggy pairing could only ever examine a line's trailing newline in
// this case and would never find content on the file's only line.
func TestTextSearchSingleLineFile(t *testing.T) {
	store, root := newTestStore(t, map[string]string{
		"one.go": "marker\n",
	})
	s := New(store)

	results, err := s.TextSearch("marker", true)
	require.NoError(t, err)

	path := filepath.Join(root, "one.go")
	found := false
	for _, r := range results {
		if r.Path == path && r.LineNumber == 1 {
			found = true
		}
	}
	require.True(t, found, "expected a line-1 hit in a single-line file, got %+v", results)
}

func TestTextSearchContextClampedAtFileStart(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		"main.go": "package main\n\nfunc marker() {}\n",
	})
	s := New(store)

	results, err := s.TextSearch("marker", true)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	require.NotPanics(t, func() {
		for _, r := range results {
			_ = r.Context
		}
	})
}

func TestLineWordToByteRange(t *testing.T) {
	content := "func add(a, b int) int {\n\treturn a + b\n}\n"
	lineEndIndices := []uint32{24, 38, 40}

	start, end, err := LineWordToByteRange(content, lineEndIndices, 1, 5, 8)
	require.NoError(t, err)
	require.Equal(t, "add", content[start:end])
}

func TestLineWordToByteRangeInvalidLine(t *testing.T) {
	content := "a\nb\n"
	lineEndIndices := []uint32{1, 3}

	_, _, err := LineWordToByteRange(content, lineEndIndices, 0, 0, 1)
	require.Error(t, err)

	_, _, err = LineWordToByteRange(content, lineEndIndices, 5, 0, 1)
	require.Error(t, err)
}

func TestLineWordToByteRangeInvalidWordIndices(t *testing.T) {
	content := "abc\n"
	lineEndIndices := []uint32{3}

	_, _, err := LineWordToByteRange(content, lineEndIndices, 1, 2, 1)
	require.Error(t, err)

	_, _, err = LineWordToByteRange(content, lineEndIndices, 1, 0, 99)
	require.Error(t, err)
}

func TestHoverableRangesForKnownFile(t *testing.T) {
	store, root := newTestStore(t, map[string]string{
		"main.go": "package main\n\nfunc add(a, b int) int {\n\treturn a + b\n}\n",
	})
	s := New(store)

	ranges, err := s.HoverableRanges(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	require.NotEmpty(t, ranges)
}

func TestHoverableRangesUnknownFile(t *testing.T) {
	store, _ := newTestStore(t, map[string]string{
		"main.go": "package main\n",
	})
	s := New(store)

	_, err := s.HoverableRanges("does/not/exist.go")
	require.Error(t, err)
}
