// Package indexer walks a repository tree, extracts each changed file's
// scope graph, and commits the result into an internal/docstore.Store.
package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/jward/navigator/internal/docstore"
	"github.com/jward/navigator/internal/extract"
	"github.com/jward/navigator/internal/ignore"
	"github.com/jward/navigator/internal/lang"
)

// skipDirs are never descended into regardless of .gitignore content —
// their contents are never source the caller wrote.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Stats summarizes one Index run.
type Stats struct {
	Walked    int
	Indexed   int
	Skipped   int
	Unchanged int
}

// defaultBufferSizePerThread mirrors the original tantivy writer's default
// per-thread memory budget, used when the caller passes bufferSizePerThread
// <= 0.
const defaultBufferSizePerThread = 15_000_000

// Index walks root, indexing every changed, supported-language file into
// store. existingHashes is the path -> content-hash snapshot taken before
// this run started (internal/docstore.Store.ExistingHashes), frozen for
// the duration of the walk so concurrent re-reads never see a file this
// same run already rewrote.
//
// numWorkers bounds the extraction worker pool (<= 0 picks runtime.NumCPU,
// clamped to the number of files actually changed). bufferSizePerThread
// bounds how many content bytes accumulate in a single batch before it is
// flushed to store — the aggregate budget across the whole worker pool is
// numWorkers * bufferSizePerThread, mirroring the original tantivy writer's
// per-thread memory budget even though bleve has no literal equivalent
// knob; see DESIGN.md.
func Index(ctx context.Context, root string, store *docstore.Store, existingHashes map[string]string, numWorkers, bufferSizePerThread int) (Stats, error) {
	var stats Stats

	ign, err := ignore.Load(root)
	if err != nil {
		return stats, fmt.Errorf("indexer: load gitignore: %w", err)
	}

	paths, err := walk(root, ign)
	if err != nil {
		return stats, fmt.Errorf("indexer: walk: %w", err)
	}
	stats.Walked = len(paths)

	// Phase A: serial prepare — hash check, skip decision.
	var items []workItem
	for _, path := range paths {
		item, skip, err := prepareFile(path, existingHashes)
		if err != nil {
			return stats, fmt.Errorf("indexer: prepare %s: %w", path, err)
		}
		if skip {
			if item.unchanged {
				stats.Unchanged++
			} else {
				stats.Skipped++
			}
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return stats, nil
	}

	// Phase B: parallel extraction — each worker only touches its own
	// workItem, so no shared state needs protecting beyond the errgroup's
	// own bookkeeping.
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(items) {
		numWorkers = len(items)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)

	docs := make([]docstore.Document, len(items))
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			doc, err := extractFile(gctx, item)
			if err != nil {
				return fmt.Errorf("extract %s: %w", item.path, err)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	// Phase C: commit, flushing the batch every time its accumulated
	// content size crosses the aggregate buffer budget instead of holding
	// every document in memory for a single commit at the end.
	if bufferSizePerThread <= 0 {
		bufferSizePerThread = defaultBufferSizePerThread
	}
	bufferBudget := bufferSizePerThread * numWorkers

	batch := store.NewBatch()
	var pending int
	flush := func() error {
		if pending == 0 {
			return nil
		}
		if err := store.CommitBatch(batch); err != nil {
			return fmt.Errorf("indexer: commit: %w", err)
		}
		batch = store.NewBatch()
		pending = 0
		return nil
	}
	for i := range docs {
		if err := batch.Index(docs[i].Path, docs[i]); err != nil {
			return stats, fmt.Errorf("indexer: batch index %s: %w", docs[i].Path, err)
		}
		pending += len(docs[i].Content)
		if pending >= bufferBudget {
			if err := flush(); err != nil {
				return stats, err
			}
		}
	}
	if err := flush(); err != nil {
		return stats, err
	}
	stats.Indexed = len(docs)
	return stats, nil
}

type workItem struct {
	path      string
	lang      string
	content   []byte
	hash      string
	unchanged bool
}

func prepareFile(path string, existing map[string]string) (workItem, bool, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = filepath.ToSlash(abs)
	}
	l := lang.ForPath(path)
	if l == lang.Plaintext {
		return workItem{}, true, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return workItem{}, false, fmt.Errorf("read: %w", err)
	}
	if !utf8.Valid(content) {
		return workItem{}, true, nil
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	if existingHash, ok := existing[path]; ok && existingHash == hash {
		return workItem{unchanged: true}, true, nil
	}

	return workItem{path: path, lang: l, content: content, hash: hash}, false, nil
}

func extractFile(ctx context.Context, item workItem) (docstore.Document, error) {
	graph, err := extract.Parse(ctx, item.content, item.lang)
	if err != nil {
		graph = &extract.ScopeGraph{}
	}

	contentStr := string(item.content)
	doc := docstore.Document{
		Path:               item.path,
		Content:            contentStr,
		ContentInsensitive: strings.ToLower(contentStr),
		SymbolLocations:    docstore.EncodeBlob(extract.Encode(graph)),
		LineEndIndices:     docstore.EncodeBlob(lineEndIndices(item.content)),
		Symbols:            flattenSymbols(contentStr, graph),
		Lang:               item.lang,
		Hash:               item.hash,
	}
	return doc, nil
}

// lineEndIndices returns the little-endian uint32 byte offset of every
// newline in content, followed by a final entry for content's total byte
// length — the layout internal/search uses to turn a 1-based line number
// into a byte range without rescanning the file.
func lineEndIndices(content []byte) []byte {
	var out []byte
	var buf [4]byte
	for i, b := range content {
		if b == '\n' {
			binary.LittleEndian.PutUint32(buf[:], uint32(i))
			out = append(out, buf[:]...)
		}
	}
	binary.LittleEndian.PutUint32(buf[:], uint32(len(content)))
	out = append(out, buf[:]...)
	return out
}

// flattenSymbols returns every distinct definition/reference surface text
// in the file, newline-joined, for the free-text "symbols" field.
func flattenSymbols(content string, graph *extract.ScopeGraph) string {
	seen := make(map[string]bool)
	var names []string
	for _, occ := range graph.List() {
		if occ.Range.Start.Byte < 0 || occ.Range.End.Byte > len(content) || occ.Range.Start.Byte >= occ.Range.End.Byte {
			continue
		}
		text := content[occ.Range.Start.Byte:occ.Range.End.Byte]
		if !seen[text] {
			seen[text] = true
			names = append(names, text)
		}
	}
	return strings.Join(names, "\n")
}

func walk(root string, ign *ignore.Resolver) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			if ign.Ignored(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if ign.Ignored(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
