// Package navigator is a per-repository code-navigation indexer and query
// engine: walk a source tree honoring nested ignore rules, extract a
// per-file scope graph with a language-aware syntactic extractor, persist
// the result in a full-text index, and answer text, fuzzy, hoverable-range,
// and token-info queries against it.
package navigator

import (
	"context"
	"fmt"
	"sync"

	"github.com/jward/navigator/internal/docstore"
	"github.com/jward/navigator/internal/extract"
	"github.com/jward/navigator/internal/indexer"
	"github.com/jward/navigator/internal/lang"
	"github.com/jward/navigator/internal/navcontext"
	"github.com/jward/navigator/internal/navigatorerr"
	"github.com/jward/navigator/internal/search"
)

// Session owns a docstore index and serializes writes against it. Multiple
// goroutines may call the read methods (TextSearch, FuzzySearch,
// HoverableRanges, TokenInfo) concurrently; Index acquires the session's
// single process-wide write lock.
type Session struct {
	store    *docstore.Store
	searcher *search.Searcher

	bufferSizePerThread int
	numThreads          int

	mu sync.Mutex
}

// Option configures a Session at Open time.
type Option func(*Session)

// WithBufferSize sets the per-thread indexing buffer size hint, mirroring
// the original's tantivy writer memory budget. bleve has no literal
// per-thread mmap buffer knob, so this additionally sizes how eagerly the
// indexer's worker pool batches documents — see DESIGN.md.
func WithBufferSize(bytes int) Option {
	return func(s *Session) { s.bufferSizePerThread = bytes }
}

// WithThreads sets the number of concurrent extraction workers Index uses.
func WithThreads(n int) Option {
	return func(s *Session) { s.numThreads = n }
}

// Open opens or creates the index at indexDir and returns a ready Session.
func Open(indexDir string, opts ...Option) (*Session, error) {
	if indexDir == "" {
		return nil, navigatorerr.Wrap(navigatorerr.KindInput, fmt.Errorf("index directory is required"))
	}

	store, err := docstore.Open(indexDir)
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindStore, err)
	}

	s := &Session{
		store:               store,
		searcher:            search.New(store),
		bufferSizePerThread: 15_000_000,
		numThreads:          4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close releases the session's index handle.
func (s *Session) Close() error {
	return s.store.Close()
}

// Index walks root and commits every changed, supported-language file to
// the index, holding the session's write lock for the duration.
func (s *Session) Index(ctx context.Context, root string) error {
	if root == "" {
		return navigatorerr.Wrap(navigatorerr.KindInput, fmt.Errorf("root directory is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.ExistingHashes()
	if err != nil {
		return navigatorerr.Wrap(navigatorerr.KindStore, err)
	}

	if _, err := indexer.Index(ctx, root, s.store, existing, s.numThreads, s.bufferSizePerThread); err != nil {
		return navigatorerr.Wrap(navigatorerr.KindIO, err)
	}
	return nil
}

// TextSearch runs a literal substring search over the indexed content.
func (s *Session) TextSearch(query string, caseSensitive bool) ([]search.Result, error) {
	results, err := s.searcher.TextSearch(query, caseSensitive)
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindQuery, err)
	}
	return results, nil
}

// FuzzySearch runs an edit-distance search over the indexed content.
func (s *Session) FuzzySearch(query string, maxDistance uint8) ([]search.Result, error) {
	results, err := s.searcher.FuzzySearch(query, int(maxDistance))
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindQuery, err)
	}
	return results, nil
}

// HoverableRanges returns every navigable range in the document at path,
// with 1-based line numbers (columns stay 0-based, as in TokenInfo).
func (s *Session) HoverableRanges(path string) ([]extract.TextRange, error) {
	ranges, err := s.searcher.HoverableRanges(path)
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindQuery, err)
	}
	for i := range ranges {
		ranges[i].Start.Line++
		ranges[i].End.Line++
	}
	return ranges, nil
}

// TokenInfo locates the identifier spanning [startCol, endCol) on the
// 1-based line of path and returns every definition/reference across
// same-language documents that shares its surface text. line is 1-based;
// startCol/endCol are 0-based character offsets within that line (the same
// half-open convention TextRange.Column uses elsewhere) — only line gets
// the 1-based treatment at this boundary, matching how a definition's own
// TextRange never adjusts column.
func (s *Session) TokenInfo(path string, line, startCol, endCol int) ([]navcontext.FileSymbols, error) {
	language := lang.ForPath(path)
	if language == lang.Plaintext {
		return nil, navigatorerr.Wrap(navigatorerr.KindInput, fmt.Errorf("%s has no supported language", path))
	}

	storedDocs, err := s.store.AllDocuments(language)
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindStore, err)
	}

	var docs []navcontext.Document
	sourceIdx := -1
	var sourceContent string
	var sourceLineEndIndices []uint32

	for _, doc := range storedDocs {
		blob, err := docstore.DecodeBlob(doc.SymbolLocations)
		if err != nil {
			continue
		}
		graph, err := extract.Decode(blob)
		if err != nil {
			continue
		}
		if doc.Path == path {
			sourceIdx = len(docs)
			sourceContent = doc.Content
			sourceLineEndIndices, err = search.DecodeLineEndIndices(doc.LineEndIndices)
			if err != nil {
				return nil, navigatorerr.Wrap(navigatorerr.KindStore, err)
			}
		}
		docs = append(docs, navcontext.Document{Path: doc.Path, Graph: graph})
	}

	if sourceIdx < 0 {
		return nil, navigatorerr.Wrap(navigatorerr.KindInput, fmt.Errorf("document not found: %s", path))
	}

	startByte, endByte, err := search.LineWordToByteRange(sourceContent, sourceLineEndIndices, line, startCol, endCol)
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindInput, err)
	}

	groups, err := navcontext.TokenInfo(docs, sourceIdx, navcontext.Token{Path: path, StartByte: startByte, EndByte: endByte})
	if err != nil {
		return nil, navigatorerr.Wrap(navigatorerr.KindQuery, err)
	}

	for gi := range groups {
		for oi := range groups[gi].Data {
			groups[gi].Data[oi].Range.Start.Line++
			groups[gi].Data[oi].Range.End.Line++
		}
	}
	return groups, nil
}
