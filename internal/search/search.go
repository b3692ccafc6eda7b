// Package search implements text, fuzzy, and hoverable-range queries over
// an internal/docstore.Store, plus the line/byte conversion token-info and
// code navigation build on.
package search

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/jward/navigator/internal/docstore"
	"github.com/jward/navigator/internal/extract"
	"github.com/jward/navigator/internal/lang"
)

const topDocsLimit = 10

// Result is one match line, with enough surrounding context to display
// without re-reading the source file.
type Result struct {
	Path       string
	LineNumber int
	Column     int
	Context    string
}

// Searcher runs read-only queries against a docstore.Store.
type Searcher struct {
	store *docstore.Store
}

// New wraps store for querying.
func New(store *docstore.Store) *Searcher {
	return &Searcher{store: store}
}

// TextSearch finds query_str as a literal substring on individual lines,
// case-sensitive or not depending on caseSensitive. The field searched and
// the query string's case are chosen together: content/as-is, or
// content_insensitive/lowercased, matching the original's field-per-case
// selection so a case-insensitive search never has to lowercase the whole
// document at query time.
func (s *Searcher) TextSearch(queryStr string, caseSensitive bool) ([]Result, error) {
	field := "content"
	needle := queryStr
	if !caseSensitive {
		field = "content_insensitive"
		needle = strings.ToLower(queryStr)
	}

	docs, err := s.store.SearchField(field, needle, topDocsLimit)
	if err != nil {
		return nil, fmt.Errorf("search: text search: %w", err)
	}

	var results []Result
	for _, doc := range docs {
		lineEndIndices, err := decodeLineEndIndices(doc)
		if err != nil {
			continue
		}
		hayField := doc.Content
		if !caseSensitive {
			hayField = doc.ContentInsensitive
		}
		results = append(results, scanLines(doc.Path, hayField, doc.Content, lineEndIndices, needle, textContextWindow)...)
	}
	return results, nil
}

// FuzzySearch finds query_str within maxDistance edits of some token in the
// content field, then — exactly as the original does — re-scans each
// matched document's lines for a literal substring match to report a
// location. A fuzzy hit whose matched term does not appear verbatim on any
// single line (e.g. it matched a token tantivy/bleve's analyzer split
// across token boundaries) yields no Result; this is the original's own
// behavior, not a gap introduced here — recorded as Open Question 2 in
// DESIGN.md.
func (s *Searcher) FuzzySearch(queryStr string, maxDistance int) ([]Result, error) {
	docs, err := s.store.FuzzyField("content", queryStr, maxDistance, topDocsLimit)
	if err != nil {
		return nil, fmt.Errorf("search: fuzzy search: %w", err)
	}

	var results []Result
	for _, doc := range docs {
		lineEndIndices, err := decodeLineEndIndices(doc)
		if err != nil {
			continue
		}
		results = append(results, scanLines(doc.Path, doc.Content, doc.Content, lineEndIndices, queryStr, fuzzyContextWindow)...)
	}
	return results, nil
}

type contextWindowFunc func(lineNumber, total int) (start, end int)

// textContextWindow centers a 7-line window (3 before, 3 after) on the
// matched line, clamped to the document's bounds on both sides. lineNumber
// and the returned bounds are all 1-based line numbers.
func textContextWindow(lineNumber, total int) (int, int) {
	start := lineNumber - 3
	if start < 1 {
		start = 1
	}
	end := lineNumber + 3
	if end > total {
		end = total
	}
	return start, end
}

// fuzzyContextWindow looks only at the two lines immediately preceding the
// match, matching the original fuzzy_search's (distinct, narrower) window —
// clamped so it never underflows at the top of a file.
func fuzzyContextWindow(lineNumber, total int) (int, int) {
	start := lineNumber - 2
	if start < 1 {
		start = 1
	}
	end := lineNumber - 1
	if end < 1 {
		end = 1
	}
	if end > total {
		end = total
	}
	if end < start {
		end = start
	}
	return start, end
}

// lineBytes returns the byte range of 1-based line n within content, using
// the same boundary arithmetic as LineWordToByteRange: line n starts right
// after the (n-1)th newline (or at 0, for the first line) and ends at the
// nth entry in lineEndIndices.
func lineBytes(lineEndIndices []uint32, n int) (start, end int, ok bool) {
	if n < 1 || n > len(lineEndIndices) {
		return 0, 0, false
	}
	start = 0
	if n > 1 {
		start = int(lineEndIndices[n-2]) + 1
	}
	end = int(lineEndIndices[n-1])
	return start, end, true
}

// scanLines walks every line in a document (line boundaries from
// lineEndIndices) looking for needle as a literal substring in hay, the
// field actually matched against; displayContent supplies the text used to
// build the surrounding context (always the original-case content, even
// for a case-insensitive hit). Line numbers are 1-based and index directly
// into lineEndIndices via lineBytes, fixing the original's off-by-one line
// pairing (spec.md Design Note 4) rather than reproducing it.
func scanLines(path, hay, displayContent string, lineEndIndices []uint32, needle string, window contextWindowFunc) []Result {
	var out []Result
	for n := 1; n <= len(lineEndIndices); n++ {
		start, end, ok := lineBytes(lineEndIndices, n)
		if !ok || end > len(hay) || start > end {
			continue
		}
		line := hay[start:end]
		idx := strings.Index(line, needle)
		if idx < 0 {
			continue
		}
		ctxStart, ctxEnd := window(n, len(lineEndIndices))
		out = append(out, Result{
			Path:       path,
			LineNumber: n,
			Column:     idx,
			Context:    buildContext(displayContent, lineEndIndices, ctxStart, ctxEnd),
		})
	}
	return out
}

// buildContext joins lines start..end (1-based, inclusive) of content.
func buildContext(content string, lineEndIndices []uint32, start, end int) string {
	var lines []string
	for n := start; n <= end; n++ {
		s, e, ok := lineBytes(lineEndIndices, n)
		if !ok || e > len(content) || s > e {
			continue
		}
		lines = append(lines, content[s:e])
	}
	return strings.Join(lines, "\n")
}

func decodeLineEndIndices(doc docstore.Document) ([]uint32, error) {
	out, err := DecodeLineEndIndices(doc.LineEndIndices)
	if err != nil {
		return nil, fmt.Errorf("search: decode line_end_indices for %s: %w", doc.Path, err)
	}
	return out, nil
}

// DecodeLineEndIndices reverses the base64/little-endian-uint32 encoding
// internal/indexer writes for a document's line_end_indices field.
func DecodeLineEndIndices(encoded string) ([]uint32, error) {
	raw, err := docstore.DecodeBlob(encoded)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("malformed line_end_indices")
	}
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return out, nil
}

// LineWordToByteRange converts a 1-based line number and a pair of
// character offsets within that line into a byte range within content,
// using lineEndIndices the same way decodeLineEndIndices produces them.
// Character offsets, not byte offsets, because a caller (an editor) counts
// columns in runes.
func LineWordToByteRange(content string, lineEndIndices []uint32, lineNumber, wordStartIdx, wordEndIdx int) (int, int, error) {
	if lineNumber < 1 || lineNumber > len(lineEndIndices) {
		return 0, 0, fmt.Errorf("search: invalid line number %d", lineNumber)
	}

	startOfLine := 0
	if lineNumber > 1 {
		startOfLine = int(lineEndIndices[lineNumber-2]) + 1
	}
	endOfLine := int(lineEndIndices[lineNumber-1])
	if startOfLine > len(content) || endOfLine > len(content) || startOfLine > endOfLine {
		return 0, 0, fmt.Errorf("search: line %d out of bounds", lineNumber)
	}
	line := content[startOfLine:endOfLine]

	runeCount := 0
	startByte, endByte := -1, -1
	byteOffset := 0
	for _, r := range line {
		if runeCount == wordStartIdx {
			startByte = byteOffset
		}
		if runeCount == wordEndIdx {
			endByte = byteOffset
		}
		byteOffset += runeLen(r)
		runeCount++
	}
	if runeCount == wordEndIdx {
		endByte = byteOffset
	}
	if wordStartIdx >= wordEndIdx || wordEndIdx > runeCount || startByte < 0 || endByte < 0 {
		return 0, 0, fmt.Errorf("search: invalid word indices [%d,%d) on line %d", wordStartIdx, wordEndIdx, lineNumber)
	}

	return startOfLine + startByte, startOfLine + endByte, nil
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// HoverableRanges returns every navigable range in the document stored at
// path.
func (s *Searcher) HoverableRanges(path string) ([]extract.TextRange, error) {
	doc, ok, err := s.store.DocumentByPath(path)
	if err != nil {
		return nil, fmt.Errorf("search: load %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("search: document not found: %s", path)
	}
	blob, err := docstore.DecodeBlob(doc.SymbolLocations)
	if err != nil {
		return nil, fmt.Errorf("search: decode symbol_locations for %s: %w", path, err)
	}
	graph, err := extract.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("search: decode scope graph for %s: %w", path, err)
	}
	return extract.HoverableRanges(graph), nil
}

// LanguageFor is the language-detection entry point token-info and
// hoverable-range lookups use to decide which same-language documents to
// scan, grounded on the original's Searcher::detect_language.
func LanguageFor(path string) string {
	return lang.ForPath(path)
}
