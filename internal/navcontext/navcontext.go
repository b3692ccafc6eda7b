// Package navcontext resolves a source token — a (document, byte range)
// pair — to every definition and reference across same-language documents
// that refers to the same logical identifier. There is no project-wide
// symbol table: documents are tied together only by matching surface text,
// which over-approximates (distinct identifiers that happen to share a
// name collide) in exchange for never requiring whole-project type
// resolution.
package navcontext

import (
	"fmt"
	"sort"

	"github.com/jward/navigator/internal/extract"
)

// OccurrenceKind distinguishes a definition site from a use site.
type OccurrenceKind int

const (
	KindDefinition OccurrenceKind = iota
	KindReference
)

// Token identifies a span of source the caller wants to navigate from.
type Token struct {
	Path      string
	StartByte int
	EndByte   int
}

// Occurrence is one definition or reference site surfaced for a token.
type Occurrence struct {
	Range TextRange
	Kind  OccurrenceKind
}

// TextRange is the presentation-facing alias of extract.TextRange — kept
// distinct so callers of this package never need to import internal/extract
// directly.
type TextRange = extract.TextRange

// FileSymbols groups every matched Occurrence in one file, in start-byte
// order.
type FileSymbols struct {
	File string
	Data []Occurrence
}

// Document is the per-file input navcontext needs: its path and its scope
// graph, whose definition/reference names supply the surface text compared
// across documents.
type Document struct {
	Path  string
	Graph *extract.ScopeGraph
}

// TokenInfo locates the identifier named by token within allDocs[sourceIdx]
// and returns every definition/reference across allDocs that shares its
// surface text, grouped by file — source document first, others in the
// order they appear in allDocs. Ranges are zero-based; callers apply any
// presentation-layer line adjustment themselves.
func TokenInfo(allDocs []Document, sourceIdx int, token Token) ([]FileSymbols, error) {
	if sourceIdx < 0 || sourceIdx >= len(allDocs) {
		return nil, fmt.Errorf("navcontext: source document index %d out of range", sourceIdx)
	}
	source := allDocs[sourceIdx]
	if source.Graph == nil {
		return nil, fmt.Errorf("navcontext: source document %s has no scope graph", source.Path)
	}

	identifier, def, ok := locate(source.Graph, token.StartByte, token.EndByte)
	if !ok {
		return nil, fmt.Errorf("navcontext: no definition or reference at [%d,%d) in %s", token.StartByte, token.EndByte, source.Path)
	}

	var groups []FileSymbols

	localOccs := localPass(source.Graph, identifier, def)
	if len(localOccs) > 0 {
		groups = append(groups, FileSymbols{File: source.Path, Data: sortOccurrences(localOccs)})
	}

	for i, doc := range allDocs {
		if i == sourceIdx || doc.Graph == nil {
			continue
		}
		occs := surfaceMatches(doc.Graph, identifier)
		if len(occs) > 0 {
			groups = append(groups, FileSymbols{File: doc.Path, Data: sortOccurrences(occs)})
		}
	}

	return groups, nil
}

// locate finds the Definition or Reference in graph whose range exactly
// equals [startByte, endByte), returning its surface-identifying key (the
// Definition it denotes, if any — nil for an unresolved/cross-document-only
// reference) and the identifier name.
func locate(graph *extract.ScopeGraph, startByte, endByte int) (name string, def *extract.Definition, ok bool) {
	for i := range graph.Definitions {
		d := &graph.Definitions[i]
		if d.Range.Start.Byte == startByte && d.Range.End.Byte == endByte {
			return d.Name, d, true
		}
	}
	for i := range graph.References {
		r := &graph.References[i]
		if r.Range.Start.Byte == startByte && r.Range.End.Byte == endByte {
			if resolved, found := graph.DefinitionByID(r.ResolvedDefID); found {
				return r.Name, resolved, true
			}
			return r.Name, nil, true
		}
	}
	return "", nil, false
}

// localPass collects, within the source document, the definition (if
// known) plus every local reference resolving to it; or, when no local
// definition is known, every reference in the document sharing the
// identifier's surface text.
func localPass(graph *extract.ScopeGraph, identifier string, def *extract.Definition) []Occurrence {
	var out []Occurrence
	if def != nil {
		out = append(out, Occurrence{Range: def.Range, Kind: KindDefinition})
		for _, r := range graph.References {
			if r.ResolvedDefID == def.ID {
				out = append(out, Occurrence{Range: r.Range, Kind: KindReference})
			}
		}
		return out
	}
	for _, r := range graph.References {
		if r.Name == identifier {
			out = append(out, Occurrence{Range: r.Range, Kind: KindReference})
		}
	}
	return out
}

// surfaceMatches finds every definition and reference in graph whose
// surface text equals identifier, classified by scope-graph kind.
func surfaceMatches(graph *extract.ScopeGraph, identifier string) []Occurrence {
	var out []Occurrence
	for _, d := range graph.Definitions {
		if d.Name == identifier {
			out = append(out, Occurrence{Range: d.Range, Kind: KindDefinition})
		}
	}
	for _, r := range graph.References {
		if r.Name == identifier {
			out = append(out, Occurrence{Range: r.Range, Kind: KindReference})
		}
	}
	return out
}

func sortOccurrences(occs []Occurrence) []Occurrence {
	sort.SliceStable(occs, func(i, j int) bool {
		return occs[i].Range.Start.Byte < occs[j].Range.Start.Byte
	})
	return occs
}
