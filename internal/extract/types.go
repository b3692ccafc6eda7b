// Package extract builds a per-file scope graph from source bytes using
// tree-sitter. The graph records lexical scopes, the definitions and
// references they contain, and local (same-file) resolution edges between
// references and the definitions they refer to.
package extract

import "sort"

// Kind classifies a Definition.
type Kind string

const (
	KindFunction  Kind = "function"
	KindMethod    Kind = "method"
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindInterface Kind = "interface"
	KindVariable  Kind = "variable"
	KindConstant  Kind = "constant"
	KindParameter Kind = "parameter"
	KindField     Kind = "field"
	KindImport    Kind = "import"
)

// Position is a zero-based source location.
type Position struct {
	Line   int
	Column int
	Byte   int
}

// TextRange is a half-open [Start, End) byte range with line/column markers
// at both ends, all zero-based.
type TextRange struct {
	Start Position
	End   Position
}

// Len reports the byte length of the range.
func (r TextRange) Len() int { return r.End.Byte - r.Start.Byte }

// Scope is a lexical scope node in the graph. Scopes form a tree via
// ParentID; -1 marks the file-level root scope.
type Scope struct {
	ID       int
	ParentID int
	Kind     string // "module", "class", "function", "block"
	Range    TextRange
}

// Definition is an identifier-bearing declaration attached to a scope.
type Definition struct {
	ID      int
	ScopeID int
	Kind    Kind
	Name    string
	Range   TextRange
}

// Reference is an identifier use attached to a scope. ResolvedDefID is the
// ID of the local Definition it resolves to, or -1 if unresolved (dangling)
// or resolved only by cross-document surface-text equality.
type Reference struct {
	ID             int
	ScopeID        int
	Name           string
	Range          TextRange
	ResolvedDefID  int
}

// ScopeGraph is the full per-file structure produced by Parse.
type ScopeGraph struct {
	Scopes      []Scope
	Definitions []Definition
	References  []Reference
}

// IsEmpty reports whether the graph carries no scopes, definitions, or
// references — the sentinel state substituted when extraction fails.
func (g *ScopeGraph) IsEmpty() bool {
	return g == nil || (len(g.Scopes) == 0 && len(g.Definitions) == 0 && len(g.References) == 0)
}

// DefinitionByID looks up a Definition by ID, or returns (nil, false).
func (g *ScopeGraph) DefinitionByID(id int) (*Definition, bool) {
	for i := range g.Definitions {
		if g.Definitions[i].ID == id {
			return &g.Definitions[i], true
		}
	}
	return nil, false
}

// Occurrence is a shared view over a Definition or a Reference, used for
// building the flattened "symbols" list and by OccurrenceAt.
type Occurrence struct {
	Range     TextRange
	Reference bool
}

// List returns every definition and reference in the graph as Occurrences,
// sorted by start byte. Used by the indexer to derive the deduplicated
// symbols field and by callers that want a flat occurrence stream.
func (g *ScopeGraph) List() []Occurrence {
	if g == nil {
		return nil
	}
	out := make([]Occurrence, 0, len(g.Definitions)+len(g.References))
	for _, d := range g.Definitions {
		out = append(out, Occurrence{Range: d.Range})
	}
	for _, r := range g.References {
		out = append(out, Occurrence{Range: r.Range, Reference: true})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Byte < out[j].Range.Start.Byte })
	return out
}
