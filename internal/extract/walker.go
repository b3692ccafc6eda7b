package extract

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Parse builds a ScopeGraph for src using the tree-sitter grammar for lang.
// A lang with no wired grammar yields an empty graph and no error. The
// hoverable range set is derived from the returned graph by HoverableRanges.
func Parse(ctx context.Context, src []byte, lang string) (*ScopeGraph, error) {
	grammar, ok := grammarFor(lang)
	if !ok {
		return &ScopeGraph{}, nil
	}
	table, ok := langTables[lang]
	if !ok {
		return &ScopeGraph{}, nil
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("extract: parse %s: %w", lang, err)
	}
	defer tree.Close()

	w := &walker{src: src, table: table, graph: &ScopeGraph{}}
	w.walk(tree.RootNode(), -1, false)
	w.resolve()
	return w.graph, nil
}

type walker struct {
	src   []byte
	table *langTable
	graph *ScopeGraph
}

func rangeOf(n *sitter.Node) TextRange {
	start, end := n.StartPoint(), n.EndPoint()
	return TextRange{
		Start: Position{Line: int(start.Row), Column: int(start.Column), Byte: int(n.StartByte())},
		End:   Position{Line: int(end.Row), Column: int(end.Column), Byte: int(n.EndByte())},
	}
}

// walk descends node's subtree. scopeID is the innermost enclosing scope
// already pushed by an ancestor. consumedAsName, when true, means this node
// was already emitted as a definition's name by the caller and should not
// also be treated as a reference.
func (w *walker) walk(n *sitter.Node, scopeID int, consumedAsName bool) {
	if n == nil {
		return
	}
	typ := n.Type()
	spec, known := w.table.nodes[typ]

	childScope := scopeID
	consumedRanges := map[[2]int]bool{}

	switch {
	case known && spec.Kind != "":
		kind := spec.Kind
		if typ == "type_spec" {
			if t := n.ChildByFieldName("type"); t != nil && t.Type() == "interface_type" {
				kind = KindInterface
			}
		}
		for _, nameNode := range fieldOrFallback(n, spec.NameField) {
			def := Definition{
				ID:      len(w.graph.Definitions),
				ScopeID: scopeID,
				Kind:    kind,
				Name:    nameNode.Content(w.src),
				Range:   rangeOf(nameNode),
			}
			w.graph.Definitions = append(w.graph.Definitions, def)
			if int(nameNode.StartByte()) == int(n.StartByte()) && int(nameNode.EndByte()) == int(n.EndByte()) {
				consumedAsName = true
			} else {
				consumedRanges[[2]int{int(nameNode.StartByte()), int(nameNode.EndByte())}] = true
			}
		}
	case known && spec.DirectChildKind != "":
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && w.table.identifiers[c.Type()] {
				w.graph.Definitions = append(w.graph.Definitions, Definition{
					ID:      len(w.graph.Definitions),
					ScopeID: scopeID,
					Kind:    spec.DirectChildKind,
					Name:    c.Content(w.src),
					Range:   rangeOf(c),
				})
				consumedRanges[[2]int{int(c.StartByte()), int(c.EndByte())}] = true
			}
		}
	case !known && !consumedAsName && w.table.identifiers[typ]:
		w.graph.References = append(w.graph.References, Reference{
			ID:            len(w.graph.References),
			ScopeID:       scopeID,
			Name:          n.Content(w.src),
			Range:         rangeOf(n),
			ResolvedDefID: -1,
		})
	}

	if known && spec.OpensScope {
		childScope = len(w.graph.Scopes)
		w.graph.Scopes = append(w.graph.Scopes, Scope{
			ID:       childScope,
			ParentID: scopeID,
			Kind:     spec.ScopeKind,
			Range:    rangeOf(n),
		})
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		consumed := consumedRanges[[2]int{int(c.StartByte()), int(c.EndByte())}]
		w.walk(c, childScope, consumed)
	}
}

// fieldOrFallback returns every child stored under the named field (Go's
// "a, b int" carries one name field per identifier); when field is empty or
// absent (C/C++ declarators bury the name under a pointer/array declarator
// with no named field), it falls back to the first identifier-typed
// descendant found via a shallow search.
func fieldOrFallback(n *sitter.Node, field string) []*sitter.Node {
	var out []*sitter.Node
	if field != "" {
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && n.FieldNameForChild(i) == field {
				out = append(out, c)
			}
		}
	}
	if len(out) == 0 {
		if f := firstIdentifierDescendant(n, 3); f != nil {
			out = append(out, f)
		}
	}
	return out
}

func firstIdentifierDescendant(n *sitter.Node, depth int) *sitter.Node {
	if depth == 0 || n == nil {
		return nil
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "identifier", "field_identifier", "type_identifier":
			return c
		}
		if f := firstIdentifierDescendant(c, depth-1); f != nil {
			return f
		}
	}
	return nil
}

// resolve walks every Reference's enclosing scope chain outward, binding it
// to the nearest Definition sharing its name. Unresolved references keep
// ResolvedDefID == -1, which is not an error: they may be builtins, imports
// resolved elsewhere, or genuinely cross-document (see internal/navcontext).
func (w *walker) resolve() {
	defsByScope := make(map[int][]int) // scopeID -> indices into Definitions
	for i, d := range w.graph.Definitions {
		defsByScope[d.ScopeID] = append(defsByScope[d.ScopeID], i)
	}
	parentOf := make(map[int]int, len(w.graph.Scopes))
	for _, s := range w.graph.Scopes {
		parentOf[s.ID] = s.ParentID
	}

	for i := range w.graph.References {
		ref := &w.graph.References[i]
		scope := ref.ScopeID
		for scope != -1 {
			found := false
			for _, di := range defsByScope[scope] {
				if w.graph.Definitions[di].Name == ref.Name {
					ref.ResolvedDefID = w.graph.Definitions[di].ID
					found = true
					break
				}
			}
			if found {
				break
			}
			parent, ok := parentOf[scope]
			if !ok {
				break
			}
			scope = parent
		}
	}
}
