package navcontext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/navigator/internal/extract"
)

func rng(startByte, endByte int) extract.TextRange {
	return extract.TextRange{
		Start: extract.Position{Byte: startByte},
		End:   extract.Position{Byte: endByte},
	}
}

// TestTokenInfoAcrossFiles reproduces spec.md's S5 scenario: a.py defines
// foo, b.py imports and calls it. token_info on the definition's range
// should surface both the definition in a.py and the reference in b.py.
func TestTokenInfoAcrossFiles(t *testing.T) {
	aGraph := &extract.ScopeGraph{
		Definitions: []extract.Definition{
			{ID: 0, ScopeID: 0, Kind: extract.KindFunction, Name: "foo", Range: rng(4, 7)},
		},
	}
	bGraph := &extract.ScopeGraph{
		References: []extract.Reference{
			{ID: 0, ScopeID: 0, Name: "foo", Range: rng(17, 20), ResolvedDefID: -1},
			{ID: 1, ScopeID: 0, Name: "foo", Range: rng(21, 24), ResolvedDefID: -1},
		},
	}

	docs := []Document{
		{Path: "a.py", Graph: aGraph},
		{Path: "b.py", Graph: bGraph},
	}

	groups, err := TokenInfo(docs, 0, Token{Path: "a.py", StartByte: 4, EndByte: 7})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "a.py", groups[0].File)
	require.Len(t, groups[0].Data, 1)
	assert.Equal(t, KindDefinition, groups[0].Data[0].Kind)

	assert.Equal(t, "b.py", groups[1].File)
	require.Len(t, groups[1].Data, 2)
	assert.Equal(t, KindReference, groups[1].Data[0].Kind)
	assert.True(t, groups[1].Data[0].Range.Start.Byte < groups[1].Data[1].Range.Start.Byte)
}

// TestTokenInfoOnLocallyResolvedReferenceMatchesDefinition checks invariant
// 4: token_info on a reference that resolves locally returns the same set
// as token_info on its resolved definition.
func TestTokenInfoOnLocallyResolvedReferenceMatchesDefinition(t *testing.T) {
	graph := &extract.ScopeGraph{
		Definitions: []extract.Definition{
			{ID: 0, ScopeID: 0, Kind: extract.KindFunction, Name: "add", Range: rng(5, 8)},
		},
		References: []extract.Reference{
			{ID: 0, ScopeID: 0, Name: "add", Range: rng(30, 33), ResolvedDefID: 0},
		},
	}
	docs := []Document{{Path: "main.go", Graph: graph}}

	fromDef, err := TokenInfo(docs, 0, Token{Path: "main.go", StartByte: 5, EndByte: 8})
	require.NoError(t, err)
	fromRef, err := TokenInfo(docs, 0, Token{Path: "main.go", StartByte: 30, EndByte: 33})
	require.NoError(t, err)

	require.Len(t, fromDef, 1)
	require.Len(t, fromRef, 1)
	assert.ElementsMatch(t, fromDef[0].Data, fromRef[0].Data)
}

func TestTokenInfoNoMatchAtRange(t *testing.T) {
	graph := &extract.ScopeGraph{
		Definitions: []extract.Definition{
			{ID: 0, ScopeID: 0, Kind: extract.KindFunction, Name: "add", Range: rng(5, 8)},
		},
	}
	docs := []Document{{Path: "main.go", Graph: graph}}

	_, err := TokenInfo(docs, 0, Token{Path: "main.go", StartByte: 100, EndByte: 103})
	assert.Error(t, err)
}

func TestTokenInfoHomonymsAcrossUnrelatedFiles(t *testing.T) {
	aGraph := &extract.ScopeGraph{
		Definitions: []extract.Definition{
			{ID: 0, ScopeID: 0, Kind: extract.KindFunction, Name: "run", Range: rng(0, 3)},
		},
	}
	bGraph := &extract.ScopeGraph{
		Definitions: []extract.Definition{
			{ID: 0, ScopeID: 0, Kind: extract.KindFunction, Name: "run", Range: rng(10, 13)},
		},
	}
	docs := []Document{
		{Path: "a.go", Graph: aGraph},
		{Path: "b.go", Graph: bGraph},
	}

	groups, err := TokenInfo(docs, 0, Token{Path: "a.go", StartByte: 0, EndByte: 3})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "b.go", groups[1].File)
	assert.Equal(t, KindDefinition, groups[1].Data[0].Kind)
}
