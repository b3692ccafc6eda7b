package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGoFunctionAndCall(t *testing.T) {
	src := []byte(`package main

func add(a, b int) int {
	return a + b
}

func main() {
	add(1, 2)
}
`)
	g, err := Parse(context.Background(), src, "go")
	require.NoError(t, err)
	require.False(t, g.IsEmpty())

	var names []string
	for _, d := range g.Definitions {
		if d.Kind == KindFunction {
			names = append(names, d.Name)
		}
	}
	assert.Contains(t, names, "add")
	assert.Contains(t, names, "main")

	var resolvedAdd bool
	for _, r := range g.References {
		if r.Name != "add" {
			continue
		}
		if def, ok := g.DefinitionByID(r.ResolvedDefID); ok && def.Name == "add" {
			resolvedAdd = true
		}
	}
	assert.True(t, resolvedAdd, "reference to add() should resolve to its definition")
}

func TestParseGoParameters(t *testing.T) {
	src := []byte(`package main

func add(a, b int) int {
	return a + b
}
`)
	g, err := Parse(context.Background(), src, "go")
	require.NoError(t, err)

	var params []string
	for _, d := range g.Definitions {
		if d.Kind == KindParameter {
			params = append(params, d.Name)
		}
	}
	assert.Subset(t, params, []string{"a", "b"})
}

func TestParsePythonClassAndMethod(t *testing.T) {
	src := []byte(`class Greeter:
    def greet(self, name):
        return name
`)
	g, err := Parse(context.Background(), src, "python")
	require.NoError(t, err)
	require.False(t, g.IsEmpty())

	var kinds = map[string]Kind{}
	for _, d := range g.Definitions {
		kinds[d.Name] = d.Kind
	}
	assert.Equal(t, KindClass, kinds["Greeter"])
	assert.Equal(t, KindFunction, kinds["greet"])
}

func TestParseUnsupportedLanguageReturnsEmpty(t *testing.T) {
	g, err := Parse(context.Background(), []byte("anything"), "cobol")
	require.NoError(t, err)
	assert.True(t, g.IsEmpty())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	g := &ScopeGraph{
		Scopes:      []Scope{{ID: 0, ParentID: -1, Kind: "module"}},
		Definitions: []Definition{{ID: 0, ScopeID: 0, Kind: KindFunction, Name: "f"}},
		References:  []Reference{{ID: 0, ScopeID: 0, Name: "f", ResolvedDefID: 0}},
	}
	data := Encode(g)
	got, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Definitions, 1)
	assert.Equal(t, "f", got.Definitions[0].Name)
}

func TestEncodeEmptyGraphUsesSentinel(t *testing.T) {
	data := Encode(&ScopeGraph{})
	assert.Equal(t, emptySentinel, data)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestHoverableRangesDeduplicated(t *testing.T) {
	src := []byte(`package main

func f() {
	x := 1
	_ = x
}
`)
	g, err := Parse(context.Background(), src, "go")
	require.NoError(t, err)
	ranges := HoverableRanges(g)
	require.NotEmpty(t, ranges)
	for i := 1; i < len(ranges); i++ {
		assert.LessOrEqual(t, ranges[i-1].Start.Byte, ranges[i].Start.Byte)
	}
	seen := map[[2]int]bool{}
	for _, r := range ranges {
		key := [2]int{r.Start.Byte, r.End.Byte}
		assert.False(t, seen[key], "duplicate range %v", key)
		seen[key] = true
	}
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("go"))
	assert.True(t, IsSupported("python"))
	assert.False(t, IsSupported("cobol"))
}
