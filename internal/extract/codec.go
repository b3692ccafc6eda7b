package extract

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// emptySentinel is the single byte stored for symbol_locations when a file
// has no scope graph (extraction failed, or the file genuinely has none).
// Keeping it a distinct one-byte value — rather than an empty []byte, which
// bleve's stored-field machinery can round-trip as nil — makes "empty but
// present" unambiguous on decode.
var emptySentinel = []byte{0x00}

// Encode serializes a ScopeGraph for storage in the symbol_locations field.
// An empty or nil graph encodes to the sentinel marker rather than running
// gob on zero value slices, matching the "Empty" variant spec.md describes
// for the original's symbol_locations field.
func Encode(g *ScopeGraph) []byte {
	if g.IsEmpty() {
		return emptySentinel
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		// gob encoding of this struct (plain value types, no interfaces)
		// cannot fail in practice; fall back to the sentinel rather than
		// propagating an error from a field that spec.md treats as
		// always-present.
		return emptySentinel
	}
	return buf.Bytes()
}

// Decode reverses Encode. Decoding the sentinel or an empty payload yields
// an empty graph; any other payload that is not a valid gob stream returns
// an error.
func Decode(data []byte) (*ScopeGraph, error) {
	if len(data) == 1 && data[0] == emptySentinel[0] {
		return &ScopeGraph{}, nil
	}
	if len(data) == 0 {
		return &ScopeGraph{}, nil
	}
	var g ScopeGraph
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return nil, fmt.Errorf("extract: decode scope graph: %w", err)
	}
	return &g, nil
}
