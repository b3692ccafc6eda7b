// Package docstore wraps the on-disk full-text index that backs every
// search operation: one document per indexed file, carrying both its raw
// content and the serialized scope graph produced by internal/extract.
package docstore

// Document is the stored/indexed unit for a single file, mirroring
// the original schema's path/content/content_insensitive/symbol_locations/
// line_end_indices/symbols/lang/hash fields.
type Document struct {
	Path               string `json:"path"`
	Content            string `json:"content"`
	ContentInsensitive string `json:"content_insensitive"`

	// SymbolLocations holds the base64 encoding of an extract.Encode
	// payload (gob-serialized ScopeGraph, or the one-byte empty sentinel).
	// bleve has no raw-bytes struct field, so the opaque blob travels as a
	// stored, unanalyzed text field instead of tantivy's BytesOptions.
	SymbolLocations string `json:"symbol_locations"`

	// LineEndIndices holds the base64 encoding of the little-endian
	// uint32 byte-offset array: one entry per line terminator, plus a
	// final entry for the file's total byte length.
	LineEndIndices string `json:"line_end_indices"`

	// Symbols is every distinct definition/reference surface text in the
	// file, newline-joined, analyzed for free-text symbol search.
	Symbols string `json:"symbols"`

	Lang string `json:"lang"`
	Hash string `json:"hash"`
}
