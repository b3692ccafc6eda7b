package docstore

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// schemaVersion is bumped whenever buildMapping's field set or analyzers
// change in a way that makes an existing on-disk index incompatible.
// Open compares this against the sidecar file written at index creation
// and, on mismatch, deletes and recreates the index rather than trying to
// migrate it in place — matching the original's schema-error-triggers-
// rebuild behavior.
const schemaVersion = "navigator-doc-v1"

func buildMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.IncludeInAll = false

	text := bleve.NewTextFieldMapping()
	text.Store = true
	text.IncludeInAll = false

	opaque := bleve.NewTextFieldMapping()
	opaque.Store = true
	opaque.Index = false
	opaque.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("path", keyword)
	doc.AddFieldMappingsAt("lang", keyword)
	doc.AddFieldMappingsAt("hash", keyword)
	doc.AddFieldMappingsAt("content", text)
	doc.AddFieldMappingsAt("content_insensitive", text)
	doc.AddFieldMappingsAt("symbols", text)
	doc.AddFieldMappingsAt("symbol_locations", opaque)
	doc.AddFieldMappingsAt("line_end_indices", opaque)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = "standard"
	return im
}
