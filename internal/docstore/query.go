package docstore

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

const scanPageSize = 500

// ExistingHashes returns every indexed file's path -> content hash, read
// once at session start and frozen for the duration of an indexing run —
// the incremental-indexing snapshot described by spec.md, grounded on the
// original's load_existing_docs (reads the store before any writes land).
func (s *Store) ExistingHashes() (map[string]string, error) {
	out := make(map[string]string)
	err := s.scan(bleve.NewMatchAllQuery(), []string{"path", "hash"}, func(hit *searchHit) {
		out[hit.Fields["path"].(string)] = hit.Fields["hash"].(string)
	})
	return out, err
}

// AllDocuments returns every stored Document whose lang field equals lang
// (all documents if lang is empty), used by token-info and code
// navigation context resolution to scan same-language files for matching
// surface text.
func (s *Store) AllDocuments(lang string) ([]Document, error) {
	var q bleve.Query = bleve.NewMatchAllQuery()
	if lang != "" {
		tq := bleve.NewTermQuery(lang)
		tq.SetField("lang")
		q = bleve.NewConjunctionQuery(bleve.NewMatchAllQuery(), tq)
	}

	var docs []Document
	err := s.scan(q, []string{"*"}, func(hit *searchHit) {
		docs = append(docs, documentFromFields(hit.Fields))
	})
	return docs, err
}

// DocumentByPath loads the single document stored at path, or ok=false if
// none is indexed there.
func (s *Store) DocumentByPath(path string) (Document, bool, error) {
	tq := bleve.NewTermQuery(path)
	tq.SetField("path")

	var found Document
	ok := false
	err := s.scan(tq, []string{"*"}, func(hit *searchHit) {
		if ok {
			return
		}
		found = documentFromFields(hit.Fields)
		ok = true
	})
	return found, ok, err
}

// SearchField runs a ranked match query for query against field, returning
// up to limit documents in descending relevance order — the bleve analogue
// of the original's QueryParser::for_index(&[field]) text search.
func (s *Store) SearchField(field, query string, limit int) ([]Document, error) {
	mq := bleve.NewMatchQuery(query)
	mq.SetField(field)
	return s.runRanked(mq, limit)
}

// FuzzyField runs a ranked fuzzy query for term against field with the
// given edit distance, mirroring the original's FuzzyTermQuery against
// content_field.
func (s *Store) FuzzyField(field, term string, fuzziness, limit int) ([]Document, error) {
	fq := bleve.NewFuzzyQuery(term)
	fq.SetField(field)
	fq.Fuzziness = fuzziness
	return s.runRanked(fq, limit)
}

func (s *Store) runRanked(q bleve.Query, limit int) ([]Document, error) {
	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	req.Fields = []string{"*"}
	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("docstore: search: %w", err)
	}
	docs := make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		docs = append(docs, documentFromFields(hit.Fields))
	}
	return docs, nil
}

// searchHit is a local alias kept distinct from bleve.DocumentMatch so
// callers of scan never need to import bleve directly.
type searchHit = bleve.DocumentMatch

func (s *Store) scan(q bleve.Query, fields []string, visit func(*searchHit)) error {
	from := 0
	for {
		req := bleve.NewSearchRequestOptions(q, scanPageSize, from, false)
		req.Fields = fields
		res, err := s.index.Search(req)
		if err != nil {
			return fmt.Errorf("docstore: scan: %w", err)
		}
		for _, hit := range res.Hits {
			visit(hit)
		}
		if len(res.Hits) < scanPageSize {
			return nil
		}
		from += scanPageSize
	}
}

func documentFromFields(f map[string]interface{}) Document {
	str := func(k string) string {
		if v, ok := f[k].(string); ok {
			return v
		}
		return ""
	}
	return Document{
		Path:               str("path"),
		Content:            str("content"),
		ContentInsensitive: str("content_insensitive"),
		SymbolLocations:    str("symbol_locations"),
		LineEndIndices:     str("line_end_indices"),
		Symbols:            str("symbols"),
		Lang:               str("lang"),
		Hash:               str("hash"),
	}
}
