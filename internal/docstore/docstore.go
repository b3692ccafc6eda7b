package docstore

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
)

const versionFileName = ".schema-version"

// Store owns a single on-disk bleve index and the schema-mismatch
// recovery around opening it.
type Store struct {
	dir   string
	index bleve.Index
}

// Open opens the index at dir, creating it if absent. If dir holds an
// index built under a different schemaVersion, it is deleted and rebuilt
// once — mirroring the original Indexer::create's "schema does not
// match" -> delete -> retry path, reimplemented against a version marker
// since bleve does not surface a typed schema-mismatch error the way
// tantivy does.
func Open(dir string) (*Store, error) {
	if versionMismatch(dir) {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fmt.Errorf("docstore: remove stale index: %w", err)
		}
	}

	idx, err := bleve.Open(dir)
	if err == nil {
		return &Store{dir: dir, index: idx}, nil
	}

	idx, err = bleve.New(dir, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("docstore: create index: %w", err)
	}
	if werr := os.WriteFile(filepath.Join(dir, versionFileName), []byte(schemaVersion), 0o644); werr != nil {
		idx.Close()
		return nil, fmt.Errorf("docstore: write schema version: %w", werr)
	}
	return &Store{dir: dir, index: idx}, nil
}

func versionMismatch(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	got, err := os.ReadFile(filepath.Join(dir, versionFileName))
	if err != nil {
		return true
	}
	return string(got) != schemaVersion
}

// Close releases the underlying index handle.
func (s *Store) Close() error { return s.index.Close() }

// NewBatch returns an empty bleve batch for bulk indexing.
func (s *Store) NewBatch() *bleve.Batch { return s.index.NewBatch() }

// CommitBatch flushes a batch of index/delete operations in one commit.
func (s *Store) CommitBatch(b *bleve.Batch) error { return s.index.Batch(b) }

// Index upserts a single document by its path (used as the document ID).
func (s *Store) Index(doc Document) error {
	return s.index.Index(doc.Path, doc)
}

// Delete removes a document by path.
func (s *Store) Delete(path string) error {
	return s.index.Delete(path)
}

// EncodeBlob base64-encodes an opaque byte blob for storage in a
// SymbolLocations/LineEndIndices field.
func EncodeBlob(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// DecodeBlob reverses EncodeBlob.
func DecodeBlob(s string) ([]byte, error) { return base64.StdEncoding.DecodeString(s) }
