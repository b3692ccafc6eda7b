package docstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenCreatesIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	s, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Index(Document{Path: "a.go", Content: "package a", Lang: "go", Hash: "h1"}); err != nil {
		t.Fatal(err)
	}

	doc, ok, err := s.DocumentByPath("a.go")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected document to be found")
	}
	if doc.Hash != "h1" {
		t.Errorf("hash = %q, want h1", doc.Hash)
	}
}

func TestOpenRecoversFromSchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	idxDir := filepath.Join(dir, "idx")

	s, err := Open(idxDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Index(Document{Path: "a.go", Hash: "h1"}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Simulate a stale schema by overwriting the version marker.
	versionPath := filepath.Join(idxDir, versionFileName)
	if err := os.WriteFile(versionPath, []byte("old-version"), 0o644); err != nil {
		t.Fatal(err)
	}

	s2, err := Open(idxDir)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	_, ok, err := s2.DocumentByPath("a.go")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected index to have been rebuilt empty after schema mismatch")
	}
}

func TestEncodeDecodeBlobRoundTrip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0xff}
	encoded := EncodeBlob(data)
	decoded, err := DecodeBlob(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(decoded) != string(data) {
		t.Errorf("round trip mismatch: got %v, want %v", decoded, data)
	}
}
