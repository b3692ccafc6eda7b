package lang

import "testing"

func TestForPath(t *testing.T) {
	cases := map[string]string{
		"main.go":          "go",
		"index.tsx":        "typescript",
		"app.jsx":          "javascript",
		"script.py":        "python",
		"lib.rs":           "rust",
		"header.h":         "c",
		"Main.java":        "java",
		"README.md":        Plaintext,
		"Makefile":         Plaintext,
		"path/to/file.rb":  "ruby",
		"UPPER.GO":         "go",
	}
	for path, want := range cases {
		if got := ForPath(path); got != want {
			t.Errorf("ForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestIsCode(t *testing.T) {
	if !IsCode("main.go") {
		t.Error("main.go should be code")
	}
	if IsCode("README.md") {
		t.Error("README.md should not be code")
	}
}
