// Package lang maps file paths to the canonical language tag used
// throughout the index (tree-sitter grammar selection, per-language
// document grouping, cross-document resolution).
package lang

import (
	"path/filepath"
	"strings"
)

// Plaintext is the language tag assigned to files with no recognized
// extension. The indexer skips such files: they are not stored at all.
const Plaintext = "plaintext"

var extToLanguage = map[string]string{
	".go":  "go",
	".ts":  "typescript",
	".tsx": "typescript",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".py":  "python",
	".rs":  "rust",
	".c":   "c",
	".h":   "c",
	".cpp": "cpp",
	".cc":  "cpp",
	".cxx": "cpp",
	".hpp": "cpp",
	".hh":  "cpp",
	".java": "java",
	".php":  "php",
	".rb":   "ruby",
}

// ForPath returns the canonical language tag for path's extension, or
// Plaintext if the extension is unrecognized.
func ForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if l, ok := extToLanguage[ext]; ok {
		return l
	}
	return Plaintext
}

// IsCode reports whether path's language tag is anything other than
// Plaintext.
func IsCode(path string) bool {
	return ForPath(path) != Plaintext
}
