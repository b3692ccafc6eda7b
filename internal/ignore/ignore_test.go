package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRootGitignore(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".gitignore"), "*.log\nbuild/\n")
	write(t, filepath.Join(root, "main.go"), "package main")
	write(t, filepath.Join(root, "debug.log"), "x")

	r, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if r.Ignored(filepath.Join(root, "main.go")) {
		t.Error("main.go should not be ignored")
	}
	if !r.Ignored(filepath.Join(root, "debug.log")) {
		t.Error("debug.log should be ignored")
	}
	if !r.Ignored(filepath.Join(root, "build", "out.bin")) {
		t.Error("build/out.bin should be ignored")
	}
}

func TestNestedGitignoreOwnNegation(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, ".gitignore"), "*.tmp\n")
	write(t, filepath.Join(root, "sub", ".gitignore"), "*.tmp\n!keep.tmp\n")
	write(t, filepath.Join(root, "sub", "keep.tmp"), "x")
	write(t, filepath.Join(root, "sub", "drop.tmp"), "x")
	write(t, filepath.Join(root, "other", "drop.tmp"), "x")

	r, err := Load(root)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Ignored(filepath.Join(root, "sub", "drop.tmp")) {
		t.Error("drop.tmp should be ignored by sub's own pattern")
	}
	if r.Ignored(filepath.Join(root, "sub", "keep.tmp")) {
		t.Error("keep.tmp should be un-ignored by sub's own negation")
	}
	if !r.Ignored(filepath.Join(root, "other", "drop.tmp")) {
		t.Error("other/drop.tmp should still be ignored by the root pattern")
	}
}
