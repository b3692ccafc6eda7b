// Package ignore resolves nested .gitignore files under a root directory.
// Patterns from every enclosing .gitignore apply cumulatively to a given
// path, root to leaf, with a deeper directory's pattern — including a
// negation — taking precedence over a shallower one for the same path,
// matching git's own layered resolution.
package ignore

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gitignore "github.com/sabhiram/go-gitignore"
)

type dirRules struct {
	dir   string
	depth int
	lines []string
}

// Resolver answers "is this path ignored" for a tree of nested .gitignore
// files.
type Resolver struct {
	root  string
	rules []dirRules // sorted shallowest (root) first

	mu    sync.Mutex
	cache map[string]*gitignore.GitIgnore // per-containing-directory combined matcher
}

// Load walks root looking for .gitignore files (the walk itself does not
// honor any .gitignore, mirroring the original implementation's
// WalkBuilder with git_ignore(false)) and records each file's raw pattern
// lines, qualified to be root-relative.
func Load(root string) (*Resolver, error) {
	r := &Resolver{root: root, cache: make(map[string]*gitignore.GitIgnore)}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || info.Name() != ".gitignore" {
			return nil
		}
		dir := filepath.Dir(path)
		lines, rerr := readLines(path)
		if rerr != nil {
			return nil
		}
		relDir, rerr := filepath.Rel(root, dir)
		if rerr != nil {
			return nil
		}
		relDir = filepath.ToSlash(relDir)
		if relDir == "." {
			relDir = ""
		}
		depth := 0
		if relDir != "" {
			depth = len(strings.Split(relDir, "/"))
		}
		r.rules = append(r.rules, dirRules{
			dir:   dir,
			depth: depth,
			lines: qualify(lines, relDir),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(r.rules, func(i, j int) bool { return r.rules[i].depth < r.rules[j].depth })
	return r, nil
}

// qualify rewrites each pattern line so it is expressed relative to the
// tree root instead of relDir, preserving a leading "!" negation marker.
// Comment and blank lines pass through unchanged (CompileIgnoreLines
// ignores them).
func qualify(lines []string, relDir string) []string {
	if relDir == "" {
		return lines
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			out = append(out, line)
			continue
		}
		neg := strings.HasPrefix(line, "!")
		pat := strings.TrimPrefix(line, "!")
		pat = strings.TrimPrefix(pat, "/")

		withPrefix := func(p string) string {
			q := relDir + "/" + p
			if neg {
				q = "!" + q
			}
			return q
		}

		out = append(out, withPrefix(pat))
		// A bare name pattern (no internal slash) matches at any depth
		// under the directory that defines it, not only directly inside
		// it; add the "**/" form so nested files are covered too.
		if !strings.Contains(strings.TrimSuffix(pat, "/"), "/") {
			out = append(out, withPrefix("**/"+pat))
		}
	}
	return out
}

// Ignored reports whether path (absolute, rooted under the directory
// passed to Load) is excluded by the cumulative effect of every enclosing
// .gitignore.
func (r *Resolver) Ignored(path string) bool {
	rel, err := filepath.Rel(r.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)

	dir := filepath.ToSlash(filepath.Dir(rel))
	if dir == "." {
		dir = ""
	}

	m := r.matcherFor(dir)
	if m == nil {
		return false
	}
	return m.MatchesPath(rel)
}

// matcherFor returns the combined matcher applicable to files directly
// inside dir (root-relative, slash-separated), compiling and caching it on
// first use.
func (r *Resolver) matcherFor(dir string) *gitignore.GitIgnore {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cache[dir]; ok {
		return m
	}

	var lines []string
	for _, rule := range r.rules {
		relDir := filepath.ToSlash(mustRel(r.root, rule.dir))
		if relDir == "." {
			relDir = ""
		}
		if relDir != "" && !strings.HasPrefix(dir+"/", relDir+"/") {
			continue
		}
		lines = append(lines, rule.lines...)
	}

	var m *gitignore.GitIgnore
	if len(lines) > 0 {
		m = gitignore.CompileIgnoreLines(lines...)
	}
	r.cache[dir] = m
	return m
}

func mustRel(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return ""
	}
	return rel
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
