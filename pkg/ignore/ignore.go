// Package ignore filters glob-expanded page paths with gitignore semantics
// using go-git.
package ignore

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// FileName is the pagesmith-specific ignore file read from the root.
const FileName = ".pagesmithignore"

// defaultPatterns are always ignored.
var defaultPatterns = []string{".git/**", "node_modules/**"}

// Matcher answers whether a path below root is ignored.
type Matcher struct {
	root    string
	matcher gitignore.Matcher
}

// NewMatcher layers ignore patterns for root, later layers winning:
// 1. built-in defaults (.git, node_modules)
// 2. .gitignore files and .git/info/exclude
// 3. .pagesmithignore at root
func NewMatcher(root string) (*Matcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve ignore root %s: %w", root, err)
	}

	var patterns []gitignore.Pattern
	for _, p := range defaultPatterns {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	gitPatterns, err := gitignore.ReadPatterns(osfs.New(abs), nil)
	if err != nil {
		return nil, fmt.Errorf("read .gitignore under %s: %w", abs, err)
	}
	patterns = append(patterns, gitPatterns...)

	own, err := readIgnoreFile(filepath.Join(abs, FileName))
	if err != nil {
		return nil, err
	}
	for _, p := range own {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}

	return &Matcher{root: abs, matcher: gitignore.NewMatcher(patterns)}, nil
}

// readIgnoreFile returns the patterns of an ignore file; a missing file has
// none.
func readIgnoreFile(path string) ([]string, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- fixed file name under the ignore root
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var patterns []string
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, sc.Err()
}

// IsIgnored reports whether the file at path is ignored. Paths outside the
// root are never ignored. A nil matcher ignores nothing.
func (m *Matcher) IsIgnored(path string) bool {
	if m == nil {
		return false
	}
	parts := m.components(path)
	if len(parts) == 0 {
		return false
	}
	return m.matcher.Match(parts, false)
}

// components splits path, relative to the root, for the go-git matcher.
func (m *Matcher) components(path string) []string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, path)
	}
	rel, err := filepath.Rel(m.root, path)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return nil
	}

	var parts []string
	for _, part := range strings.Split(rel, "/") {
		if part != "" && part != "." {
			parts = append(parts, part)
		}
	}
	return parts
}
