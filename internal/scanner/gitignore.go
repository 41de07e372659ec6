package scanner

import (
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreMatcher wraps a gitignore pattern matcher.
type IgnoreMatcher struct {
	gi *gitignore.GitIgnore
}

// NewIgnoreMatcher loads .gitignore from the root plus any extra patterns
// (for example a project's exclude list). With neither, it accepts everything.
func NewIgnoreMatcher(root string, extra ...string) *IgnoreMatcher {
	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		if len(extra) == 0 {
			return &IgnoreMatcher{}
		}
		return &IgnoreMatcher{gi: gitignore.CompileIgnoreLines(extra...)}
	}
	gi, err := gitignore.CompileIgnoreFileAndLines(path, extra...)
	if err != nil {
		return &IgnoreMatcher{}
	}
	return &IgnoreMatcher{gi: gi}
}

// Match returns true if the given relative path should be ignored.
func (m *IgnoreMatcher) Match(relPath string) bool {
	if m.gi == nil {
		return false
	}
	return m.gi.MatchesPath(relPath)
}

// hardIgnored contains directories that are always skipped regardless of .gitignore.
var hardIgnored = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	".boxutil":     true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"__pycache__":  true,
}

// HardIgnore returns true if the directory name is always excluded.
func HardIgnore(name string) bool {
	return hardIgnored[name]
}
