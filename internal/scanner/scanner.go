// Package scanner finds box code files in a directory tree.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/boxcode/boxutil/internal/source"
)

// ScanResult holds the output of a tree walk.
type ScanResult struct {
	Files  []string // slash-separated paths relative to Root, sorted
	Errors []error
}

// ScanOptions controls scanner behaviour.
type ScanOptions struct {
	Root       string
	Extensions []string
	Exclude    []string // extra gitignore-style patterns
}

// Scan walks the tree under opts.Root and collects files with a box code
// extension, honouring .gitignore, opts.Exclude and hard-ignored directories.
// It does NOT read or parse the files.
func Scan(opts ScanOptions) ScanResult {
	root := opts.Root
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = source.DefaultExtensions
	}
	ignore := NewIgnoreMatcher(root, opts.Exclude...)

	var result ScanResult
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, err)
			return nil // Skip unreadable entries.
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if HardIgnore(d.Name()) || ignore.Match(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !source.HasExtension(rel, exts) || ignore.Match(rel) {
			return nil
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, err)
	}

	sort.Strings(result.Files)
	return result
}
