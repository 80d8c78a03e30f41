// Package fs provides file system adapters for walking source trees and hashing content.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// Walker lists source files.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file under root, skipping VCS directories, hidden
// directories and anything matching ignores. Paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && w.skip(d, ignores) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// ListFiles returns the names of the regular files directly inside dir,
// sorted, skipping hidden files and anything matching ignores.
func (w *Walker) ListFiles(dir string, ignores []string) []string {
	var names []string
	for path := range w.WalkFiles(dir, ignores) {
		rel, err := filepath.Rel(dir, path)
		if err != nil || strings.ContainsRune(rel, filepath.Separator) {
			continue
		}
		names = append(names, rel)
	}
	return names
}

func (w *Walker) skip(d fs.DirEntry, ignores []string) bool {
	name := d.Name()
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
