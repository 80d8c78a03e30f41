package watcher

import (
	"path/filepath"
	"slices"
	"strings"
)

// BundlesFor maps changed source paths to the base names of the bundles that
// own them. A file at <root>/UI/Menu/Logo.png belongs to bundle UI_Menu.
// Paths outside root and files directly in root are ignored.
func BundlesFor(root string, paths []string) []string {
	var names []string
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil || !filepath.IsLocal(rel) {
			continue
		}
		dir := filepath.Dir(rel)
		if dir == "." {
			continue
		}
		name := strings.ReplaceAll(filepath.ToSlash(dir), "/", "_")
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
