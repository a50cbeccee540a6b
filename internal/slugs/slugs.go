// Package slugs derives collection names from free-form text such as file
// names, so imported data lands in predictably named tables.
package slugs

import (
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"
)

// CollectionName converts s into a collection-safe slug: lowercase ASCII,
// hyphen-separated. An input that slugs to nothing (all punctuation, say)
// falls back to "collection".
func CollectionName(s string) string {
	slugged := goslug.Make(s)
	if slugged == "" {
		return "collection"
	}
	return slugged
}

// FromFilename derives a collection name from a file path: the base name
// without its extension, slugged.
func FromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return CollectionName(base)
}
