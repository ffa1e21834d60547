package env

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ahmetson/envboot/path"
)

// Discover returns the environment files of the variant in the directory, in the load order.
// Only the regular files are returned, symbolic links are followed.
func Discover(dir string, variant Variant) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir('%s'): %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !variant.Match(name) {
			continue
		}
		if !path.IsRegularFile(filepath.Join(dir, name)) {
			continue
		}
		names = append(names, name)
	}

	Sort(names, variant.Canonical)
	return names, nil
}

// Sort orders the file names in place so that the canonical file is the last one.
// Other file names are sorted lexicographically.
func Sort(names []string, canonical string) {
	sort.SliceStable(names, func(i, j int) bool {
		return less(names[i], names[j], canonical)
	})
}

func less(a string, b string, canonical string) bool {
	if a == canonical {
		return false
	}
	if b == canonical {
		return true
	}
	return a < b
}
