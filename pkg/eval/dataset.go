// Package eval drives batch evaluation: for each design in a dataset it
// loads the spec, renders the reconstruction, scores it against the
// original, and persists the results. One design's failure never stops
// the batch.
package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dataset layout on disk:
//
//	root/
//	  specs/<id>/spec.json
//	  specs/<id>/assets/...
//	  originals/<id>.webp (or .png, .jpg, .jpeg)
type Dataset struct {
	Root string
}

// originalExtensions in lookup order.
var originalExtensions = []string{".webp", ".png", ".jpg", ".jpeg"}

// OpenDataset opens a dataset directory and verifies its specs directory
// exists.
func OpenDataset(root string) (*Dataset, error) {
	info, err := os.Stat(filepath.Join(root, "specs"))
	if err != nil {
		return nil, fmt.Errorf("dataset %s has no specs directory: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("dataset %s: specs is not a directory", root)
	}
	return &Dataset{Root: root}, nil
}

// IDs returns all design identifiers in the dataset, sorted.
func (d *Dataset) IDs() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(d.Root, "specs"))
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// SpecPath returns the path of a design's spec document.
func (d *Dataset) SpecPath(id string) string {
	return filepath.Join(d.Root, "specs", id, "spec.json")
}

// AssetDir returns the directory a design's asset references resolve
// against.
func (d *Dataset) AssetDir(id string) string {
	return filepath.Join(d.Root, "specs", id, "assets")
}

// OriginalPath returns the path of a design's original image, or "" when
// the dataset has no original for it.
func (d *Dataset) OriginalPath(id string) string {
	for _, ext := range originalExtensions {
		path := filepath.Join(d.Root, "originals", id+ext)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
