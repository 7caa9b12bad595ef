// Package export serializes persisted items and recipes into per-group JSON
// array files.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atlaspath/nmsdex/models"
	"github.com/atlaspath/nmsdex/pkg/db"
)

// Writer dumps store contents into one JSON file per group. Output is
// deterministic: items ordered by title, recipes by id, keys in struct order,
// UTF-8 left unescaped. Re-running over unchanged data reproduces the files
// byte for byte.
type Writer struct {
	store  *db.Store
	outDir string
}

func NewWriter(store *db.Store, outDir string) *Writer {
	return &Writer{store: store, outDir: outDir}
}

// WriteGroup exports one item group to <outDir>/<Group file>. A group with no
// items still produces a file containing an empty array.
func (w *Writer) WriteGroup(group models.Group) (int, error) {
	items, err := w.store.ItemsByGroup(group)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(w.outDir, group.ExportFile())
	if err := w.writeJSON(path, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// WriteRecipes exports all recipes of one kind to its fixed file
// (Refinery.json or NutrientProcessor.json).
func (w *Writer) WriteRecipes(kind models.RecipeKind) (int, error) {
	recipes, err := w.store.RecipesByKind(kind)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(w.outDir, kind.ExportFile())
	if err := w.writeJSON(path, recipes); err != nil {
		return 0, err
	}
	return len(recipes), nil
}

// WriteAll exports every item group and both recipe kinds, returning counts
// keyed by file name.
func (w *Writer) WriteAll() (map[string]int, error) {
	counts := make(map[string]int)
	for _, group := range models.AllGroups {
		n, err := w.WriteGroup(group)
		if err != nil {
			return counts, err
		}
		counts[group.ExportFile()] = n
	}
	for _, kind := range []models.RecipeKind{models.RecipeRefiner, models.RecipeCooking} {
		n, err := w.WriteRecipes(kind)
		if err != nil {
			return counts, err
		}
		counts[kind.ExportFile()] = n
	}
	return counts, nil
}

func (w *Writer) writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
