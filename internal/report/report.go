package report

import (
	"path/filepath"
	"strings"

	"github.com/jakoblorz/hyva-compat/internal/models"
)

// Report is the outcome of one analysis run.
type Report struct {
	// Root is the project root the paths are relative to
	Root string

	// Summary totals the retained modules
	Summary models.Summary

	// Modules holds the retained modules in config.php order
	Modules []*models.ModuleRecord

	// Unresolved lists modules whose directory could not be found
	Unresolved []string
}

// Build filters records and summarizes what remains.
func Build(root string, records []*models.ModuleRecord) *Report {
	modules := Filter(records)

	var unresolved []string
	for _, record := range records {
		if !record.Resolved() {
			unresolved = append(unresolved, record.Identifier)
		}
	}

	return &Report{
		Root:       root,
		Summary:    Summarize(modules),
		Modules:    modules,
		Unresolved: unresolved,
	}
}

// RelativePath strips root from a module path.
func (r *Report) RelativePath(path string) string {
	root := filepath.Clean(r.Root)
	rel := strings.TrimPrefix(path, root)
	return strings.TrimPrefix(filepath.ToSlash(rel), "/")
}
