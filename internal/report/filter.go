// Package report decides which modules need compatibility work and renders
// the result.
package report

import "github.com/jakoblorz/hyva-compat/internal/models"

// Include reports whether a module ships front-end files but shows no sign
// of supporting the compatibility layer. Unresolved or unscanned modules are
// never included.
func Include(record *models.ModuleRecord) bool {
	if record == nil || !record.Resolved() || record.Classification == nil {
		return false
	}
	c := record.Classification
	return c.HasFrontend() && !c.HasCompatibilityMarker()
}

// Filter keeps the records satisfying Include, preserving order.
func Filter(records []*models.ModuleRecord) []*models.ModuleRecord {
	filtered := make([]*models.ModuleRecord, 0, len(records))
	for _, record := range records {
		if Include(record) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
