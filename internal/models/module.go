package models

import "fmt"

const (
	// NotFoundPath marks a module whose directory could not be resolved.
	NotFoundPath = "Not found"

	// CompatibilityNotFound marks a module without an installed
	// compatibility module.
	CompatibilityNotFound = "Not Found"

	// SummaryLabel describes the synthetic summary record.
	SummaryLabel = "Summary of the modules and files which require Hyva compatibility"
)

// Category is one of the typed front-end file buckets.
type Category string

const (
	// CategoryLayout selects layout XML below view/frontend/layout
	CategoryLayout Category = "layout"

	// CategoryScript selects JavaScript below view/frontend
	CategoryScript Category = "js"

	// CategoryTemplate selects PHTML templates below view/frontend
	CategoryTemplate Category = "phtml"
)

// Categories lists every typed category in report column order.
var Categories = []Category{CategoryScript, CategoryTemplate, CategoryLayout}

// IsValid checks if the category is known
func (c Category) IsValid() bool {
	switch c {
	case CategoryLayout, CategoryScript, CategoryTemplate:
		return true
	default:
		return false
	}
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s (must be layout, js, or phtml)", s)
	}
	return c, nil
}

// CategoryStats accumulates the files matched by one category.
type CategoryStats struct {
	Files     []string
	LineCount int
	Size      int64
}

// Add records a matched file.
func (s *CategoryStats) Add(path string, size int64, lines int) {
	s.Files = append(s.Files, path)
	s.Size += size
	s.LineCount += lines
}

// Count returns the number of matched files.
func (s CategoryStats) Count() int {
	return len(s.Files)
}

// Classification is the result of scanning one module directory.
type Classification struct {
	Layout   CategoryStats
	Script   CategoryStats
	Template CategoryStats

	// FrontendFiles counts files below view/frontend of any extension.
	FrontendFiles int

	// MarkerFiles lists files showing the module already supports the
	// compatibility layer.
	MarkerFiles []string

	// CompatibilityModule is the installed compatibility module name, or
	// CompatibilityNotFound.
	CompatibilityModule string
}

// Stats returns the accumulator for category c, or nil if c is unknown.
func (c *Classification) Stats(category Category) *CategoryStats {
	switch category {
	case CategoryLayout:
		return &c.Layout
	case CategoryScript:
		return &c.Script
	case CategoryTemplate:
		return &c.Template
	default:
		return nil
	}
}

// HasFrontend reports whether the module ships any front-end file.
func (c *Classification) HasFrontend() bool {
	return c.FrontendFiles > 0
}

// HasCompatibilityMarker reports whether any marker file was found.
func (c *Classification) HasCompatibilityMarker() bool {
	return len(c.MarkerFiles) > 0
}

// HasCompatibilityModule reports whether a compatibility module for the
// module is installed.
func (c *Classification) HasCompatibilityModule() bool {
	return c.CompatibilityModule != "" && c.CompatibilityModule != CompatibilityNotFound
}

// ModuleRecord ties an identifier to its resolved directory and scan result.
type ModuleRecord struct {
	// Identifier is the module name from config.php, e.g. "Acme_Checkout"
	Identifier string

	// Path is the absolute module directory or NotFoundPath
	Path string

	// Classification is nil until the module has been scanned
	Classification *Classification
}

// NewModuleRecord creates a record for identifier at path.
func NewModuleRecord(identifier, path string) *ModuleRecord {
	return &ModuleRecord{
		Identifier: identifier,
		Path:       path,
	}
}

// Resolved reports whether the module directory was found.
func (r *ModuleRecord) Resolved() bool {
	return r.Path != "" && r.Path != NotFoundPath
}

// Summary aggregates the retained module records.
type Summary struct {
	Info            string `json:"info"`
	TotalModules    int    `json:"totalModules"`
	JSFiles         int    `json:"jsFiles"`
	JSLineCount     int    `json:"jsLineCount"`
	JSFilesSize     int64  `json:"jsFilesSize"`
	PHTMLFiles      int    `json:"phtmlFiles"`
	PHTMLLineCount  int    `json:"phtmlLineCount"`
	PHTMLFilesSize  int64  `json:"phtmlFilesSize"`
	LayoutFiles     int    `json:"layoutFiles"`
	LayoutLineCount int    `json:"layoutLineCount"`
	LayoutFilesSize int64  `json:"layoutFilesSize"`
}
