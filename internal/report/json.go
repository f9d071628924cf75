package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jakoblorz/hyva-compat/internal/models"
)

// moduleJSON is the serialized form of a retained module.
type moduleJSON struct {
	Name                         string   `json:"name"`
	Path                         string   `json:"path"`
	LayoutFiles                  []string `json:"layoutFiles"`
	LayoutLineCount              int      `json:"layoutLineCount"`
	LayoutFilesSize              int64    `json:"layoutFilesSize"`
	JSFiles                      []string `json:"jsFiles"`
	JSLineCount                  int      `json:"jsLineCount"`
	JSFilesSize                  int64    `json:"jsFilesSize"`
	PHTMLFiles                   []string `json:"phtmlFiles"`
	PHTMLLineCount               int      `json:"phtmlLineCount"`
	PHTMLFilesSize               int64    `json:"phtmlFilesSize"`
	CompatibilityModuleInstalled string   `json:"compatibilityModuleInstalled"`
}

func newModuleJSON(record *models.ModuleRecord) moduleJSON {
	c := record.Classification
	return moduleJSON{
		Name:                         record.Identifier,
		Path:                         record.Path,
		LayoutFiles:                  nonNil(c.Layout.Files),
		LayoutLineCount:              c.Layout.LineCount,
		LayoutFilesSize:              c.Layout.Size,
		JSFiles:                      nonNil(c.Script.Files),
		JSLineCount:                  c.Script.LineCount,
		JSFilesSize:                  c.Script.Size,
		PHTMLFiles:                   nonNil(c.Template.Files),
		PHTMLLineCount:               c.Template.LineCount,
		PHTMLFilesSize:               c.Template.Size,
		CompatibilityModuleInstalled: c.CompatibilityModule,
	}
}

func nonNil(files []string) []string {
	if files == nil {
		return []string{}
	}
	return files
}

// Entries returns the JSON array elements: the summary first, then every
// retained module.
func (r *Report) Entries() []interface{} {
	entries := make([]interface{}, 0, len(r.Modules)+1)
	entries = append(entries, r.Summary)
	for _, module := range r.Modules {
		entries = append(entries, newModuleJSON(module))
	}
	return entries
}

// WriteJSON writes the report as an indented JSON array.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(r.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}
