package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/hyva-compat/internal/filesystem"
)

const (
	// DefaultDirName is the report directory created below the project root.
	DefaultDirName = "hyva-compatibility-analysis"

	CSVFilename  = "report.csv"
	JSONFilename = "report.json"
)

// Writer persists reports through a FileSystem.
type Writer struct {
	fs filesystem.FileSystem
}

// NewWriter creates a Writer.
func NewWriter(fs filesystem.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Exists reports whether dir already holds a report.
func (w *Writer) Exists(dir string) bool {
	return w.fs.Exists(filepath.Join(dir, CSVFilename)) || w.fs.Exists(filepath.Join(dir, JSONFilename))
}

// Write creates dir if needed and writes report.csv and report.json into it,
// replacing previous files.
func (w *Writer) Write(dir string, r *Report) error {
	if err := w.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	var csvBuf bytes.Buffer
	if err := WriteCSV(&csvBuf, r); err != nil {
		return err
	}
	if err := w.fs.WriteFile(filepath.Join(dir, CSVFilename), csvBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", CSVFilename, err)
	}

	var jsonBuf bytes.Buffer
	if err := WriteJSON(&jsonBuf, r); err != nil {
		return err
	}
	if err := w.fs.WriteFile(filepath.Join(dir, JSONFilename), jsonBuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", JSONFilename, err)
	}

	return nil
}
