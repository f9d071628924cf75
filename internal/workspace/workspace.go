// Package workspace locates the Magento project being analyzed.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/hyva-compat/internal/config"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/report"
)

// Workspace is a Magento project root.
type Workspace struct {
	fs       filesystem.FileSystem
	RootPath string
}

// New creates a new Workspace instance.
func New(fs filesystem.FileSystem) *Workspace {
	return &Workspace{fs: fs}
}

// Open uses root as the project root. Relative roots are resolved against
// the working directory. It fails with config.ErrConfigNotFound when root
// has no app/etc/config.php.
func (w *Workspace) Open(root string) error {
	if !filepath.IsAbs(root) {
		cwd, err := w.fs.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		root = filepath.Join(cwd, root)
	}
	root = filepath.Clean(root)

	if !w.fs.Exists(config.Path(root)) {
		return fmt.Errorf("%w (looked in %s)", config.ErrConfigNotFound, root)
	}

	w.RootPath = root
	return nil
}

// Detect finds the project root by walking up from the working directory
// until a directory containing app/etc/config.php is found.
func (w *Workspace) Detect() error {
	cwd, err := w.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	root, ok := findDirUp(w.fs, cwd, config.RelativePath)
	if !ok {
		return fmt.Errorf("%w (searched upwards from %s)", config.ErrConfigNotFound, cwd)
	}

	w.RootPath = root
	return nil
}

// ConfigPath returns the path of app/etc/config.php.
func (w *Workspace) ConfigPath() string {
	return config.Path(w.RootPath)
}

// ReportDir returns the report directory. name defaults to
// report.DefaultDirName; absolute names are returned unchanged.
func (w *Workspace) ReportDir(name string) string {
	if name == "" {
		name = report.DefaultDirName
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(w.RootPath, name)
}
