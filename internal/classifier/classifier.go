// Package classifier scans a module directory and buckets its front-end
// files by category.
package classifier

import (
	"bytes"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/models"
	"github.com/jakoblorz/hyva-compat/internal/naming"
)

// ModuleSet answers whether a module is installed in the project.
type ModuleSet interface {
	IsInstalled(name string) bool
}

// Classifier scans module directories below a project root.
type Classifier struct {
	fs        filesystem.FileSystem
	root      string
	installed ModuleSet
	logger    *log.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLogger sets the logger used for unreadable files.
func WithLogger(logger *log.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New creates a Classifier. installed is consulted for compatibility module
// names and may be nil.
func New(fs filesystem.FileSystem, root string, installed ModuleSet, options ...Option) *Classifier {
	c := &Classifier{
		fs:        fs,
		root:      filepath.Clean(root),
		installed: installed,
		logger:    log.Default(),
	}

	for _, option := range options {
		option(c)
	}

	return c
}

// Classify walks modulePath and returns the per-category totals for the
// module identifier. Files that cannot be read are listed but add nothing
// to size and line totals. Hidden files and directories are skipped.
//
// A symlinked modulePath is followed; files are still reported below
// modulePath.
func (c *Classifier) Classify(identifier, modulePath string) (*models.Classification, error) {
	result := &models.Classification{
		CompatibilityModule: c.compatibilityModule(identifier),
	}

	walkRoot, err := c.fs.EvalSymlinks(modulePath)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", modulePath, err)
	}

	err = c.fs.WalkDir(walkRoot, func(visited string, entry fs.DirEntry, walkErr error) error {
		path := modulePath
		if rel, err := filepath.Rel(walkRoot, visited); err == nil && rel != "." {
			path = filepath.Join(modulePath, rel)
		}

		if walkErr != nil {
			if visited == walkRoot {
				return walkErr
			}
			c.logger.Warn("Skipping unreadable directory", "module", identifier, "path", path, "err", walkErr)
			return nil
		}

		name := entry.Name()
		if visited != walkRoot && strings.HasPrefix(name, ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		c.classifyFile(result, identifier, path, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", modulePath, err)
	}

	return result, nil
}

func (c *Classifier) classifyFile(result *models.Classification, identifier, path, name string) {
	rel := c.relative(path)

	if IsFrontend(rel) {
		result.FrontendFiles++
	}
	if IsCompatibilityMarker(name, rel) {
		result.MarkerFiles = append(result.MarkerFiles, path)
	}

	var size int64
	var lines int
	measured := false

	for _, rule := range Rules {
		if !rule.Match(name, rel) {
			continue
		}
		if !measured {
			size, lines = c.measure(identifier, path)
			measured = true
		}
		result.Stats(rule.Category).Add(path, size, lines)
	}
}

// measure returns the byte size and newline count of path, or zeros when
// the file cannot be read.
func (c *Classifier) measure(identifier, path string) (int64, int) {
	info, err := c.fs.Stat(path)
	if err != nil {
		c.logger.Warn("Cannot stat file", "module", identifier, "path", path, "err", err)
		return 0, 0
	}

	content, err := c.fs.ReadFile(path)
	if err != nil {
		c.logger.Warn("Cannot read file", "module", identifier, "path", path, "err", err)
		return 0, 0
	}

	return info.Size(), bytes.Count(content, []byte{'\n'})
}

// relative returns path relative to the project root with forward slashes,
// or the slash-converted absolute path if it lies outside the root.
func (c *Classifier) relative(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (c *Classifier) compatibilityModule(identifier string) string {
	if c.installed == nil {
		return models.CompatibilityNotFound
	}
	for _, name := range naming.CompatibilityModuleNames(identifier) {
		if c.installed.IsInstalled(name) {
			return name
		}
	}
	return models.CompatibilityNotFound
}
