// Package resolver locates a module's directory inside a project tree.
package resolver

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/naming"
)

const (
	// MarkerFilename is the file every module uses to register itself.
	MarkerFilename = "registration.php"

	// MarkerPattern matches registration files anywhere below the root.
	MarkerPattern = "**/" + MarkerFilename

	// ViaRegistration is reported when the fallback search found the module.
	ViaRegistration naming.Layout = "registration"
)

// DefaultSearchDirs are probed, in order, below the project root.
var DefaultSearchDirs = []string{"app/code", "vendor"}

// ErrNotFound is returned when no candidate directory exists and no
// registration file mentions the module.
var ErrNotFound = errors.New("module not found")

// Resolution describes where a module was found.
type Resolution struct {
	Path string
	Via  naming.Layout
}

// Resolver finds module directories below a project root.
type Resolver struct {
	fs          filesystem.FileSystem
	root        string
	searchRoots []string
	platform    string
	ignore      []string
	logger      *log.Logger

	rules *ignoreRules
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSearchRoots replaces the probed directories. Earlier roots win.
func WithSearchRoots(roots ...string) Option {
	return func(r *Resolver) {
		r.searchRoots = roots
	}
}

// WithPlatform sets the platform prefix of the vendor-platform layout.
func WithPlatform(platform string) Option {
	return func(r *Resolver) {
		r.platform = platform
	}
}

// WithIgnorePatterns adds gitignore-style patterns skipped by the
// registration fallback search.
func WithIgnorePatterns(patterns ...string) Option {
	return func(r *Resolver) {
		r.ignore = append(r.ignore, patterns...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a Resolver for the project at root.
func New(fs filesystem.FileSystem, root string, options ...Option) *Resolver {
	r := &Resolver{
		fs:       fs,
		root:     filepath.Clean(root),
		platform: naming.DefaultPlatform,
		ignore:   append([]string{}, DefaultIgnorePatterns...),
		logger:   log.Default(),
	}
	for _, dir := range DefaultSearchDirs {
		r.searchRoots = append(r.searchRoots, filepath.Join(r.root, filepath.FromSlash(dir)))
	}

	for _, option := range options {
		option(r)
	}

	r.rules = newIgnoreRules(r.root, r.ignore)
	return r
}

// SearchRoots returns the probed directories in priority order.
func (r *Resolver) SearchRoots() []string {
	return r.searchRoots
}

// Resolve returns the directory of identifier.
//
// Every naming candidate is tried against every search root first; the
// first existing path wins. Only then are registration files below the
// root read, in lexical path order, and the directory of the first one
// containing identifier is returned. ErrNotFound is returned when both
// steps fail; a registration file that cannot be read aborts the search
// with that error.
func (r *Resolver) Resolve(identifier string) (Resolution, error) {
	if identifier == "" {
		return Resolution{}, fmt.Errorf("empty identifier: %w", ErrNotFound)
	}

	if res, ok := r.probe(identifier); ok {
		return res, nil
	}

	path, err := r.searchRegistrations(identifier)
	if err != nil {
		return Resolution{}, err
	}
	if path == "" {
		return Resolution{}, fmt.Errorf("%s: %w", identifier, ErrNotFound)
	}

	return Resolution{Path: path, Via: ViaRegistration}, nil
}

func (r *Resolver) probe(identifier string) (Resolution, bool) {
	for _, candidate := range naming.Candidates(identifier, r.platform) {
		if candidate.Partial {
			continue
		}
		for _, searchRoot := range r.searchRoots {
			path := filepath.Join(searchRoot, filepath.FromSlash(candidate.Path))
			if r.fs.Exists(path) {
				return Resolution{Path: path, Via: candidate.Layout}, true
			}
		}
	}
	return Resolution{}, false
}

func (r *Resolver) searchRegistrations(identifier string) (string, error) {
	needle := []byte(identifier)
	found := ""

	err := r.fs.WalkDir(r.root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == r.root {
				return walkErr
			}
			r.logger.Debug("Skipping unreadable directory", "path", path, "err", walkErr)
			return nil
		}

		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if r.rules.Ignored(rel, entry.IsDir()) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}

		if ok, _ := doublestar.Match(MarkerPattern, rel); !ok {
			return nil
		}

		content, err := r.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if bytes.Contains(content, needle) {
			found = filepath.Dir(path)
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("registration search for %s: %w", identifier, err)
	}

	return found, nil
}
