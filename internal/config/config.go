// Package config reads the enabled module list from a Magento app/etc/config.php.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
)

const (
	// RelativePath is where config.php lives below the project root.
	RelativePath = "app/etc/config.php"

	// ModulesKey is the config.php array holding the module list.
	ModulesKey = "modules"

	// PlatformToken marks core platform modules, which are never analyzed.
	PlatformToken = "Magento_"

	// CompatibilityToken marks compatibility modules. They are not analyzed
	// but count when looking up a module's compatibility module.
	CompatibilityToken = "Hyva_"
)

// ErrConfigNotFound is returned when the project has no config.php.
var ErrConfigNotFound = errors.New("app/etc/config.php not found")

// ModuleList is the partitioned module list of a project.
type ModuleList struct {
	// All holds every identifier in config.php order.
	All []string

	// Installed excludes platform modules but keeps compatibility modules.
	Installed []string

	// Analyzable excludes platform and compatibility modules.
	Analyzable []string
}

// NewModuleList partitions identifiers. Matching is by substring.
func NewModuleList(all []string) *ModuleList {
	list := &ModuleList{
		All:        all,
		Installed:  []string{},
		Analyzable: []string{},
	}

	for _, name := range all {
		if strings.Contains(name, PlatformToken) {
			continue
		}
		list.Installed = append(list.Installed, name)

		if strings.Contains(name, CompatibilityToken) {
			continue
		}
		list.Analyzable = append(list.Analyzable, name)
	}

	return list
}

// IsInstalled reports whether name is in the Installed list.
func (l *ModuleList) IsInstalled(name string) bool {
	for _, n := range l.Installed {
		if n == name {
			return true
		}
	}
	return false
}

// Loader reads the module list of a project root.
type Loader struct {
	fs        filesystem.FileSystem
	extractor ModuleListExtractor
	logger    *log.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtractor replaces the config.php array extractor.
func WithExtractor(extractor ModuleListExtractor) Option {
	return func(l *Loader) {
		l.extractor = extractor
	}
}

// WithLogger sets the logger used for read failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader reading through fs.
func NewLoader(fs filesystem.FileSystem, options ...Option) *Loader {
	l := &Loader{
		fs:        fs,
		extractor: NewPHPArrayExtractor(ModulesKey),
		logger:    log.Default(),
	}

	for _, option := range options {
		option(l)
	}

	return l
}

// Path returns the config.php location for root.
func Path(root string) string {
	return filepath.Join(root, filepath.FromSlash(RelativePath))
}

// Load reads config.php below root. A missing file is fatal and returns
// ErrConfigNotFound; an unreadable or malformed file degrades to an empty
// list.
func (l *Loader) Load(root string) (*ModuleList, error) {
	path := Path(root)
	if !l.fs.Exists(path) {
		return nil, fmt.Errorf("%w (looked in %s)", ErrConfigNotFound, root)
	}

	content, err := l.fs.ReadFile(path)
	if err != nil {
		l.logger.Error("Error reading config file", "path", path, "err", err)
		return NewModuleList([]string{}), nil
	}

	return NewModuleList(l.extractor.Extract(content)), nil
}
