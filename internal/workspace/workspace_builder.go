package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/hyva-compat/internal/filesystem"
)

// ProjectBuilder helps create test Magento projects
type ProjectBuilder struct {
	fs      *filesystem.MockFileSystem
	root    string
	modules []ModuleConfig
}

// ModuleConfig represents a module listed in config.php
type ModuleConfig struct {
	Name    string
	Path    string
	Enabled bool
}

// NewProjectBuilder creates a new ProjectBuilder
func NewProjectBuilder(root string) *ProjectBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.AddDir(filepath.Join(root, "app", "code"))
	fs.AddDir(filepath.Join(root, "vendor"))
	fs.SetCurrentDir(root)

	return &ProjectBuilder{
		fs:   fs,
		root: root,
	}
}

// AddModule lists name in config.php and, when path is not empty, creates
// its directory (relative to the root) with a registration.php.
func (pb *ProjectBuilder) AddModule(name, path string) *ProjectBuilder {
	pb.modules = append(pb.modules, ModuleConfig{
		Name:    name,
		Path:    path,
		Enabled: true,
	})

	if path != "" {
		registration := fmt.Sprintf(
			"<?php\n\\Magento\\Framework\\Component\\ComponentRegistrar::register(\n"+
				"    \\Magento\\Framework\\Component\\ComponentRegistrar::MODULE,\n"+
				"    '%s',\n    __DIR__\n);\n", name)
		pb.fs.AddFile(filepath.Join(pb.root, path, "registration.php"), []byte(registration))
	}

	return pb
}

// DisableModule lists name in config.php with a 0 flag.
func (pb *ProjectBuilder) DisableModule(name string) *ProjectBuilder {
	for i, m := range pb.modules {
		if m.Name == name {
			pb.modules[i].Enabled = false
		}
	}
	return pb
}

// AddFile adds a file relative to the project root
func (pb *ProjectBuilder) AddFile(path, content string) *ProjectBuilder {
	pb.fs.AddFile(filepath.Join(pb.root, path), []byte(content))
	return pb
}

// AddModuleFile adds a file relative to a module's directory
func (pb *ProjectBuilder) AddModuleFile(name, path, content string) *ProjectBuilder {
	for _, m := range pb.modules {
		if m.Name == name && m.Path != "" {
			pb.fs.AddFile(filepath.Join(pb.root, m.Path, path), []byte(content))
			break
		}
	}
	return pb
}

// Build writes app/etc/config.php and returns the filesystem
func (pb *ProjectBuilder) Build() *filesystem.MockFileSystem {
	var b strings.Builder
	b.WriteString("<?php\nreturn [\n    'modules' => [\n")
	for _, m := range pb.modules {
		flag := 1
		if !m.Enabled {
			flag = 0
		}
		fmt.Fprintf(&b, "        '%s' => %d,\n", m.Name, flag)
	}
	b.WriteString("    ],\n];\n")

	pb.fs.AddFile(filepath.Join(pb.root, "app", "etc", "config.php"), []byte(b.String()))

	return pb.fs
}

// FileSystem returns the mock filesystem
func (pb *ProjectBuilder) FileSystem() *filesystem.MockFileSystem {
	return pb.fs
}
