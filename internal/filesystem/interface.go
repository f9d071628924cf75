package filesystem

import (
	"io/fs"
)

// FileSystem abstracts the read-mostly file operations used while scanning a
// project tree, so resolution and classification can run against a mock.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)

	// EvalSymlinks returns path with every symbolic link resolved.
	EvalSymlinks(path string) (string, error)

	// WalkDir visits root and everything below it in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error
}
