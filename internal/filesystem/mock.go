package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrPermission is returned by the mock for files registered as unreadable.
var ErrPermission = fs.ErrPermission

// MockFileSystem provides an in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	links      map[string]string
	currentDir string
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content    []byte
	Mode       fs.FileMode
	ModTime    time.Time
	IsDir      bool
	Unreadable bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		links:      make(map[string]string),
		currentDir: "/project",
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddUnreadableFile adds a file whose contents cannot be read or stat'ed.
// It still shows up in WalkDir.
func (mfs *MockFileSystem) AddUnreadableFile(path string) {
	mfs.AddFile(path, nil)
	mfs.files[filepath.Clean(path)].Unreadable = true
}

// AddDir adds a directory to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

// AddSymlink makes link point at target. Reads, Stat and Exists follow the
// link; WalkDir does not descend into it, like filepath.WalkDir.
func (mfs *MockFileSystem) AddSymlink(link, target string) {
	cleanLink := filepath.Clean(link)
	mfs.links[cleanLink] = filepath.Clean(target)
	mfs.addParents(cleanLink)
}

// resolve follows the symlinks registered on path or any of its parents.
func (mfs *MockFileSystem) resolve(path string) string {
	path = filepath.Clean(path)
	for i := 0; i < 40; i++ {
		changed := false
		for link, target := range mfs.links {
			if path == link {
				path = target
				changed = true
				break
			}
			if strings.HasPrefix(path, link+string(filepath.Separator)) {
				path = target + path[len(link):]
				changed = true
				break
			}
		}
		if !changed {
			return path
		}
	}
	return path
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[mfs.resolve(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	if file.Unreadable {
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrPermission}
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)

	dir := filepath.Dir(cleanPath)
	if dir != "." && dir != "/" {
		if _, exists := mfs.files[dir]; !exists {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if file, exists := mfs.files[cleanPath]; exists && !file.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	mfs.AddDir(cleanPath)
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	file, exists := mfs.files[mfs.resolve(path)]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	if file.Unreadable {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: ErrPermission}
	}
	return mfs.info(path, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[mfs.resolve(path)]
	return exists
}

func (mfs *MockFileSystem) EvalSymlinks(path string) (string, error) {
	resolved := mfs.resolve(path)
	if _, exists := mfs.files[resolved]; !exists {
		return "", &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return resolved, nil
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

// WalkDir visits root and its descendants sorted by path. Returning
// filepath.SkipDir for a directory skips everything below it.
func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)

	if _, exists := mfs.files[cleanRoot]; !exists {
		return fn(cleanRoot, nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist})
	}

	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if underAny(p, skipped) {
			continue
		}

		file := mfs.files[p]
		entry := &mockDirEntry{info: mfs.info(p, file)}

		if err := fn(p, entry, nil); err != nil {
			if errors.Is(err, filepath.SkipDir) {
				if file.IsDir {
					skipped = append(skipped, p)
					continue
				}
				return nil
			}
			if errors.Is(err, filepath.SkipAll) {
				return nil
			}
			return err
		}
	}

	return nil
}

func (mfs *MockFileSystem) info(path string, file *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}
}

func underAny(path string, dirs []string) bool {
	for _, dir := range dirs {
		if strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = dir
}

// Tree returns every path in the mock, sorted, with a trailing slash on
// directories (for debugging failed tests).
func (mfs *MockFileSystem) Tree() string {
	var paths []string
	for p, file := range mfs.files {
		if file.IsDir {
			p += "/"
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, p := range paths {
		fmt.Fprintln(&b, p)
	}
	return b.String()
}
