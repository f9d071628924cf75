package workspace

import (
	"path/filepath"

	"github.com/jakoblorz/hyva-compat/internal/filesystem"
)

// findDirUp returns the first directory, starting at startDir and walking
// towards the filesystem root, that contains rel.
func findDirUp(fs filesystem.FileSystem, startDir, rel string) (string, bool) {
	dir := filepath.Clean(startDir)

	for {
		if fs.Exists(filepath.Join(dir, filepath.FromSlash(rel))) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
