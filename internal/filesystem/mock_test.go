package filesystem

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_WalkDirSortedAndSkipDir(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/root/b/file.txt", []byte("b"))
	mfs.AddFile("/root/a/skip/file.txt", []byte("skipped"))
	mfs.AddFile("/root/a/keep.txt", []byte("a"))

	var visited []string
	err := mfs.WalkDir("/root", func(path string, d fs.DirEntry, err error) error {
		require.NoError(t, err)
		if d.IsDir() && d.Name() == "skip" {
			return filepath.SkipDir
		}
		visited = append(visited, path)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"/root",
		"/root/a",
		"/root/a/keep.txt",
		"/root/b",
		"/root/b/file.txt",
	}, visited)
}

func TestMockFileSystem_WalkDirMissingRoot(t *testing.T) {
	mfs := NewMockFileSystem()

	err := mfs.WalkDir("/missing", func(path string, d fs.DirEntry, err error) error {
		return err
	})
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMockFileSystem_UnreadableFile(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddUnreadableFile("/root/secret.phtml")

	require.True(t, mfs.Exists("/root/secret.phtml"))

	_, err := mfs.ReadFile("/root/secret.phtml")
	require.ErrorIs(t, err, fs.ErrPermission)

	_, err = mfs.Stat("/root/secret.phtml")
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestMockFileSystem_WriteFileRequiresParent(t *testing.T) {
	mfs := NewMockFileSystem()

	err := mfs.WriteFile("/out/report.csv", []byte("x"), 0644)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.MkdirAll("/out", 0755))
	require.NoError(t, mfs.WriteFile("/out/report.csv", []byte("x"), 0644))

	data, err := mfs.ReadFile("/out/report.csv")
	require.NoError(t, err)
	require.Equal(t, "x", string(data))
}

func TestMockFileSystem_Symlink(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/root/packages/checkout/registration.php", []byte("Acme_Checkout"))
	mfs.AddSymlink("/root/vendor/acme/checkout", "/root/packages/checkout")

	require.True(t, mfs.Exists("/root/vendor/acme/checkout"))

	data, err := mfs.ReadFile("/root/vendor/acme/checkout/registration.php")
	require.NoError(t, err)
	require.Equal(t, "Acme_Checkout", string(data))

	resolved, err := mfs.EvalSymlinks("/root/vendor/acme/checkout")
	require.NoError(t, err)
	require.Equal(t, "/root/packages/checkout", resolved)

	_, err = mfs.EvalSymlinks("/root/vendor/acme/missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}
