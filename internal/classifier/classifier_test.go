package classifier

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/models"
	"github.com/stretchr/testify/require"
)

const moduleDir = "/project/app/code/Acme/Checkout"

type installedSet map[string]bool

func (s installedSet) IsInstalled(name string) bool { return s[name] }

func newTestClassifier(fs filesystem.FileSystem, installed ModuleSet) *Classifier {
	return New(fs, "/project", installed, WithLogger(log.New(io.Discard)))
}

func lines(n int) []byte {
	return []byte(strings.Repeat("x\n", n))
}

func TestClassify_Template(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	content := append(lines(11), []byte(strings.Repeat("y", 300-22-1)+"\n")...)
	fs.AddFile(moduleDir+"/view/frontend/templates/button.phtml", content)

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)

	require.Equal(t, []string{moduleDir + "/view/frontend/templates/button.phtml"}, got.Template.Files)
	require.Equal(t, 12, got.Template.LineCount)
	require.Equal(t, int64(300), got.Template.Size)
	require.Equal(t, 0, got.Script.Count())
	require.Equal(t, 0, got.Layout.Count())
	require.True(t, got.HasFrontend())
	require.False(t, got.HasCompatibilityMarker())
	require.Equal(t, models.CompatibilityNotFound, got.CompatibilityModule)
}

func TestClassify_Categories(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(moduleDir+"/view/frontend/web/js/widget.js", lines(4))
	fs.AddFile(moduleDir+"/view/frontend/layout/default.xml", lines(7))
	fs.AddFile(moduleDir+"/view/frontend/requirejs-config.js", lines(2))
	fs.AddFile(moduleDir+"/view/adminhtml/templates/grid.phtml", lines(5))
	fs.AddFile(moduleDir+"/view/adminhtml/web/js/grid.js", lines(5))
	fs.AddFile(moduleDir+"/etc/module.xml", lines(3))
	fs.AddFile(moduleDir+"/view/frontend/web/css/source/_module.less", lines(9))

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)

	require.Equal(t, 2, got.Script.Count())
	require.Equal(t, 6, got.Script.LineCount)
	require.Equal(t, 1, got.Layout.Count())
	require.Equal(t, 7, got.Layout.LineCount)
	require.Equal(t, 0, got.Template.Count())
	require.Equal(t, 4, got.FrontendFiles)
}

func TestClassify_LayoutFileCanBeMarker(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(moduleDir+"/view/frontend/layout/hyva_default.xml", lines(3))

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)

	require.Equal(t, 1, got.Layout.Count())
	require.Equal(t, 3, got.Layout.LineCount)
	require.Len(t, got.MarkerFiles, 1)
}

func TestClassify_FileCountedInTwoTypedCategories(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(moduleDir+"/view/frontend/layout/widget.js", lines(2))
	fs.AddFile(moduleDir+"/view/frontend/layout/override.phtml", lines(1))

	custom := append([]Rule{}, Rules...)
	t.Cleanup(func() { Rules = custom })
	Rules = append(Rules, Rule{
		Category: models.CategoryLayout,
		Match: func(name, rel string) bool {
			return strings.HasSuffix(name, ScriptExt) && strings.Contains(rel, LayoutSegment)
		},
	})

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)

	require.Equal(t, 1, got.Script.Count())
	require.Equal(t, 2, got.Script.LineCount)
	require.Equal(t, 1, got.Layout.Count())
	require.Equal(t, 2, got.Layout.LineCount)
	require.Equal(t, 1, got.Template.Count())
}

func TestClassify_UnreadableFileContributesZero(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddUnreadableFile(moduleDir + "/view/frontend/templates/a.phtml")
	fs.AddFile(moduleDir+"/view/frontend/templates/b.phtml", lines(5))

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)

	require.Equal(t, 2, got.Template.Count())
	require.Equal(t, 5, got.Template.LineCount)
	require.Equal(t, int64(10), got.Template.Size)
}

func TestClassify_Markers(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{"hyva layout", "/view/frontend/hyva_button.xml", true},
		{"tailwind dir", "/view/frontend/tailwind/tailwind.config.js", true},
		{"tailwind anywhere", "/tailwind-source.css", true},
		{"hyva without xml", "/view/frontend/hyva_notes.txt", false},
		{"plain layout", "/view/frontend/layout/default.xml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMockFileSystem()
			fs.AddFile(moduleDir+tt.file, []byte("x\n"))

			got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
			require.NoError(t, err)
			require.Equal(t, tt.want, got.HasCompatibilityMarker())
		})
	}
}

func TestClassify_RootPrefixDoesNotLeakIntoSegments(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	root := "/srv/view/frontend/tailwind/project"
	dir := root + "/app/code/Acme/Checkout"
	fs.AddFile(dir+"/etc/module.xml", lines(1))

	got, err := New(fs, root, nil, WithLogger(log.New(io.Discard))).Classify("Acme_Checkout", dir)
	require.NoError(t, err)
	require.False(t, got.HasFrontend())
	require.False(t, got.HasCompatibilityMarker())
}

func TestClassify_SkipsHiddenEntries(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile(moduleDir+"/.cache/view/frontend/templates/a.phtml", lines(1))
	fs.AddFile(moduleDir+"/view/frontend/templates/.draft.phtml", lines(1))

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)
	require.Equal(t, 0, got.Template.Count())
	require.False(t, got.HasFrontend())
}

func TestClassify_CompatibilityModule(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(moduleDir)

	got, err := newTestClassifier(fs, installedSet{"Hyva_AcmeCheckout": true}).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)
	require.Equal(t, "Hyva_AcmeCheckout", got.CompatibilityModule)

	got, err = newTestClassifier(fs, installedSet{"Hyva_Checkout": true, "Hyva_AcmeCheckout": true}).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)
	require.Equal(t, "Hyva_Checkout", got.CompatibilityModule)

	got, err = newTestClassifier(fs, installedSet{}).Classify("Acme_Checkout", moduleDir)
	require.NoError(t, err)
	require.Equal(t, models.CompatibilityNotFound, got.CompatibilityModule)
}

func TestClassify_MissingModuleDir(t *testing.T) {
	fs := filesystem.NewMockFileSystem()

	_, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", moduleDir)
	require.Error(t, err)
}

func TestClassify_FollowsSymlinkedModuleDir(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "packages", "checkout")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "view", "frontend", "templates"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "view", "frontend", "templates", "a.phtml"), lines(3), 0644))

	link := filepath.Join(root, "vendor", "acme", "module-checkout")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got, err := New(filesystem.NewOSFileSystem(), root, nil, WithLogger(log.New(io.Discard))).Classify("Acme_Checkout", link)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(link, "view", "frontend", "templates", "a.phtml")}, got.Template.Files)
	require.Equal(t, 3, got.Template.LineCount)
	require.Equal(t, 1, got.FrontendFiles)
}

func TestClassify_SymlinkedModuleDirOnMock(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/packages/checkout/view/frontend/web/js/a.js", lines(2))
	fs.AddSymlink("/project/vendor/acme/module-checkout", "/project/packages/checkout")

	got, err := newTestClassifier(fs, nil).Classify("Acme_Checkout", "/project/vendor/acme/module-checkout")
	require.NoError(t, err)
	require.Equal(t, []string{"/project/vendor/acme/module-checkout/view/frontend/web/js/a.js"}, got.Script.Files)
	require.Equal(t, 2, got.Script.LineCount)
}
