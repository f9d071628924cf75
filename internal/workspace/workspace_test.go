package workspace

import (
	"errors"
	"testing"

	"github.com/jakoblorz/hyva-compat/internal/config"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceDetect_FromSubdirectory(t *testing.T) {
	fs := NewProjectBuilder("/srv/shop").Build()
	fs.AddDir("/srv/shop/tools/audit")
	fs.SetCurrentDir("/srv/shop/tools/audit")

	ws := New(fs)
	require.NoError(t, ws.Detect())
	require.Equal(t, "/srv/shop", ws.RootPath)
	require.Equal(t, "/srv/shop/app/etc/config.php", ws.ConfigPath())
}

func TestWorkspaceDetect_NotFound(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/tmp/elsewhere")
	fs.SetCurrentDir("/tmp/elsewhere")

	err := New(fs).Detect()
	require.True(t, errors.Is(err, config.ErrConfigNotFound))
}

func TestWorkspaceOpen(t *testing.T) {
	fs := NewProjectBuilder("/srv/shop").Build()
	fs.AddDir("/srv")
	fs.SetCurrentDir("/srv")

	ws := New(fs)
	require.NoError(t, ws.Open("shop"))
	require.Equal(t, "/srv/shop", ws.RootPath)

	require.ErrorIs(t, New(fs).Open("/srv/other"), config.ErrConfigNotFound)
}

func TestWorkspaceReportDir(t *testing.T) {
	ws := &Workspace{RootPath: "/srv/shop"}

	require.Equal(t, "/srv/shop/hyva-compatibility-analysis", ws.ReportDir(""))
	require.Equal(t, "/srv/shop/reports", ws.ReportDir("reports"))
	require.Equal(t, "/tmp/out", ws.ReportDir("/tmp/out/"))
}

func TestProjectBuilder_Build(t *testing.T) {
	fs := NewProjectBuilder("/p").
		AddModule("Acme_Checkout", "app/code/Acme/Checkout").
		AddModule("Magento_Store", "").
		DisableModule("Magento_Store").
		AddModuleFile("Acme_Checkout", "view/frontend/templates/a.phtml", "x\n").
		Build()

	list, err := config.NewLoader(fs).Load("/p")
	require.NoError(t, err)
	require.Equal(t, []string{"Acme_Checkout", "Magento_Store"}, list.All)

	require.True(t, fs.Exists("/p/app/code/Acme/Checkout/registration.php"))
	require.True(t, fs.Exists("/p/app/code/Acme/Checkout/view/frontend/templates/a.phtml"))

	data, err := fs.ReadFile("/p/app/etc/config.php")
	require.NoError(t, err)
	require.Contains(t, string(data), "'Magento_Store' => 0,")
}
