package config

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `<?php
return [
    'modules' => [
        'Magento_Store' => 1,
        'Magento_Theme' => 1,
        'Acme_Checkout' => 1,
        'Hyva_Theme' => 1,
        'Hyva_AcmeCheckout' => 1,
        'Vendor_Disabled' => 0,
    ],
    'scopes' => [
        'websites' => [],
    ],
];
`

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPHPArrayExtractor_Extract(t *testing.T) {
	e := NewPHPArrayExtractor(ModulesKey)

	got := e.Extract([]byte(sampleConfig))
	require.Equal(t, []string{
		"Magento_Store",
		"Magento_Theme",
		"Acme_Checkout",
		"Hyva_Theme",
		"Hyva_AcmeCheckout",
		"Vendor_Disabled",
	}, got)
}

func TestPHPArrayExtractor_DoubleQuotes(t *testing.T) {
	e := NewPHPArrayExtractor(ModulesKey)

	got := e.Extract([]byte(`return ["modules" => ["Acme_One" => 1, 'Acme_Two' => 1]];`))
	require.Equal(t, []string{"Acme_One", "Acme_Two"}, got)
}

func TestPHPArrayExtractor_Malformed(t *testing.T) {
	e := NewPHPArrayExtractor(ModulesKey)

	require.Empty(t, e.Extract([]byte("<?php return [];")))
	require.Empty(t, e.Extract([]byte("'modules' => []")))
	require.Empty(t, e.Extract(nil))
}

func TestNewModuleList_Partitions(t *testing.T) {
	list := NewModuleList([]string{"Magento_Store", "Acme_Checkout", "Hyva_Theme", "Other_Thing"})

	require.Equal(t, []string{"Acme_Checkout", "Hyva_Theme", "Other_Thing"}, list.Installed)
	require.Equal(t, []string{"Acme_Checkout", "Other_Thing"}, list.Analyzable)
	require.True(t, list.IsInstalled("Hyva_Theme"))
	require.False(t, list.IsInstalled("Magento_Store"))
}

func TestLoader_Load(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/app/etc/config.php", []byte(sampleConfig))

	list, err := NewLoader(fs, WithLogger(quietLogger())).Load("/project")
	require.NoError(t, err)
	require.Equal(t, []string{"Acme_Checkout", "Vendor_Disabled"}, list.Analyzable)
	require.True(t, list.IsInstalled("Hyva_AcmeCheckout"))
}

func TestLoader_MissingConfigIsFatal(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/project")

	_, err := NewLoader(fs, WithLogger(quietLogger())).Load("/project")
	require.True(t, errors.Is(err, ErrConfigNotFound))
}

func TestLoader_UnreadableConfigDegrades(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddUnreadableFile("/project/app/etc/config.php")

	list, err := NewLoader(fs, WithLogger(quietLogger())).Load("/project")
	require.NoError(t, err)
	require.Empty(t, list.All)
	require.Empty(t, list.Analyzable)
}

type staticExtractor []string

func (s staticExtractor) Extract([]byte) []string { return s }

func TestLoader_CustomExtractor(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddFile("/project/app/etc/config.php", []byte("modules: [Acme_Checkout]"))

	list, err := NewLoader(fs,
		WithLogger(quietLogger()),
		WithExtractor(staticExtractor{"Acme_Checkout"}),
	).Load("/project")
	require.NoError(t, err)
	require.Equal(t, []string{"Acme_Checkout"}, list.Analyzable)
}
