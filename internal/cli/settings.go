package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/hyva-compat/internal/naming"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables overriding flags, e.g.
// HYVA_COMPAT_WORKERS=8.
const EnvPrefix = "HYVA_COMPAT"

const (
	FormatText = "text"
	FormatJSON = "json"
)

// Settings holds the resolved flag and environment values.
type Settings struct {
	Root       string
	Output     string
	Platform   string
	Format     string
	LogLevel   string
	Workers    int
	Yes        bool
	NoProgress bool
	Ignore     []string
}

// addCommonFlags registers the flags shared by every command that reads a
// project.
func addCommonFlags(flags *pflag.FlagSet) {
	flags.String("root", "", "Magento root (default: detected from the working directory)")
	flags.String("platform", naming.DefaultPlatform, "Platform prefix of vendor packages (vendor/<platform>-<name>)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.StringSlice("ignore", nil, "Extra gitignore-style patterns skipped when searching registration.php files")
}

func addAnalyzeFlags(flags *pflag.FlagSet) {
	addCommonFlags(flags)
	flags.StringP("output", "o", "", "Report directory (default <root>/hyva-compatibility-analysis)")
	flags.StringP("format", "f", FormatText, "Summary printed after the run: text or json")
	flags.IntP("workers", "w", 4, "Modules analyzed in parallel")
	flags.BoolP("yes", "y", false, "Overwrite an existing report without asking")
	flags.Bool("no-progress", false, "Disable the progress spinner")
}

// loadSettings merges flags with HYVA_COMPAT_* environment variables.
// Flags set on the command line win.
func loadSettings(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	s := &Settings{
		Root:       v.GetString("root"),
		Output:     v.GetString("output"),
		Platform:   v.GetString("platform"),
		Format:     strings.ToLower(v.GetString("format")),
		LogLevel:   v.GetString("log-level"),
		Workers:    v.GetInt("workers"),
		Yes:        v.GetBool("yes"),
		NoProgress: v.GetBool("no-progress"),
		Ignore:     v.GetStringSlice("ignore"),
	}

	if s.Format == "" {
		s.Format = FormatText
	}
	switch s.Format {
	case FormatText, FormatJSON:
	default:
		return nil, fmt.Errorf("invalid format: %s (must be text or json)", s.Format)
	}

	if s.Workers < 1 {
		s.Workers = 1
	}

	return s, nil
}

// newLogger creates the stderr logger for a run.
func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "hyva-compat",
	}), nil
}
