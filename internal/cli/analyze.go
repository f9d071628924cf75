package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jakoblorz/hyva-compat/internal/analysis"
	"github.com/jakoblorz/hyva-compat/internal/classifier"
	"github.com/jakoblorz/hyva-compat/internal/config"
	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/models"
	"github.com/jakoblorz/hyva-compat/internal/report"
	"github.com/jakoblorz/hyva-compat/internal/resolver"
	"github.com/jakoblorz/hyva-compat/internal/tui"
	"github.com/jakoblorz/hyva-compat/internal/workspace"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// AnalyzeCommand handles the analyze command
type AnalyzeCommand struct {
	fs filesystem.FileSystem

	// interactive reports whether prompts and the spinner may be shown
	interactive func() bool

	// confirm asks before an existing report is replaced
	confirm func(dir string) (bool, error)
}

// NewAnalyzeCommand creates a new analyze command
func NewAnalyzeCommand(fs filesystem.FileSystem) *cobra.Command {
	return newAnalyzeCobraCommand(newAnalyzeCommand(fs))
}

func newAnalyzeCobraCommand(cmd *AnalyzeCommand) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:   "analyze [magento-root]",
		Short: "Report modules that need Hyva compatibility work",
		Long: `Reads the module list from app/etc/config.php, locates every third party
and custom module, and reports the modules that ship frontend files but no
Hyva compatibility markers (hyva_*.xml layout files or tailwind sources).

The report is written as report.csv and report.json into the report directory.`,
		Example: `  # Analyze the Magento installation in the current directory (or a parent)
  hyva-compat analyze

  # Analyze another installation and print the report as JSON
  hyva-compat analyze /var/www/magento --format json
  HYVA_COMPAT_ROOT=/var/www/magento hyva-compat analyze --format json

  # Use more workers and skip the overwrite prompt
  HYVA_COMPAT_WORKERS=8 hyva-compat analyze --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: cmd.Run,
	}

	addAnalyzeFlags(cobraCmd.Flags())

	return cobraCmd
}

func newAnalyzeCommand(fs filesystem.FileSystem) *AnalyzeCommand {
	return &AnalyzeCommand{
		fs:          fs,
		interactive: isInteractive,
		confirm:     tui.ConfirmOverwrite,
	}
}

func isInteractive() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())
}

// Run executes the analyze command
func (c *AnalyzeCommand) Run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}

	// Status lines go to stderr when stdout carries JSON.
	status := cmd.OutOrStdout()
	if settings.Format == FormatJSON {
		status = cmd.ErrOrStderr()
	}
	interactive := c.interactive()

	root := settings.Root
	if len(args) == 1 {
		root = args[0]
	}

	fmt.Fprintln(status, tui.TitleStyle.Render("Hyva compatibility analysis"))

	ws, err := openWorkspace(c.fs, root)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			fmt.Fprintln(status, tui.Failure("app/etc/config.php not found. Make sure you're in the Magento 2 root directory or pass the correct path."))
		}
		return err
	}
	fmt.Fprintln(status, tui.Success("Retrieved app/etc/config.php"))

	modules, err := config.NewLoader(c.fs, config.WithLogger(logger)).Load(ws.RootPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(status, tui.Success("Parsed config.php and retrieved module list of third party and custom modules"))

	res := resolver.New(c.fs, ws.RootPath,
		resolver.WithPlatform(settings.Platform),
		resolver.WithIgnorePatterns(settings.Ignore...),
		resolver.WithLogger(logger),
	)
	cls := classifier.New(c.fs, ws.RootPath, modules, classifier.WithLogger(logger))

	var progress tui.Progress = tui.NopProgress{}
	if interactive && !settings.NoProgress {
		progress = tui.StartSpinner(cmd.ErrOrStderr(), "Finding module paths...", len(modules.Analyzable))
	}

	analyzer := analysis.New(res, cls,
		analysis.WithWorkers(settings.Workers),
		analysis.WithProgress(progress.Update),
		analysis.WithLogger(logger),
	)
	records, err := analyzer.Run(cmd.Context(), modules.Analyzable)
	progress.Stop()
	if err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}
	fmt.Fprintln(status, tui.Success(fmt.Sprintf("Found %d/%d module paths", countResolved(records), len(records))))

	r := report.Build(ws.RootPath, records)
	fmt.Fprintln(status, tui.Success(fmt.Sprintf("Filtered Modules. %d may require Hyva compatibility.", len(r.Modules))))
	fmt.Fprintln(status, tui.Success("Analyzed files"))

	dir := ws.ReportDir(settings.Output)
	writer := report.NewWriter(c.fs)
	if writer.Exists(dir) && interactive && !settings.Yes {
		ok, err := c.confirm(dir)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(status, tui.WarningStyle.Render("Report not written; previous report kept in "+dir))
			return nil
		}
	}

	if err := writer.Write(dir, r); err != nil {
		return err
	}

	if err := c.printReport(cmd.OutOrStdout(), settings.Format, r); err != nil {
		return err
	}

	link := dir
	if interactive {
		link = tui.Hyperlink(dir, dir)
	}
	fmt.Fprintf(status, "\nResults have been written to the directory:\n %s\n", link)

	return nil
}

func (c *AnalyzeCommand) printReport(w io.Writer, format string, r *report.Report) error {
	if format == FormatJSON {
		return report.WriteJSON(w, r)
	}
	fmt.Fprintln(w)
	return report.WriteText(w, r)
}

// openWorkspace uses root when set and otherwise detects the project root
// from the working directory.
func openWorkspace(fs filesystem.FileSystem, root string) (*workspace.Workspace, error) {
	ws := workspace.New(fs)
	if root != "" {
		return ws, ws.Open(root)
	}
	return ws, ws.Detect()
}

func countResolved(records []*models.ModuleRecord) int {
	n := 0
	for _, record := range records {
		if record.Resolved() {
			n++
		}
	}
	return n
}
