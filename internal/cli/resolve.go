package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/hyva-compat/internal/filesystem"
	"github.com/jakoblorz/hyva-compat/internal/models"
	"github.com/jakoblorz/hyva-compat/internal/naming"
	"github.com/jakoblorz/hyva-compat/internal/resolver"
	"github.com/jakoblorz/hyva-compat/internal/tui"
	"github.com/spf13/cobra"
)

// ResolveCommand handles the resolve command
type ResolveCommand struct {
	fs         filesystem.FileSystem
	candidates bool
}

// NewResolveCommand creates a new resolve command
func NewResolveCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ResolveCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "resolve <Module_Name>...",
		Short: "Show where modules are located",
		Long: `Resolves module names to directories the same way analyze does: the
app/code and vendor naming conventions first, then registration.php files.`,
		Example: `  hyva-compat resolve Acme_Checkout
  hyva-compat resolve --candidates --root /var/www/magento Acme_Checkout Other_Module`,
		Args: cobra.MinimumNArgs(1),
		RunE: cmd.Run,
	}

	addCommonFlags(cobraCmd.Flags())
	cobraCmd.Flags().BoolVar(&cmd.candidates, "candidates", false, "Also print the candidate paths that are probed")

	return cobraCmd
}

// Run executes the resolve command
func (c *ResolveCommand) Run(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), settings.LogLevel)
	if err != nil {
		return err
	}

	ws, err := openWorkspace(c.fs, settings.Root)
	if err != nil {
		return err
	}

	res := resolver.New(c.fs, ws.RootPath,
		resolver.WithPlatform(settings.Platform),
		resolver.WithIgnorePatterns(settings.Ignore...),
		resolver.WithLogger(logger),
	)
	out := cmd.OutOrStdout()

	missing := 0
	for _, identifier := range args {
		resolution, err := res.Resolve(identifier)
		switch {
		case err == nil:
			fmt.Fprintf(out, "%s\t%s\t(%s)\n", identifier, resolution.Path, resolution.Via)
		case errors.Is(err, resolver.ErrNotFound):
			missing++
			fmt.Fprintf(out, "%s\t%s\n", identifier, models.NotFoundPath)
		default:
			return err
		}

		if c.candidates {
			for _, candidate := range naming.Candidates(identifier, settings.Platform) {
				if candidate.Partial {
					continue
				}
				for _, searchRoot := range res.SearchRoots() {
					path := filepath.Join(searchRoot, filepath.FromSlash(candidate.Path))
					fmt.Fprintf(out, "  %s %s\n", tui.SubtleStyle.Render(string(candidate.Layout)), path)
				}
			}
		}
	}

	if missing > 0 {
		return fmt.Errorf("%d of %d module(s) not found", missing, len(args))
	}
	return nil
}
