package tui

import (
	"errors"

	huh "github.com/charmbracelet/huh"
)

// ConfirmOverwrite asks whether an existing report in dir may be replaced.
// Aborting the prompt counts as "no".
func ConfirmOverwrite(dir string) (bool, error) {
	overwrite := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("A previous report exists. Overwrite it?").
				Description(dir).
				Affirmative("Overwrite").
				Negative("Cancel").
				Value(&overwrite),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return overwrite, nil
}
