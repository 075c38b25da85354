package cli

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-field/internal/config"
)

// loadConfig returns the defaults, the file at path, or a file picked in a
// dialog. Cancelling the dialog keeps the defaults.
func loadConfig(path string, pick bool) (config.Config, error) {
	if pick {
		picked, err := pickConfigFile()
		if err != nil {
			return config.Config{}, err
		}
		if picked != "" {
			path = picked
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func pickConfigFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Particle Field Config"),
		zenity.FileFilters{{
			Name:     "TOML",
			Patterns: []string{"*.toml"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
