package events

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// addTree calls add for root and, when recursive, for every directory below it.
// Failures below the root are logged and the subtree skipped; only a failure
// on the root itself is returned.
func addTree(fs afero.Fs, root string, recursive bool, add func(dir string) error, logger zerolog.Logger) error {
	if err := add(root); err != nil {
		return err
	}
	if !recursive {
		return nil
	}

	return afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if path == root {
			return nil
		}
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Cannot read path, skipping")
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if err := add(path); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Failed to watch directory, skipping")
		}
		return nil
	})
}
