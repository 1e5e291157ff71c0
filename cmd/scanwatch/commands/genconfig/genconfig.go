package genconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/scanwatch/pkg/config"
	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewCommand creates the genconfig command writing to the real filesystem
func NewCommand() *cobra.Command {
	return newCommand(afero.NewOsFs())
}

func newCommand(fs afero.Fs) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "genconfig [PATH]",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "config",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			target := paths.ConfigFilePath()
			if len(args) == 1 {
				target = paths.ExpandHome(args[0])
			}
			if err := writeConfig(fs, target, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)

	return cmd
}

// writeConfig creates target and its parent directories, refusing to replace a file
func writeConfig(fs afero.Fs, target, content string) error {
	logger := logging.GetLogger("cmd.genconfig")

	exists, err := afero.Exists(fs, target)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot check %s", target)
	}
	if exists {
		return errors.Newf(errors.ErrConfigExists, "configuration file %s already exists", target).
			WithDetail("path", target)
	}

	if err := fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot create %s", filepath.Dir(target))
	}
	if err := afero.WriteFile(fs, target, []byte(content), os.FileMode(0644)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "cannot write %s", target)
	}

	logger.Info().Str("path", target).Msg("Configuration file written")
	return nil
}
