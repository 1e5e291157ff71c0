package scanwatch

import (
	"fmt"

	"github.com/arthur-debert/scanwatch/cmd/scanwatch/commands/genconfig"
	"github.com/arthur-debert/scanwatch/internal/version"
	"github.com/arthur-debert/scanwatch/pkg/config"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		dryRun     bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:     "scanwatch",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if !stdoutIsTerminal() {
				pterm.DisableStyling()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		// The bare command watches
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", MsgFlagConfig)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "config",
		Title: "CONFIGURATION:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(genconfig.NewCommand())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig loads the configuration named by --config or found on the search path
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(explicit)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", cfg.File).Int("rules", len(cfg.Rules)).Msg("Configuration loaded")
	return cfg, nil
}

func isDryRun(cmd *cobra.Command) bool {
	dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	return dryRun
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return fmt.Errorf(MsgErrUnknownShell, args[0])
		},
	}
}
