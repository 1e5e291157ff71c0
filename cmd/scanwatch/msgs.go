package scanwatch

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Watch directories and act on newly written files"
	MsgWatchShort      = "Watch the configured roots until interrupted"
	MsgCheckShort      = "Show which rules match the given file names"
	MsgRulesShort      = "List configured rules and watch roots"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice     = "DRY RUN MODE - commands are printed, not launched"
	MsgWatchingFormat   = "Watching %s\n"
	MsgStoppedFormat    = "Stopped after %d ready file(s), %d dispatched\n"
	MsgNoRulesMatched   = "no rule matched"
	MsgOutsideRoots     = "outside watch roots"
	MsgInvalidPattern   = "invalid filter for rule %q: %v\n"
	MsgAllRules         = "(all)"
	MsgAnyFile          = "(any file)"
	MsgConfigFileFormat = "# %s\n"

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrOpenSource   = "failed to start watching: %w"
	MsgErrEngine       = "watch loop failed: %w"
	MsgErrRenderTable  = "failed to render table: %w"
	MsgErrUnknownShell = "unsupported shell %q (bash, zsh, fish, powershell)"
	MsgErrEncode       = "failed to encode configuration: %w"
	MsgErrFormat       = "unknown format %q (toml, yaml, json)"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Print commands instead of launching them"
	MsgFlagConfig  = "Path to the configuration file"
	MsgFlagFormat  = "Output format: toml, yaml or json"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/check-long.txt
	msgCheckLongRaw string
	MsgCheckLong    = strings.TrimSpace(msgCheckLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
