package genconfig

// Message constants
const (
	MsgShort     = "Generate an annotated configuration file"
	MsgLong      = "Output a sample configuration with every default commented out.\n\nWith -w the file is written to PATH, or to the user configuration\ndirectory when PATH is omitted. Existing files are never overwritten."
	MsgExample   = `  scanwatch genconfig                    # Output to stdout
  scanwatch genconfig -w                 # Write to $XDG_CONFIG_HOME/scanwatch/scanwatch.toml
  scanwatch genconfig -w ./scanwatch.toml`
	MsgWritten   = "Wrote %s\n"
	MsgFlagWrite = "Write config to a file instead of stdout"
)
