package scanwatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			data, err := encodeDocument(cfg.Document(), format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format != "json" {
				fmt.Fprintf(out, MsgConfigFileFormat, cfg.File)
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"toml", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// encodeDocument renders the effective configuration document
func encodeDocument(doc map[string]interface{}, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "toml":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf(MsgErrEncode, err)
		}
		return buf.Bytes(), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf(MsgErrEncode, err)
		}
		return data, nil
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf(MsgErrEncode, err)
		}
		return append(data, '\n'), nil
	}
	return nil, fmt.Errorf(MsgErrFormat, format)
}
