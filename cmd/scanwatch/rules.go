package scanwatch

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/rules"
	"github.com/arthur-debert/scanwatch/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE:    runRules,
	}
}

func runRules(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	roots, err := cfg.WatchRoots()
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	ruleSet := cfg.RuleSet()
	invalid := rules.NewMatcher(ruleSet).InvalidPatterns()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, MsgConfigFileFormat, cfg.File)

	ruleData := pterm.TableData{{"RULE", "ENDS WITH", "STARTS WITH", "FILTER", "COMMAND"}}
	for _, rule := range ruleSet {
		filter := rule.Pattern
		if err, ok := invalid[rule.Name]; ok {
			filter = fmt.Sprintf("%s %s (%v)", style.InvalidIndicator, filter, err)
		}
		suffix := rule.Suffix
		if !rule.HasPredicates() {
			suffix = MsgAnyFile
		}
		ruleData = append(ruleData, []string{
			rule.Name,
			suffix,
			rule.Prefix,
			filter,
			strings.TrimSpace(rule.Command + " " + strings.Join(rule.Args, " ")),
		})
	}

	rootData := pterm.TableData{{"ROOT", "PATH", "RULES"}}
	for _, root := range roots {
		bound := MsgAllRules
		if !root.AllRules() {
			bound = strings.Join(root.Rules, ", ")
		}
		rootData = append(rootData, []string{root.Name, root.Path, bound})
	}

	for _, data := range []pterm.TableData{ruleData, rootData} {
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return fmt.Errorf(MsgErrRenderTable, err)
		}
		fmt.Fprintln(out, table)
		fmt.Fprintln(out)
	}
	return nil
}
