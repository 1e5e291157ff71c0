package scanwatch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/core"
	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/arthur-debert/scanwatch/pkg/rules"
	"github.com/arthur-debert/scanwatch/pkg/style"
	"github.com/arthur-debert/scanwatch/pkg/template"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check FILE...",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(1),
		Example: "  scanwatch check ~/Scans/invoice.pdf\n  scanwatch check report.pdf scan-001.png",
		RunE:    runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}
	roots, err := cfg.WatchRoots()
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	ruleSet := cfg.RuleSet()
	scope := core.NewScope(roots, ruleSet)
	matcher := rules.NewMatcher(ruleSet)
	out := cmd.OutOrStdout()

	invalid := matcher.InvalidPatterns()
	names := make([]string, 0, len(invalid))
	for name := range invalid {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprint(out, style.WarningStyle.Render(fmt.Sprintf(MsgInvalidPattern, name, invalid[name])))
	}

	data := pterm.TableData{{"FILE", "", "RULE", "COMMAND", "MESSAGE"}}
	for _, arg := range args {
		path, err := paths.Normalize(arg)
		if err != nil {
			return err
		}
		data = append(data, checkRows(path, scope, matcher, ruleSet)...)
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf(MsgErrRenderTable, err)
	}
	fmt.Fprintln(out, table)
	return nil
}

// checkRows evaluates one file the way the engine would once it became ready
func checkRows(path string, scope *core.Scope, matcher *rules.Matcher, all []types.Rule) [][]string {
	candidates := scope.RulesFor(path)
	display := path
	if len(candidates) == 0 && !withinAnyRoot(path, scope.Roots()) {
		candidates = all
		display = fmt.Sprintf("%s (%s)", path, MsgOutsideRoots)
	}

	mc := types.NewMatchContext(path)
	matched := matcher.Match(mc.ShortName, candidates)
	if len(matched) == 0 {
		return [][]string{{display, style.Indicator(false, nil), "", "", MsgNoRulesMatched}}
	}

	rows := make([][]string, 0, len(matched))
	for _, rule := range matched {
		exp := template.ExpandRule(rule, mc)
		rows = append(rows, []string{
			display,
			style.Indicator(true, nil),
			rule.Name,
			commandLine(exp),
			exp.Message,
		})
	}
	return rows
}

func withinAnyRoot(path string, roots []types.WatchRoot) bool {
	for _, root := range roots {
		if paths.IsWithin(root.Path, path) {
			return true
		}
	}
	return false
}

func commandLine(exp template.Expansion) string {
	parts := append([]string{exp.Command}, exp.Args...)
	for i, part := range parts {
		if strings.ContainsAny(part, " \t") {
			parts[i] = fmt.Sprintf("%q", part)
		}
	}
	return strings.Join(parts, " ")
}
