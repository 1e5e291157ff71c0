package scanwatch

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// stdoutIsTerminal decides whether help and tables carry styling
func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatBold(s string) string {
	if stdoutIsTerminal() {
		return pterm.Bold.Sprint(s)
	}
	return s
}

// initTemplateFormatting registers the functions used by the usage template
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"bold":      formatBold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return formatBold(strings.ToUpper(s)) },
	})
}
