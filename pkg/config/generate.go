package config

import (
	"strings"
)

// GenerateConfigContent returns a starter scanwatch.toml: the sample rule
// followed by every built-in default, commented out
func GenerateConfigContent() string {
	var b strings.Builder
	b.WriteString(string(sampleConfig))
	b.WriteString("\n")
	b.WriteString(commentOutConfigValues(DefaultsContent()))
	return b.String()
}

// commentOutConfigValues prefixes every key assignment with "# ", leaving
// blank lines, comments and table headers untouched
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
		default:
			lines[i] = "# " + line
		}
	}
	return strings.Join(lines, "\n")
}
