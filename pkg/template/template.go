// Package template expands the placeholders used in rule messages and arguments.
//
// Recognised placeholders:
//
//	{filename}        absolute path of the ready file
//	{filename:short}  base name of the ready file
//	{x} {y} {z}       the rule's x, y and z variables
//
// Expansion is a single literal pass. Replacement text is never rescanned,
// and anything that is not exactly one of the placeholders above is left as is.
package template

import (
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/types"
)

// Placeholders
const (
	PlaceholderFilename      = "{filename}"
	PlaceholderFilenameShort = "{filename:short}"
	PlaceholderX             = "{x}"
	PlaceholderY             = "{y}"
	PlaceholderZ             = "{z}"
)

// DefaultMessage is the notification text for rules without a msg
const DefaultMessage = "processing '{filename:short}'"

// Vars holds the substitution values for one expansion
type Vars struct {
	Filename string
	Short    string
	X        string
	Y        string
	Z        string
}

// VarsFor builds the variables for a rule applied to a ready file
func VarsFor(rule types.Rule, mc types.MatchContext) Vars {
	return Vars{
		Filename: mc.Path,
		Short:    mc.ShortName,
		X:        rule.X,
		Y:        rule.Y,
		Z:        rule.Z,
	}
}

func (v Vars) replacer() *strings.Replacer {
	// Old strings are tried in argument order at each position, so
	// {filename:short} must precede {filename}. Output is never rescanned.
	return strings.NewReplacer(
		PlaceholderFilenameShort, v.Short,
		PlaceholderFilename, v.Filename,
		PlaceholderX, v.X,
		PlaceholderY, v.Y,
		PlaceholderZ, v.Z,
	)
}

// Expand substitutes every placeholder in text. It never fails.
func Expand(text string, vars Vars) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return vars.replacer().Replace(text)
}

// Expansion is a rule's message and command line with placeholders substituted
type Expansion struct {
	Command string
	Args    []string
	Message string
}

// ExpandRule expands the rule's message and each of its arguments independently.
// The command name itself is taken literally. A rule without a message gets
// DefaultMessage.
func ExpandRule(rule types.Rule, mc types.MatchContext) Expansion {
	r := VarsFor(rule, mc).replacer()

	args := make([]string, len(rule.Args))
	for i, arg := range rule.Args {
		args[i] = r.Replace(arg)
	}

	message := rule.Message
	if message == "" {
		message = DefaultMessage
	}

	return Expansion{
		Command: rule.Command,
		Args:    args,
		Message: r.Replace(message),
	}
}
