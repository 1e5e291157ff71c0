package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/completion"
	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/events"
	"github.com/arthur-debert/scanwatch/pkg/notify"
)

// Validate checks the configuration and reports every problem at once.
// Filters are not compiled here; an invalid filter only disables its rule.
func (c *Config) Validate() error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Path == "" && len(c.Roots) == 0 {
		addf("no watch path configured: set path or add a [roots.<name>] table")
	}
	for name, root := range c.Roots {
		if strings.TrimSpace(root.Path) == "" {
			addf("root %s has no path", name)
		}
		for _, ruleName := range root.Rules {
			if _, ok := c.Rules[ruleName]; !ok {
				addf("root %s refers to unknown rule %s", name, ruleName)
			}
		}
	}

	if len(c.Rules) == 0 {
		addf("no rules configured: add a [rules.<name>] table")
	}
	for _, name := range c.RuleNames() {
		if strings.TrimSpace(c.Rules[name].Cmd) == "" {
			addf("rule %s has no cmd", name)
		}
	}

	if _, err := events.ParseBackend(c.Watch.Backend); err != nil {
		addf("watch.backend: %s", message(err))
	}
	if _, err := completion.ParsePolicy(c.Watch.Policy); err != nil {
		addf("watch.policy: %s", message(err))
	}
	if c.Watch.Settle < 0 {
		addf("watch.settle must not be negative")
	}
	if c.Watch.Buffer < 0 {
		addf("watch.buffer must not be negative")
	}
	if _, err := notify.ParseConsoleMode(c.Notify.Console); err != nil {
		addf("notify.console: %s", message(err))
	}

	if len(problems) == 0 {
		return nil
	}

	source := c.File
	if source == "" {
		source = "configuration"
	}
	return errors.Newf(errors.ErrConfigValid, "invalid configuration in %s: %s", source, strings.Join(problems, "; ")).
		WithDetail("problems", problems)
}

func message(err error) string {
	var swErr *errors.ScanwatchError
	if stderrors.As(err, &swErr) {
		return swErr.Message
	}
	return err.Error()
}
