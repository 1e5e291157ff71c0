// Package dispatcher hands matched rules off to external tools.
//
// Dispatch launches the rule's expanded command fire-and-forget and then
// sends the expanded message as a notification. Neither a failed launch nor
// a failed notification is fatal: both are reported in the Outcome and
// logged, and the caller moves on to the next rule.
package dispatcher

import (
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/notify"
	"github.com/arthur-debert/scanwatch/pkg/template"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures notification defaults
type Options struct {
	// Title is the notification summary, notify.DefaultTitle when empty
	Title string
	// DefaultIcon is used for rules without an icon
	DefaultIcon string
}

// Outcome describes one dispatch attempt
type Outcome struct {
	Rule      string
	Command   string
	Args      []string
	Message   string
	PID       int
	LaunchErr error
	NotifyErr error
}

// Launched reports whether the process start was requested successfully
func (o Outcome) Launched() bool {
	return o.LaunchErr == nil
}

// Dispatcher launches commands and sends notifications for matched rules
type Dispatcher struct {
	launcher Launcher
	notifier notify.Notifier
	opts     Options
	logger   zerolog.Logger
}

// New creates a dispatcher. A nil notifier disables notifications.
func New(launcher Launcher, notifier notify.Notifier, opts Options) *Dispatcher {
	if opts.Title == "" {
		opts.Title = notify.DefaultTitle
	}
	return &Dispatcher{
		launcher: launcher,
		notifier: notifier,
		opts:     opts,
		logger:   logging.GetLogger("dispatcher"),
	}
}

// Dispatch runs one rule's action for one file
func (d *Dispatcher) Dispatch(rule types.Rule, exp template.Expansion) Outcome {
	out := Outcome{
		Rule:    rule.Name,
		Command: exp.Command,
		Args:    exp.Args,
		Message: exp.Message,
	}

	d.logger.Info().
		Str("rule", rule.Name).
		Str("command", exp.Command).
		Strs("args", exp.Args).
		Msg("Dispatching action")

	res := d.launcher.Launch(exp.Command, exp.Args)
	out.PID = res.PID
	out.LaunchErr = res.Err

	if res.Err != nil {
		d.logger.Error().
			Err(res.Err).
			Str("rule", rule.Name).
			Str("command", exp.Command).
			Msg("Failed to launch action")
	} else {
		d.logger.Info().
			Str("rule", rule.Name).
			Int("pid", res.PID).
			Msg("Action launched")
	}

	out.NotifyErr = d.Notify(exp.Message, rule.Icon)
	return out
}

// Notify sends a message with the dispatcher's title.
// An empty icon falls back to the configured default icon.
func (d *Dispatcher) Notify(message, icon string) error {
	if d.notifier == nil {
		return nil
	}
	if icon == "" {
		icon = d.opts.DefaultIcon
	}

	n := notify.Notification{
		Title: d.opts.Title,
		Body:  message,
		Icon:  icon,
	}
	err := d.notifier.Notify(n)
	if err != nil {
		d.logger.Warn().
			Err(err).
			Str("notification", notify.Describe(n)).
			Msg("Notification failed")
	}
	return err
}
