// Package notify delivers user-visible notifications for dispatched rules.
//
// The desktop notifier talks to the platform notification service through
// beeep. The console notifier prints to stdout. FallbackNotifier combines the
// two so that a message is never lost when no desktop session is available.
package notify

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/errors"
)

// DefaultTitle is the notification summary used when none is configured
const DefaultTitle = "scanwatch"

// Notification is one message for the user
type Notification struct {
	Title string
	Body  string
	Icon  string
}

// Notifier sends notifications
type Notifier interface {
	Notify(n Notification) error
}

// ConsoleMode controls when messages are also printed to stdout
type ConsoleMode string

const (
	// ConsoleFallback prints only when the desktop notification fails
	ConsoleFallback ConsoleMode = "fallback"
	// ConsoleAlways prints every message
	ConsoleAlways ConsoleMode = "always"
	// ConsoleNever never prints, failures are only returned
	ConsoleNever ConsoleMode = "never"
)

// ParseConsoleMode converts a configuration value into a ConsoleMode
func ParseConsoleMode(s string) (ConsoleMode, error) {
	switch ConsoleMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ConsoleFallback:
		return ConsoleFallback, nil
	case ConsoleAlways:
		return ConsoleAlways, nil
	case ConsoleNever:
		return ConsoleNever, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown console mode %q", s).
		WithDetail("allowed", []string{string(ConsoleFallback), string(ConsoleAlways), string(ConsoleNever)})
}

// FallbackNotifier sends to a primary notifier and prints to the console
// according to its mode
type FallbackNotifier struct {
	primary Notifier
	console Notifier
	mode    ConsoleMode
}

// NewFallbackNotifier combines a primary notifier with a console notifier.
// primary may be nil, in which case only the console is used.
func NewFallbackNotifier(primary, console Notifier, mode ConsoleMode) *FallbackNotifier {
	if mode == "" {
		mode = ConsoleFallback
	}
	return &FallbackNotifier{primary: primary, console: console, mode: mode}
}

// Notify implements Notifier
func (f *FallbackNotifier) Notify(n Notification) error {
	if f.primary == nil {
		if f.mode == ConsoleNever || f.console == nil {
			return nil
		}
		return f.console.Notify(n)
	}

	err := f.primary.Notify(n)

	switch f.mode {
	case ConsoleAlways:
		if cerr := f.console.Notify(n); cerr != nil && err == nil {
			return cerr
		}
	case ConsoleFallback:
		if err != nil {
			if cerr := f.console.Notify(n); cerr != nil {
				return errors.Wrapf(cerr, errors.ErrNotifyFailed, "console fallback failed after: %v", err)
			}
			return nil
		}
	}

	return err
}

// Describe renders a notification as a single line
func Describe(n Notification) string {
	if n.Title == "" {
		return n.Body
	}
	return fmt.Sprintf("%s: %s", n.Title, n.Body)
}
