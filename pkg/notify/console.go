package notify

import (
	"io"
	"os"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/pterm/pterm"
)

// ConsoleNotifier prints notifications as info lines
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier creates a notifier writing to out, stdout when nil
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{out: out}
}

// Notify implements Notifier
func (c *ConsoleNotifier) Notify(n Notification) error {
	line := pterm.Info.Sprintln(n.Body)
	if _, err := io.WriteString(c.out, line); err != nil {
		return errors.Wrap(err, errors.ErrNotifyFailed, "failed to write notification to console")
	}
	return nil
}
