package notify

import (
	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/gen2brain/beeep"
)

// DesktopNotifier posts notifications to the desktop notification service
type DesktopNotifier struct {
	send func(title, message string, icon any) error
}

// NewDesktopNotifier creates a notifier backed by the platform service
func NewDesktopNotifier() *DesktopNotifier {
	beeep.AppName = DefaultTitle
	return &DesktopNotifier{send: beeep.Notify}
}

// Notify implements Notifier
func (d *DesktopNotifier) Notify(n Notification) error {
	logger := logging.GetLogger("notify.desktop")

	title := n.Title
	if title == "" {
		title = DefaultTitle
	}

	logger.Debug().
		Str("title", title).
		Str("body", n.Body).
		Str("icon", n.Icon).
		Msg("Sending desktop notification")

	if err := d.send(title, n.Body, n.Icon); err != nil {
		return errors.Wrap(err, errors.ErrNotifyFailed, "desktop notification failed").
			WithDetail("title", title)
	}
	return nil
}
