package testutil

import (
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/notify"
	"github.com/stretchr/testify/mock"
)

// RecordingNotifier records every notification
type RecordingNotifier struct {
	// Err is returned from every Notify call
	Err error

	mu   sync.Mutex
	sent []notify.Notification
}

// Notify implements notify.Notifier
func (r *RecordingNotifier) Notify(n notify.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return r.Err
}

// Sent returns every recorded notification in order
func (r *RecordingNotifier) Sent() []notify.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Notification(nil), r.sent...)
}

// Bodies returns the body of every recorded notification
func (r *RecordingNotifier) Bodies() []string {
	var bodies []string
	for _, n := range r.Sent() {
		bodies = append(bodies, n.Body)
	}
	return bodies
}

// MockNotifier is a testify mock for notify.Notifier
type MockNotifier struct {
	mock.Mock
}

// Notify implements notify.Notifier
func (m *MockNotifier) Notify(n notify.Notification) error {
	return m.Called(n).Error(0)
}
