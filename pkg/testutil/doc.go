// Package testutil provides fakes for testing scanwatch components without
// a real filesystem watcher or desktop session.
//
// Key components:
//   - FakeSource: an events.Source fed by the test
//   - RecordingLauncher / MockLauncher: dispatcher.Launcher fakes
//   - RecordingNotifier / MockNotifier: notify.Notifier fakes
//   - Event helpers for building created/closed-write cycles
package testutil
