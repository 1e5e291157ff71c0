package testutil

import (
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/dispatcher"
	"github.com/stretchr/testify/mock"
)

// RecordingLauncher records every launch and never spawns anything
type RecordingLauncher struct {
	// LaunchFunc, when set, decides the result for each launch
	LaunchFunc func(command string, args []string) dispatcher.LaunchResult

	mu       sync.Mutex
	launches []dispatcher.Launch
}

// Launch implements dispatcher.Launcher
func (r *RecordingLauncher) Launch(command string, args []string) dispatcher.LaunchResult {
	r.mu.Lock()
	r.launches = append(r.launches, dispatcher.Launch{Command: command, Args: append([]string(nil), args...)})
	r.mu.Unlock()

	if r.LaunchFunc != nil {
		return r.LaunchFunc(command, args)
	}
	return dispatcher.LaunchResult{PID: 4242}
}

// Launches returns every recorded launch in order
func (r *RecordingLauncher) Launches() []dispatcher.Launch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dispatcher.Launch(nil), r.launches...)
}

// CommandLines returns every launch rendered as a command line
func (r *RecordingLauncher) CommandLines() []string {
	var lines []string
	for _, l := range r.Launches() {
		lines = append(lines, l.String())
	}
	return lines
}

// MockLauncher is a testify mock for dispatcher.Launcher
type MockLauncher struct {
	mock.Mock
}

// Launch implements dispatcher.Launcher
func (m *MockLauncher) Launch(command string, args []string) dispatcher.LaunchResult {
	ret := m.Called(command, args)
	return ret.Get(0).(dispatcher.LaunchResult)
}
