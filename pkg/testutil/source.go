package testutil

import (
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/types"
)

// FakeSource is an in-memory event source. Tests push events and errors,
// then Close it to end the consumer loop.
type FakeSource struct {
	events chan types.RawEvent
	errs   chan error
	roots  []string

	once   sync.Once
	closed bool
	mu     sync.Mutex
}

// NewFakeSource creates a source reporting the given roots
func NewFakeSource(roots ...string) *FakeSource {
	return &FakeSource{
		events: make(chan types.RawEvent, 64),
		errs:   make(chan error, 16),
		roots:  roots,
	}
}

// Events implements events.Source
func (f *FakeSource) Events() <-chan types.RawEvent { return f.events }

// Errors implements events.Source
func (f *FakeSource) Errors() <-chan error { return f.errs }

// Roots implements events.Source
func (f *FakeSource) Roots() []string { return f.roots }

// Close implements events.Source
func (f *FakeSource) Close() error {
	f.once.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		close(f.events)
		close(f.errs)
	})
	return nil
}

// Closed reports whether Close was called
func (f *FakeSource) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Push queues events for the consumer
func (f *FakeSource) Push(events ...types.RawEvent) {
	for _, ev := range events {
		f.events <- ev
	}
}

// PushError queues a transport error
func (f *FakeSource) PushError(err error) {
	f.errs <- err
}

// Created builds a Created event
func Created(path string) types.RawEvent {
	return types.RawEvent{Path: path, Kind: types.EventCreated, Op: "CREATE"}
}

// ClosedWrite builds a ClosedWrite event
func ClosedWrite(path string) types.RawEvent {
	return types.RawEvent{Path: path, Kind: types.EventClosedWrite, Op: "CLOSE_WRITE"}
}

// Drop builds the Created then ClosedWrite pair produced by writing a new file
func Drop(path string) []types.RawEvent {
	return []types.RawEvent{Created(path), ClosedWrite(path)}
}
