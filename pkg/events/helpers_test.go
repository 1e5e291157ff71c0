package events

import (
	"testing"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/types"
)

// collectUntil reads events until want returns true or the timeout expires
func collectUntil(t *testing.T, src Source, timeout time.Duration, want func([]types.RawEvent) bool) []types.RawEvent {
	t.Helper()

	var got []types.RawEvent
	deadline := time.After(timeout)
	for {
		select {
		case ev, ok := <-src.Events():
			if !ok {
				return got
			}
			got = append(got, ev)
			if want(got) {
				return got
			}
		case <-deadline:
			t.Fatalf("timed out, events so far: %+v", got)
			return got
		}
	}
}

func hasEvent(path string, kind types.EventKind) func([]types.RawEvent) bool {
	return func(evs []types.RawEvent) bool {
		for _, ev := range evs {
			if ev.Path == path && ev.Kind == kind {
				return true
			}
		}
		return false
	}
}

func kindsFor(evs []types.RawEvent, path string) []types.EventKind {
	var kinds []types.EventKind
	for _, ev := range evs {
		if ev.Path == path {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds
}
