// Test Type: Unit Test
// Description: Tests for the settle prober - synthesised close-write on stable files

package events

import (
	"testing"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quiet = 30 * time.Millisecond

func newTestSettler(t *testing.T) (*settler, afero.Fs, chan types.RawEvent) {
	t.Helper()
	fs := afero.NewMemMapFs()
	out := make(chan types.RawEvent, 16)
	s := newSettler(fs, quiet, func(ev types.RawEvent) { out <- ev })
	t.Cleanup(s.stop)
	return s, fs, out
}

func waitEvent(t *testing.T, out <-chan types.RawEvent) types.RawEvent {
	t.Helper()
	select {
	case ev := <-out:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for settled event")
		return types.RawEvent{}
	}
}

func TestSettler_EmitsOnceStable(t *testing.T) {
	s, fs, out := newTestSettler(t)
	require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("%PDF-1.7"), 0644))

	s.touch("/watch/x.pdf")

	ev := waitEvent(t, out)
	assert.Equal(t, "/watch/x.pdf", ev.Path)
	assert.Equal(t, types.EventClosedWrite, ev.Kind)
	assert.Equal(t, 0, s.size())

	select {
	case extra := <-out:
		t.Fatalf("unexpected second event %+v", extra)
	case <-time.After(4 * quiet):
	}
}

func TestSettler_WaitsWhileFileGrows(t *testing.T) {
	s, fs, out := newTestSettler(t)
	require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("a"), 0644))
	s.touch("/watch/x.pdf")

	// Keep writing without touching, so only the stat comparison notices
	stopWriting := time.After(5 * quiet)
	content := []byte("a")
	ticker := time.NewTicker(quiet / 3)
	defer ticker.Stop()

writing:
	for {
		select {
		case <-stopWriting:
			break writing
		case <-ticker.C:
			content = append(content, 'a')
			require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", content, 0644))
		case ev := <-out:
			t.Fatalf("settled while still growing: %+v", ev)
		}
	}

	ev := waitEvent(t, out)
	assert.Equal(t, types.EventClosedWrite, ev.Kind)
}

func TestSettler_TouchRestartsQuietPeriod(t *testing.T) {
	s, fs, out := newTestSettler(t)
	require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("a"), 0644))

	for i := 0; i < 5; i++ {
		s.touch("/watch/x.pdf")
		time.Sleep(quiet / 3)
	}
	assert.Empty(t, out)

	waitEvent(t, out)
}

func TestSettler_ForgetAndVanish(t *testing.T) {
	t.Run("forget cancels", func(t *testing.T) {
		s, fs, out := newTestSettler(t)
		require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("a"), 0644))

		s.touch("/watch/x.pdf")
		s.forget("/watch/x.pdf")

		assert.Equal(t, 0, s.size())
		select {
		case ev := <-out:
			t.Fatalf("unexpected event %+v", ev)
		case <-time.After(4 * quiet):
		}
	})

	t.Run("vanished file is dropped", func(t *testing.T) {
		s, fs, out := newTestSettler(t)
		require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("a"), 0644))

		s.touch("/watch/x.pdf")
		require.NoError(t, fs.Remove("/watch/x.pdf"))

		select {
		case ev := <-out:
			t.Fatalf("unexpected event %+v", ev)
		case <-time.After(4 * quiet):
		}
		assert.Equal(t, 0, s.size())
	})
}

func TestSettler_StopCancelsPending(t *testing.T) {
	s, fs, out := newTestSettler(t)
	require.NoError(t, afero.WriteFile(fs, "/watch/x.pdf", []byte("a"), 0644))

	s.touch("/watch/x.pdf")
	s.stop()
	s.touch("/watch/y.pdf")

	assert.Equal(t, 0, s.size())
	select {
	case ev := <-out:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(4 * quiet):
	}
}
