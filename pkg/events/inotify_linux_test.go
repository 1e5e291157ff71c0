//go:build linux

// Test Type: Integration Test
// Description: Tests for the inotify backend against a real temporary directory

package events

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/testutil"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func openInotifyTest(t *testing.T, roots ...string) Source {
	t.Helper()
	src, err := Open(Options{Backend: BackendInotify, Roots: roots, Recursive: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })
	return src
}

// inotifyRecord encodes one kernel record with a NUL padded name
func inotifyRecord(wd int32, mask uint32, name string) []byte {
	nameLen := 0
	if name != "" {
		nameLen = (len(name)/unix.SizeofInotifyEvent + 1) * unix.SizeofInotifyEvent
	}
	buf := make([]byte, unix.SizeofInotifyEvent+nameLen)
	binary.NativeEndian.PutUint32(buf[0:], uint32(wd))
	binary.NativeEndian.PutUint32(buf[4:], mask)
	binary.NativeEndian.PutUint32(buf[12:], uint32(nameLen))
	copy(buf[unix.SizeofInotifyEvent:], name)
	return buf
}

// detachedInotify builds a source that is fed through decode only
func detachedInotify(t *testing.T, dirs map[int]string) *inotifySource {
	t.Helper()
	opts := Options{Fs: afero.NewMemMapFs(), Buffer: 16}.withDefaults()
	s := newInotifySource(opts, -1)
	for wd, dir := range dirs {
		s.dirs[wd] = dir
		s.wds[dir] = wd
	}
	t.Cleanup(s.settler.stop)
	return s
}

func drainQueued(s *inotifySource) []types.RawEvent {
	var got []types.RawEvent
	for {
		select {
		case ev := <-s.events:
			got = append(got, ev)
		default:
			return got
		}
	}
}

func TestInotify_DecodeKeepsKernelOrder(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch", 2: "/watch/sub"})

	var buf []byte
	buf = append(buf, inotifyRecord(1, unix.IN_CREATE, "scan_1.pdf")...)
	buf = append(buf, inotifyRecord(1, unix.IN_CLOSE_WRITE, "scan_1.pdf")...)
	buf = append(buf, inotifyRecord(2, unix.IN_MOVED_TO, "a-rather-long-file-name.pdf")...)
	buf = append(buf, inotifyRecord(1, unix.IN_DELETE, "scan_1.pdf")...)
	s.decode(buf)

	got := drainQueued(s)
	require.Len(t, got, 4)

	assert.Equal(t, types.RawEvent{Path: "/watch/scan_1.pdf", Kind: types.EventCreated, Op: "IN_CREATE"}, got[0])
	assert.Equal(t, types.RawEvent{Path: "/watch/scan_1.pdf", Kind: types.EventClosedWrite, Op: "IN_CLOSE_WRITE"}, got[1])
	assert.Equal(t, "/watch/sub/a-rather-long-file-name.pdf", got[2].Path)
	assert.Equal(t, types.EventMovedIn, got[2].Kind)
	assert.Equal(t, types.EventRemoved, got[3].Kind)
}

func TestInotify_DecodeDirectoryFlag(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch"})

	s.decode(inotifyRecord(1, unix.IN_CREATE|unix.IN_ISDIR, "batch"))

	got := drainQueued(s)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsDir)
	assert.Equal(t, "IN_CREATE|IN_ISDIR", got[0].Op)
}

func TestInotify_OverflowReportedAsError(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch"})

	s.decode(inotifyRecord(-1, unix.IN_Q_OVERFLOW, ""))

	select {
	case err := <-s.Errors():
		assert.True(t, errors.IsErrorCode(err, errors.ErrEventOverflow))
	default:
		t.Fatal("overflow did not reach the error channel")
	}
	assert.Empty(t, drainQueued(s))
}

func TestInotify_IgnoredWatchIsForgotten(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch", 2: "/watch/gone"})

	var buf []byte
	buf = append(buf, inotifyRecord(2, unix.IN_IGNORED, "")...)
	buf = append(buf, inotifyRecord(2, unix.IN_CREATE, "late.pdf")...)
	s.decode(buf)

	assert.Empty(t, drainQueued(s))
	assert.NotContains(t, s.wds, "/watch/gone")
	assert.Contains(t, s.wds, "/watch")
}

func TestInotify_MovedAwayDirectoryIsUnwatched(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch", 2: "/watch/batch", 3: "/watch/batch/inner", 4: "/watch/batch2"})

	s.decode(inotifyRecord(1, unix.IN_MOVED_FROM|unix.IN_ISDIR, "batch"))

	got := drainQueued(s)
	require.Len(t, got, 1)
	assert.Equal(t, types.EventRemoved, got[0].Kind)
	assert.Equal(t, map[string]int{"/watch": 1, "/watch/batch2": 4}, s.wds)
}

func TestInotify_TruncatedRecordDropped(t *testing.T) {
	s := detachedInotify(t, map[int]string{1: "/watch"})

	rec := inotifyRecord(1, unix.IN_CREATE, "x.pdf")
	s.decode(rec[:len(rec)-4])

	assert.Empty(t, drainQueued(s))
}

func TestInotify_CreateThenCloseWrite(t *testing.T) {
	root := testutil.RealPath(t, t.TempDir())
	src := openInotifyTest(t, root)

	file := testutil.CreateFile(t, root, "x.pdf", "%PDF-1.7")

	evs := collectUntil(t, src, 5*time.Second, hasEvent(file, types.EventClosedWrite))
	assert.Equal(t, []types.EventKind{types.EventCreated, types.EventClosedWrite}, kindsFor(evs, file))
}

func TestInotify_DirectoryFlag(t *testing.T) {
	root := testutil.RealPath(t, t.TempDir())
	src := openInotifyTest(t, root)

	dir := filepath.Join(root, "batch")
	require.NoError(t, os.Mkdir(dir, 0755))

	evs := collectUntil(t, src, 5*time.Second, hasEvent(dir, types.EventCreated))
	for _, ev := range evs {
		if ev.Path == dir {
			assert.True(t, ev.IsDir)
		}
	}

	file := testutil.CreateFile(t, dir, "y.pdf", "y")
	collectUntil(t, src, 5*time.Second, hasEvent(file, types.EventClosedWrite))
}

func TestInotify_MoveIn(t *testing.T) {
	root := testutil.RealPath(t, t.TempDir())
	outside := testutil.RealPath(t, t.TempDir())
	src := openInotifyTest(t, root)

	staged := testutil.CreateFile(t, outside, "z.pdf", "z")
	target := filepath.Join(root, "z.pdf")
	require.NoError(t, os.Rename(staged, target))

	collectUntil(t, src, 5*time.Second, hasEvent(target, types.EventMovedIn))
}

func TestInotify_MovedInDirectoryReportsFiles(t *testing.T) {
	root := testutil.RealPath(t, t.TempDir())
	outside := testutil.RealPath(t, t.TempDir())
	src := openInotifyTest(t, root)

	staged := filepath.Join(outside, "batch")
	require.NoError(t, os.Mkdir(staged, 0755))
	testutil.CreateFile(t, staged, "a.pdf", "a")
	testutil.CreateFile(t, staged, "b.pdf", "b")

	batch := filepath.Join(root, "batch")
	require.NoError(t, os.Rename(staged, batch))

	a := filepath.Join(batch, "a.pdf")
	b := filepath.Join(batch, "b.pdf")
	evs := collectUntil(t, src, 5*time.Second, func(evs []types.RawEvent) bool {
		return hasEvent(a, types.EventMovedIn)(evs) && hasEvent(b, types.EventMovedIn)(evs)
	})
	assert.NotContains(t, kindsFor(evs, a), types.EventCreated)

	// The moved directory is watched like any other
	c := testutil.CreateFile(t, batch, "c.pdf", "c")
	collectUntil(t, src, 5*time.Second, hasEvent(c, types.EventClosedWrite))
}

func TestInotify_CreatedDirectoryFilesComplete(t *testing.T) {
	root := testutil.RealPath(t, t.TempDir())
	src, err := Open(Options{Backend: BackendInotify, Roots: []string{root}, Recursive: true, Settle: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	// Whether the close-write is seen directly or the scan has to settle
	// it, the file ends with a single completion.
	dir := filepath.Join(root, "batch")
	require.NoError(t, os.Mkdir(dir, 0755))
	file := testutil.CreateFile(t, dir, "x.pdf", "x")

	evs := collectUntil(t, src, 5*time.Second, hasEvent(file, types.EventClosedWrite))
	kinds := kindsFor(evs, file)
	assert.Equal(t, types.EventCreated, kinds[0])
	assert.Equal(t, types.EventClosedWrite, kinds[len(kinds)-1])
}

func TestInotify_NoUsableRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := Open(Options{Backend: BackendInotify, Roots: []string{missing}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoWatchRoots))
}
