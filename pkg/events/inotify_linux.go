//go:build linux

package events

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// inotifyMask is the subscription used for every watched directory
const inotifyMask = unix.IN_CREATE | unix.IN_CLOSE_WRITE | unix.IN_MOVED_TO |
	unix.IN_MOVED_FROM | unix.IN_DELETE | unix.IN_ONLYDIR

// inotifyReadSize holds a few thousand records without names
const inotifyReadSize = unix.SizeofInotifyEvent * 4096

var inotifyOps = []struct {
	mask uint32
	name string
}{
	{unix.IN_CREATE, "IN_CREATE"},
	{unix.IN_CLOSE_WRITE, "IN_CLOSE_WRITE"},
	{unix.IN_MOVED_TO, "IN_MOVED_TO"},
	{unix.IN_MOVED_FROM, "IN_MOVED_FROM"},
	{unix.IN_DELETE, "IN_DELETE"},
	{unix.IN_IGNORED, "IN_IGNORED"},
	{unix.IN_Q_OVERFLOW, "IN_Q_OVERFLOW"},
	{unix.IN_ISDIR, "IN_ISDIR"},
}

// inotifySource reads one inotify instance and reports records in the order
// the kernel queued them. Watch bookkeeping is only touched by the loop
// goroutine once the source is running.
type inotifySource struct {
	fd        int
	file      *os.File
	fs        afero.Fs
	recursive bool
	settler   *settler
	roots     []string

	dirs map[int]string
	wds  map[string]int

	events   chan types.RawEvent
	errs     chan error
	done     chan struct{}
	loopDone chan struct{}
	once     sync.Once

	logger zerolog.Logger
}

func newInotifySource(opts Options, fd int) *inotifySource {
	s := &inotifySource{
		fd:        fd,
		fs:        opts.Fs,
		recursive: opts.Recursive,
		dirs:      make(map[int]string),
		wds:       make(map[string]int),
		events:    make(chan types.RawEvent, opts.Buffer),
		errs:      make(chan error, opts.Buffer),
		done:      make(chan struct{}),
		loopDone:  make(chan struct{}),
		logger:    logging.GetLogger("events.inotify"),
	}
	s.settler = newSettler(opts.Fs, opts.Settle, s.emit)
	return s
}

func openInotify(opts Options) (Source, error) {
	fd, err := unix.InotifyInit1(unix.IN_CLOEXEC | unix.IN_NONBLOCK)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatcherInit, "failed to initialise inotify")
	}

	s := newInotifySource(opts, fd)
	// A non-blocking descriptor is handed to the runtime poller, so Close
	// wakes a pending Read.
	s.file = os.NewFile(uintptr(fd), "inotify")

	for _, root := range opts.Roots {
		if err := s.addRoot(root); err != nil {
			s.logger.Warn().Err(err).Str("root", root).Msg("Failed to watch root, skipping")
			continue
		}
		s.roots = append(s.roots, root)
		s.logger.Info().
			Str("root", root).
			Bool("recursive", opts.Recursive).
			Msg("Watching root")
	}

	if len(s.roots) == 0 {
		_ = s.file.Close()
		return nil, errors.New(errors.ErrNoWatchRoots, "none of the configured roots could be watched").
			WithDetail("roots", opts.Roots)
	}

	go s.loop()
	return s, nil
}

func (s *inotifySource) watch(dir string) error {
	wd, err := unix.InotifyAddWatch(s.fd, dir, inotifyMask)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWatcherInit, "cannot watch %s", dir)
	}
	if old, ok := s.dirs[wd]; ok && old != dir {
		delete(s.wds, old)
	}
	s.dirs[wd] = dir
	s.wds[dir] = wd
	return nil
}

// unwatchTree drops dir and every watched directory below it
func (s *inotifySource) unwatchTree(dir string) {
	prefix := dir + string(filepath.Separator)
	for path, wd := range s.wds {
		if path != dir && !strings.HasPrefix(path, prefix) {
			continue
		}
		// The kernel confirms with IN_IGNORED, which then finds nothing
		_, _ = unix.InotifyRmWatch(s.fd, uint32(wd))
		delete(s.wds, path)
		delete(s.dirs, wd)
		s.logger.Debug().Str("dir", path).Msg("Stopped watching moved directory")
	}
}

func (s *inotifySource) addRoot(root string) error {
	info, err := s.fs.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot stat %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", root)
	}
	return addTree(s.fs, root, s.recursive, s.watch, s.logger)
}

func (s *inotifySource) Events() <-chan types.RawEvent { return s.events }
func (s *inotifySource) Errors() <-chan error         { return s.errs }
func (s *inotifySource) Roots() []string              { return append([]string(nil), s.roots...) }

func (s *inotifySource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.file.Close()
		<-s.loopDone
		s.settler.stop()
		close(s.events)
		close(s.errs)
	})
	return err
}

func (s *inotifySource) loop() {
	defer close(s.loopDone)

	buf := make([]byte, inotifyReadSize)
	for {
		n, err := s.file.Read(buf)
		if err != nil {
			select {
			case <-s.done:
			default:
				s.logger.Error().Err(err).Msg("Reading inotify failed")
				s.report(errors.Wrap(err, errors.ErrWatcherInit, "reading inotify failed"))
			}
			return
		}
		s.decode(buf[:n])
	}
}

// decode handles every complete record in buf, in order
func (s *inotifySource) decode(buf []byte) {
	for off := 0; off+unix.SizeofInotifyEvent <= len(buf); {
		wd := int32(binary.NativeEndian.Uint32(buf[off:]))
		mask := binary.NativeEndian.Uint32(buf[off+4:])
		nameLen := int(binary.NativeEndian.Uint32(buf[off+12:]))
		off += unix.SizeofInotifyEvent

		if off+nameLen > len(buf) {
			s.logger.Warn().Int("len", len(buf)).Msg("Truncated inotify record, dropping")
			return
		}
		name := strings.TrimRight(string(buf[off:off+nameLen]), "\x00")
		off += nameLen

		s.handle(int(wd), mask, name)
	}
}

func (s *inotifySource) handle(wd int, mask uint32, name string) {
	if mask&unix.IN_Q_OVERFLOW != 0 {
		s.logger.Error().Msg("Inotify queue overflowed, events were lost")
		s.report(errors.New(errors.ErrEventOverflow, "inotify queue overflowed, events were lost").
			WithDetail("roots", s.roots))
		return
	}

	dir, ok := s.dirs[wd]
	if mask&unix.IN_IGNORED != 0 {
		if ok {
			delete(s.dirs, wd)
			if s.wds[dir] == wd {
				delete(s.wds, dir)
			}
			s.logger.Debug().Str("dir", dir).Msg("Watch removed")
		}
		return
	}
	if !ok {
		// Records already queued for a watch that was dropped
		return
	}

	path := dir
	if name != "" {
		path = filepath.Join(dir, name)
	}
	isDir := mask&unix.IN_ISDIR != 0
	ev := types.RawEvent{Path: path, IsDir: isDir, Op: maskString(mask)}

	switch {
	case mask&unix.IN_CREATE != 0:
		ev.Kind = types.EventCreated
		s.arrive(ev, false)

	case mask&unix.IN_MOVED_TO != 0:
		ev.Kind = types.EventMovedIn
		s.arrive(ev, true)

	case mask&unix.IN_CLOSE_WRITE != 0:
		ev.Kind = types.EventClosedWrite
		s.settler.forget(path)
		s.emit(ev)

	case mask&(unix.IN_MOVED_FROM|unix.IN_DELETE) != 0:
		ev.Kind = types.EventRemoved
		s.settler.forget(path)
		if isDir && mask&unix.IN_MOVED_FROM != 0 {
			s.unwatchTree(path)
		}
		s.emit(ev)

	default:
		ev.Kind = types.EventOther
		s.emit(ev)
	}
}

// arrive reports a path that appeared. A new directory gets its own watch
// before it is reported, then its existing content is scanned.
func (s *inotifySource) arrive(ev types.RawEvent, moved bool) {
	if !ev.IsDir || !s.recursive {
		s.emit(ev)
		return
	}
	watched := s.watchCreatedDir(ev.Path)
	s.emit(ev)
	if watched {
		s.scanDir(ev.Path, moved)
	}
}

func (s *inotifySource) watchCreatedDir(dir string) bool {
	err := addTree(s.fs, dir, true, func(d string) error {
		if err := s.watch(d); err != nil {
			return err
		}
		s.logger.Debug().Str("dir", d).Msg("Watching new directory")
		return nil
	}, s.logger)
	if err != nil {
		s.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to watch new directory")
		return false
	}
	return true
}

// scanDir reports files that were inside a directory before its watch
// existed. Files of a moved-in directory are complete. Files of a created
// directory may still be open, so they are settled unless a close-write
// arrives first.
func (s *inotifySource) scanDir(dir string, moved bool) {
	kind := types.EventCreated
	if moved {
		kind = types.EventMovedIn
	}

	_ = afero.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if info.IsDir() {
			s.emit(types.RawEvent{Path: path, Kind: kind, IsDir: true, Op: "SCAN"})
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		s.emit(types.RawEvent{Path: path, Kind: kind, Op: "SCAN"})
		if !moved {
			s.settler.touch(path)
		}
		return nil
	})
}

func (s *inotifySource) report(err error) {
	select {
	case s.errs <- err:
	case <-s.done:
	}
}

func (s *inotifySource) emit(ev types.RawEvent) {
	s.logger.Trace().
		Str("path", ev.Path).
		Str("kind", ev.Kind.String()).
		Str("op", ev.Op).
		Bool("dir", ev.IsDir).
		Msg("Raw event")

	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func maskString(mask uint32) string {
	var names []string
	for _, op := range inotifyOps {
		if mask&op.mask != 0 {
			names = append(names, op.name)
		}
	}
	if len(names) == 0 {
		return "IN_UNKNOWN"
	}
	return strings.Join(names, "|")
}
