package events

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

type fsnotifySource struct {
	watcher   *fsnotify.Watcher
	fs        afero.Fs
	recursive bool
	settler   *settler
	roots     []string

	events   chan types.RawEvent
	errs     chan error
	done     chan struct{}
	loopDone chan struct{}
	once     sync.Once

	logger zerolog.Logger
}

func openFsnotify(opts Options) (Source, error) {
	logger := logging.GetLogger("events.fsnotify")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatcherInit, "failed to create fsnotify watcher")
	}

	s := &fsnotifySource{
		watcher:   watcher,
		fs:        opts.Fs,
		recursive: opts.Recursive,
		events:    make(chan types.RawEvent, opts.Buffer),
		errs:      make(chan error, opts.Buffer),
		done:      make(chan struct{}),
		loopDone:  make(chan struct{}),
		logger:    logger,
	}
	s.settler = newSettler(opts.Fs, opts.Settle, s.emit)

	for _, root := range opts.Roots {
		if err := s.addRoot(root); err != nil {
			logger.Warn().Err(err).Str("root", root).Msg("Failed to watch root, skipping")
			continue
		}
		s.roots = append(s.roots, root)
		logger.Info().
			Str("root", root).
			Bool("recursive", opts.Recursive).
			Dur("settle", opts.Settle).
			Msg("Watching root")
	}

	if len(s.roots) == 0 {
		_ = watcher.Close()
		return nil, errors.New(errors.ErrNoWatchRoots, "none of the configured roots could be watched").
			WithDetail("roots", opts.Roots)
	}

	go s.loop()
	return s, nil
}

func (s *fsnotifySource) addRoot(root string) error {
	info, err := s.fs.Stat(root)
	if err != nil {
		return errors.Wrapf(err, errors.ErrInvalidInput, "cannot stat %s", root)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "%s is not a directory", root)
	}
	return addTree(s.fs, root, s.recursive, s.watcher.Add, s.logger)
}

func (s *fsnotifySource) Events() <-chan types.RawEvent { return s.events }
func (s *fsnotifySource) Errors() <-chan error         { return s.errs }
func (s *fsnotifySource) Roots() []string              { return append([]string(nil), s.roots...) }

func (s *fsnotifySource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		<-s.loopDone
		s.settler.stop()
		close(s.events)
		close(s.errs)
	})
	return err
}

func (s *fsnotifySource) loop() {
	defer close(s.loopDone)

	for {
		select {
		case <-s.done:
			return

		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(ev)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error().Err(err).Msg("Watcher error")
			select {
			case s.errs <- err:
			case <-s.done:
			}
		}
	}
}

func (s *fsnotifySource) handle(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	op := ev.Op.String()

	switch {
	case ev.Has(fsnotify.Create):
		if !s.isDir(path) {
			s.emit(types.RawEvent{Path: path, Kind: types.EventCreated, Op: op})
			s.settler.touch(path)
			return
		}
		watched := s.recursive && s.watchCreatedDir(path)
		s.emit(types.RawEvent{Path: path, Kind: types.EventCreated, IsDir: true, Op: op})
		if watched {
			s.scanCreatedDir(path)
		}

	case ev.Has(fsnotify.Write):
		s.emit(types.RawEvent{Path: path, Kind: types.EventOther, Op: op})
		s.settler.touch(path)

	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		s.settler.forget(path)
		s.emit(types.RawEvent{Path: path, Kind: types.EventRemoved, Op: op})

	default:
		s.emit(types.RawEvent{Path: path, Kind: types.EventOther, Op: op})
	}
}

// watchCreatedDir starts watching a directory that appeared after startup
func (s *fsnotifySource) watchCreatedDir(dir string) bool {
	err := addTree(s.fs, dir, true, func(d string) error {
		if err := s.watcher.Add(d); err != nil {
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

// scanCreatedDir reports files written into a new directory before its watch was added
func (s *fsnotifySource) scanCreatedDir(dir string) {
	_ = afero.Walk(s.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || path == dir {
			return nil
		}
		if info.IsDir() {
			s.emit(types.RawEvent{Path: path, Kind: types.EventCreated, IsDir: true, Op: "SCAN"})
			return nil
		}
		s.emit(types.RawEvent{Path: path, Kind: types.EventCreated, Op: "SCAN"})
		s.settler.touch(path)
		return nil
	})
}

func (s *fsnotifySource) isDir(path string) bool {
	info, err := s.fs.Stat(path)
	return err == nil && info.IsDir()
}

func (s *fsnotifySource) emit(ev types.RawEvent) {
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
