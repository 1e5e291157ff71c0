package events

import (
	"sync"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/spf13/afero"
)

// settler synthesises ClosedWrite events for backends without a close-write
// notification. Each touched path is re-examined after the quiet period and
// reported once its size and modification time have stopped changing.
type settler struct {
	fs    afero.Fs
	quiet time.Duration
	emit  func(types.RawEvent)

	mu       sync.Mutex
	pending  map[string]*pendingWrite
	stopped  bool
	inFlight sync.WaitGroup
}

type pendingWrite struct {
	timer *time.Timer
	size  int64
	mod   time.Time
}

func newSettler(fs afero.Fs, quiet time.Duration, emit func(types.RawEvent)) *settler {
	return &settler{
		fs:      fs,
		quiet:   quiet,
		emit:    emit,
		pending: make(map[string]*pendingWrite),
	}
}

// touch records activity on path and restarts its quiet period
func (s *settler) touch(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	p, ok := s.pending[path]
	if !ok {
		p = &pendingWrite{}
		p.timer = time.AfterFunc(s.quiet, func() { s.check(path) })
		s.pending[path] = p
	} else {
		p.timer.Reset(s.quiet)
	}
	s.snapshot(path, p)
}

// forget drops a path that was removed or renamed away
func (s *settler) forget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[path]; ok {
		p.timer.Stop()
		delete(s.pending, path)
	}
}

// size returns the number of paths waiting to settle
func (s *settler) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *settler) snapshot(path string, p *pendingWrite) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return
	}
	p.size = info.Size()
	p.mod = info.ModTime()
}

func (s *settler) check(path string) {
	s.mu.Lock()

	p, ok := s.pending[path]
	if !ok || s.stopped {
		s.mu.Unlock()
		return
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		// Vanished before it settled
		delete(s.pending, path)
		s.mu.Unlock()
		return
	}

	if info.Size() != p.size || !info.ModTime().Equal(p.mod) {
		p.size = info.Size()
		p.mod = info.ModTime()
		p.timer.Reset(s.quiet)
		s.mu.Unlock()
		return
	}

	delete(s.pending, path)
	s.inFlight.Add(1)
	s.mu.Unlock()

	defer s.inFlight.Done()
	s.emit(types.RawEvent{Path: path, Kind: types.EventClosedWrite, Op: "SETTLED"})
}

// stop cancels every pending timer and waits for in-flight emits to return
func (s *settler) stop() {
	s.mu.Lock()
	s.stopped = true
	for path, p := range s.pending {
		p.timer.Stop()
		delete(s.pending, path)
	}
	s.mu.Unlock()

	s.inFlight.Wait()
}
