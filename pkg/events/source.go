package events

import (
	"runtime"
	"strings"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/spf13/afero"
)

// Backend selects the notification mechanism
type Backend string

const (
	// BackendAuto picks inotify on Linux and fsnotify elsewhere
	BackendAuto Backend = "auto"
	// BackendInotify uses inotify close-write events
	BackendInotify Backend = "inotify"
	// BackendFsnotify uses fsnotify with settle-based completion
	BackendFsnotify Backend = "fsnotify"
)

// Defaults
const (
	DefaultSettle = 2 * time.Second
	DefaultBuffer = 256
)

// ParseBackend converts a configuration value into a Backend
func ParseBackend(s string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(s))) {
	case "", BackendAuto:
		return BackendAuto, nil
	case BackendInotify:
		return BackendInotify, nil
	case BackendFsnotify:
		return BackendFsnotify, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown watch backend %q", s).
		WithDetail("allowed", []string{string(BackendAuto), string(BackendInotify), string(BackendFsnotify)})
}

// Resolve maps BackendAuto to the concrete backend for this platform
func (b Backend) Resolve() Backend {
	if b == "" || b == BackendAuto {
		if runtime.GOOS == "linux" {
			return BackendInotify
		}
		return BackendFsnotify
	}
	return b
}

// Source is a running event stream.
// Events and Errors are closed after Close returns.
type Source interface {
	Events() <-chan types.RawEvent
	Errors() <-chan error
	// Roots returns the roots that were registered successfully
	Roots() []string
	Close() error
}

// Options configures Open
type Options struct {
	Backend   Backend
	Roots     []string
	Recursive bool
	// Settle is the quiet period used by the fsnotify backend
	Settle time.Duration
	// Buffer is the capacity of the event channels
	Buffer int
	// Fs is used to walk roots and probe file stability
	Fs afero.Fs
}

func (o Options) withDefaults() Options {
	if o.Settle <= 0 {
		o.Settle = DefaultSettle
	}
	if o.Buffer <= 0 {
		o.Buffer = DefaultBuffer
	}
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	return o
}

// Open starts watching the configured roots with the selected backend
func Open(opts Options) (Source, error) {
	opts = opts.withDefaults()

	if len(opts.Roots) == 0 {
		return nil, errors.New(errors.ErrNoWatchRoots, "no watch roots configured")
	}

	switch backend := opts.Backend.Resolve(); backend {
	case BackendInotify:
		return openInotify(opts)
	case BackendFsnotify:
		return openFsnotify(opts)
	default:
		return nil, errors.Newf(errors.ErrBackendUnsupported, "unknown watch backend %q", backend)
	}
}
