// Package completion turns the raw event stream into "file is complete" signals.
//
// Every path moves through Unseen -> Created -> ready. A Created event opens
// (or restarts) a cycle and the next ClosedWrite for the same path closes it,
// producing exactly one ready signal. A ClosedWrite with no preceding Created,
// typically a file that was rewritten in place, is handled by the Policy.
package completion

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/rs/zerolog"
)

// Policy decides what a ClosedWrite on a path with no open cycle means
type Policy string

const (
	// PolicyPermissive treats every completed write as ready
	PolicyPermissive Policy = "permissive"
	// PolicyStrict only signals writes that were preceded by a Created
	PolicyStrict Policy = "strict"
)

// DefaultPolicy is used when nothing is configured
const DefaultPolicy = PolicyPermissive

// ParsePolicy converts a configuration value into a Policy
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultPolicy, nil
	case PolicyPermissive:
		return PolicyPermissive, nil
	case PolicyStrict:
		return PolicyStrict, nil
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unknown completion policy %q", s).
		WithDetail("allowed", []string{string(PolicyPermissive), string(PolicyStrict)})
}

func (p Policy) String() string {
	return string(p)
}

// Detector holds the per-path cycle state. It is owned by a single goroutine.
type Detector struct {
	policy  Policy
	pending map[string]types.EventKind
	logger  zerolog.Logger
}

// New creates a detector with the given policy
func New(policy Policy) *Detector {
	if policy == "" {
		policy = DefaultPolicy
	}
	return &Detector{
		policy:  policy,
		pending: make(map[string]types.EventKind),
		logger:  logging.GetLogger("completion"),
	}
}

// Policy returns the policy the detector was built with
func (d *Detector) Policy() Policy {
	return d.policy
}

// Pending returns the number of paths with an open cycle
func (d *Detector) Pending() int {
	return len(d.pending)
}

// Observe feeds one event into the state machine.
// It returns the cleaned path and true when the file just became ready.
func (d *Detector) Observe(ev types.RawEvent) (string, bool) {
	if ev.IsDir || ev.Path == "" {
		return "", false
	}
	path := filepath.Clean(ev.Path)

	_, open := d.pending[path]

	switch ev.Kind {
	case types.EventCreated:
		d.pending[path] = types.EventCreated
		d.trace(path, ev, "Cycle opened")
		return "", false

	case types.EventClosedWrite:
		if open {
			delete(d.pending, path)
			d.trace(path, ev, "File ready")
			return path, true
		}
		if d.policy == PolicyPermissive {
			d.trace(path, ev, "File ready without created")
			return path, true
		}
		d.trace(path, ev, "Write ignored without created")
		return "", false

	case types.EventMovedIn:
		delete(d.pending, path)
		d.trace(path, ev, "File ready after move")
		return path, true

	case types.EventRemoved:
		if open {
			delete(d.pending, path)
			d.trace(path, ev, "Cycle dropped")
		}
		return "", false

	default:
		if open {
			d.pending[path] = ev.Kind
		}
		return "", false
	}
}

func (d *Detector) trace(path string, ev types.RawEvent, state string) {
	d.logger.Trace().
		Str("path", path).
		Str("kind", ev.Kind.String()).
		Str("policy", d.policy.String()).
		Int("pending", len(d.pending)).
		Msg(state)
}
