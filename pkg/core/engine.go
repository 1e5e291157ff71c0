package core

import (
	"context"
	"fmt"

	"github.com/arthur-debert/scanwatch/pkg/completion"
	"github.com/arthur-debert/scanwatch/pkg/dispatcher"
	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/events"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/rules"
	"github.com/arthur-debert/scanwatch/pkg/template"
	"github.com/arthur-debert/scanwatch/pkg/types"
	"github.com/rs/zerolog"
)

// StartupMessage is the notification sent for each root when watching begins
const StartupMessage = "Watching path %s for incoming documents"

// Options configures an Engine
type Options struct {
	Roots  []types.WatchRoot
	Rules  []types.Rule
	Policy completion.Policy
	// AnnounceStart sends StartupMessage for every registered root
	AnnounceStart bool
}

// Stats counts what the engine has done so far
type Stats struct {
	Events          int
	Ready           int
	Dispatched      int
	LaunchFailures  int
	NotifyFailures  int
	TransportErrors int
}

// Engine drives the event pipeline. It is not safe for concurrent use;
// Run, HandleEvent and ProcessReady must be called from one goroutine.
type Engine struct {
	source     events.Source
	detector   *completion.Detector
	matcher    *rules.Matcher
	dispatcher *dispatcher.Dispatcher
	scope      *Scope
	opts       Options
	stats      Stats
	logger     zerolog.Logger
}

// NewEngine wires the pipeline together. source may be nil when the engine
// is only fed through HandleEvent or ProcessReady.
func NewEngine(source events.Source, d *dispatcher.Dispatcher, opts Options) *Engine {
	return &Engine{
		source:     source,
		detector:   completion.New(opts.Policy),
		matcher:    rules.NewMatcher(opts.Rules),
		dispatcher: d,
		scope:      NewScope(opts.Roots, opts.Rules),
		opts:       opts,
		logger:     logging.GetLogger("core.engine"),
	}
}

// Stats returns the counters collected so far
func (e *Engine) Stats() Stats {
	return e.stats
}

// Matcher returns the engine's compiled matcher
func (e *Engine) Matcher() *rules.Matcher {
	return e.matcher
}

// Run consumes the event source until ctx is cancelled or the source's event
// channel is closed. Per-event failures never end the loop.
func (e *Engine) Run(ctx context.Context) error {
	if e.source == nil {
		return errors.New(errors.ErrInternal, "engine has no event source")
	}

	e.logger.Info().
		Strs("roots", e.source.Roots()).
		Int("rules", len(e.opts.Rules)).
		Str("policy", e.detector.Policy().String()).
		Msg("Engine started")

	if e.opts.AnnounceStart {
		for _, root := range e.source.Roots() {
			_ = e.dispatcher.Notify(fmt.Sprintf(StartupMessage, root), "")
		}
	}

	evs := e.source.Events()
	errs := e.source.Errors()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info().Msg("Engine stopping")
			return nil

		case ev, ok := <-evs:
			if !ok {
				e.drainErrors(errs)
				e.logger.Info().Msg("Event stream closed")
				return nil
			}
			e.HandleEvent(ev)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			e.stats.TransportErrors++
			e.logger.Error().Err(err).Msg("Event source error, continuing")
		}
	}
}

// drainErrors reports errors still queued when the event stream ends
func (e *Engine) drainErrors(errs <-chan error) {
	if errs == nil {
		return
	}
	for {
		select {
		case err, ok := <-errs:
			if !ok {
				return
			}
			e.stats.TransportErrors++
			e.logger.Error().Err(err).Msg("Event source error")
		default:
			return
		}
	}
}

// HandleEvent feeds one raw event through the pipeline
func (e *Engine) HandleEvent(ev types.RawEvent) []dispatcher.Outcome {
	e.stats.Events++

	e.logger.Debug().
		Str("path", ev.Path).
		Str("kind", ev.Kind.String()).
		Str("op", ev.Op).
		Bool("dir", ev.IsDir).
		Msg("Event received")

	path, ready := e.detector.Observe(ev)
	if !ready {
		return nil
	}
	return e.ProcessReady(path)
}

// ProcessReady dispatches every rule that matches a completed file
func (e *Engine) ProcessReady(path string) []dispatcher.Outcome {
	e.stats.Ready++

	mc := types.NewMatchContext(path)
	candidates := e.scope.RulesFor(path)
	matched := e.matcher.Match(mc.ShortName, candidates)

	e.logger.Info().
		Str("path", path).
		Int("candidates", len(candidates)).
		Int("matched", len(matched)).
		Msg("File ready")

	outcomes := make([]dispatcher.Outcome, 0, len(matched))
	for _, rule := range matched {
		out := e.dispatcher.Dispatch(rule, template.ExpandRule(rule, mc))
		e.stats.Dispatched++
		if out.LaunchErr != nil {
			e.stats.LaunchFailures++
		}
		if out.NotifyErr != nil {
			e.stats.NotifyFailures++
		}
		outcomes = append(outcomes, out)
	}
	return outcomes
}
