package scanwatch

import (
	"io"

	"github.com/arthur-debert/scanwatch/pkg/completion"
	"github.com/arthur-debert/scanwatch/pkg/config"
	"github.com/arthur-debert/scanwatch/pkg/core"
	"github.com/arthur-debert/scanwatch/pkg/dispatcher"
	"github.com/arthur-debert/scanwatch/pkg/events"
	"github.com/arthur-debert/scanwatch/pkg/notify"
	"github.com/arthur-debert/scanwatch/pkg/types"
)

// pipeline holds everything the watch command needs except the live source
type pipeline struct {
	roots      []types.WatchRoot
	source     events.Options
	engine     core.Options
	dispatcher *dispatcher.Dispatcher
}

// buildPipeline translates a validated configuration into component options
func buildPipeline(cfg *config.Config, dryRun bool, out io.Writer) (*pipeline, error) {
	roots, err := cfg.WatchRoots()
	if err != nil {
		return nil, err
	}

	backend, err := events.ParseBackend(cfg.Watch.Backend)
	if err != nil {
		return nil, err
	}
	policy, err := completion.ParsePolicy(cfg.Watch.Policy)
	if err != nil {
		return nil, err
	}
	notifier, err := buildNotifier(cfg.Notify, out)
	if err != nil {
		return nil, err
	}

	rootPaths := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, root := range roots {
		if seen[root.Path] {
			continue
		}
		seen[root.Path] = true
		rootPaths = append(rootPaths, root.Path)
	}

	return &pipeline{
		roots: roots,
		source: events.Options{
			Backend:   backend,
			Roots:     rootPaths,
			Recursive: cfg.Watch.Recursive,
			Settle:    cfg.Watch.Settle,
			Buffer:    cfg.Watch.Buffer,
		},
		engine: core.Options{
			Roots:         roots,
			Rules:         cfg.RuleSet(),
			Policy:        policy,
			AnnounceStart: cfg.Notify.OnStart,
		},
		dispatcher: dispatcher.New(buildLauncher(dryRun, out), notifier, dispatcher.Options{
			Title:       cfg.Notify.Title,
			DefaultIcon: cfg.Notify.Icon,
		}),
	}, nil
}

func buildLauncher(dryRun bool, out io.Writer) dispatcher.Launcher {
	if dryRun {
		return dispatcher.NewDryRunLauncher(out)
	}
	return dispatcher.NewExecLauncher()
}

func buildNotifier(nc config.NotifyConfig, out io.Writer) (notify.Notifier, error) {
	mode, err := notify.ParseConsoleMode(nc.Console)
	if err != nil {
		return nil, err
	}

	var primary notify.Notifier
	if nc.Desktop {
		primary = notify.NewDesktopNotifier()
	}
	return notify.NewFallbackNotifier(primary, notify.NewConsoleNotifier(out), mode), nil
}
