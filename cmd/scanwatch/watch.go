package scanwatch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/scanwatch/pkg/core"
	"github.com/arthur-debert/scanwatch/pkg/events"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   MsgWatchShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd)
		},
	}
}

// runWatch runs the engine until SIGINT, SIGTERM or the end of the event stream
func runWatch(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, cmd)
}

// openSource starts the event source, replaced in tests
var openSource = events.Open

func watch(ctx context.Context, cmd *cobra.Command) error {
	logger := logging.GetLogger("cmd.watch")
	out := cmd.OutOrStdout()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	dryRun := isDryRun(cmd)
	p, err := buildPipeline(cfg, dryRun, out)
	if err != nil {
		return fmt.Errorf(MsgErrLoadConfig, err)
	}

	source, err := openSource(p.source)
	if err != nil {
		return fmt.Errorf(MsgErrOpenSource, err)
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Closing event source failed")
		}
	}()

	if dryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
	}
	for _, root := range source.Roots() {
		fmt.Fprintf(out, MsgWatchingFormat, root)
	}

	engine := core.NewEngine(source, p.dispatcher, p.engine)
	if err := engine.Run(ctx); err != nil {
		return fmt.Errorf(MsgErrEngine, err)
	}

	stats := engine.Stats()
	logger.Info().
		Int("events", stats.Events).
		Int("ready", stats.Ready).
		Int("dispatched", stats.Dispatched).
		Int("launch_failures", stats.LaunchFailures).
		Int("notify_failures", stats.NotifyFailures).
		Int("transport_errors", stats.TransportErrors).
		Msg("Watch finished")
	fmt.Fprintf(out, MsgStoppedFormat, stats.Ready, stats.Dispatched)

	return nil
}
