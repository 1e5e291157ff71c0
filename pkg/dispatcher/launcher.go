package dispatcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
)

// LaunchResult reports whether a process start was requested successfully.
// PID is zero when nothing was spawned.
type LaunchResult struct {
	PID int
	Err error
}

// Launcher starts external commands without waiting for them
type Launcher interface {
	Launch(command string, args []string) LaunchResult
}

// ExecLauncher spawns real processes with inherited stdio.
// Children are reaped in the background; their exit status is only logged.
type ExecLauncher struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Dir is the working directory for children, the current one when empty
	Dir string
}

// NewExecLauncher creates a launcher wired to this process's stdio
func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Launch implements Launcher
func (l *ExecLauncher) Launch(command string, args []string) LaunchResult {
	logger := logging.GetLogger("dispatcher.exec")

	if command == "" {
		return LaunchResult{Err: errors.New(errors.ErrLaunchFailed, "empty command")}
	}

	cmd := exec.Command(command, args...)
	cmd.Stdin = l.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.Dir = l.Dir

	logging.LogCommand(logger, command, args)

	if err := cmd.Start(); err != nil {
		return LaunchResult{
			Err: errors.Wrapf(err, errors.ErrLaunchFailed, "failed to start %s", command).
				WithDetail("command", command).
				WithDetail("args", args),
		}
	}

	pid := cmd.Process.Pid
	go func() {
		err := cmd.Wait()
		event := logger.Debug()
		if err != nil {
			event = logger.Info().Err(err)
		}
		event.Str("command", command).Int("pid", pid).Msg("Action exited")
	}()

	return LaunchResult{PID: pid}
}

// Launch is one command recorded by DryRunLauncher
type Launch struct {
	Command string
	Args    []string
}

// String renders the launch as a shell-like command line
func (l Launch) String() string {
	if len(l.Args) == 0 {
		return l.Command
	}
	return l.Command + " " + strings.Join(l.Args, " ")
}

// DryRunLauncher records commands instead of running them
type DryRunLauncher struct {
	out      io.Writer
	mu       sync.Mutex
	launches []Launch
}

// NewDryRunLauncher creates an empty dry-run launcher.
// When out is not nil every command is also printed to it.
func NewDryRunLauncher(out io.Writer) *DryRunLauncher {
	return &DryRunLauncher{out: out}
}

// Launch implements Launcher
func (d *DryRunLauncher) Launch(command string, args []string) LaunchResult {
	launch := Launch{Command: command, Args: append([]string(nil), args...)}

	d.mu.Lock()
	d.launches = append(d.launches, launch)
	if d.out != nil {
		fmt.Fprintf(d.out, "would run: %s\n", launch)
	}
	d.mu.Unlock()

	logger := logging.GetLogger("dispatcher.dryrun")
	logger.Info().
		Str("command", command).
		Strs("args", args).
		Msg("Dry run, not launching")

	return LaunchResult{}
}

// Launches returns every recorded command in order
func (d *DryRunLauncher) Launches() []Launch {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Launch(nil), d.launches...)
}
