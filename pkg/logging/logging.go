package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetupLogger configures the global logger for the given -v count.
// Records go to stderr and, when it can be opened, to the log file under
// $XDG_STATE_HOME/scanwatch.
func SetupLogger(verbosity int) {
	setupLogger(verbosity, os.Stderr, paths.LogFilePath())
}

func setupLogger(verbosity int, console *os.File, logFile string) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    noColor(console),
	}}

	file, fileErr := setupLogFile(logFile)
	if fileErr == nil {
		writers = append(writers, file)
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", logFile).Msg("Log file unavailable, logging to stderr only")
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

func levelFor(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.WarnLevel
	case 1:
		return zerolog.InfoLevel
	case 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// noColor disables ANSI colours when the console is not a terminal or NO_COLOR is set
func noColor(f *os.File) bool {
	if termenv.EnvNoColor() {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// GetLogger returns a contextualized logger with the given name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// setupLogFile opens logPath for appending, creating its directory
func setupLogFile(logPath string) (*os.File, error) {
	if logPath == "" {
		return nil, fmt.Errorf("XDG state directory is not set")
	}
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// LogCommand records an action about to be launched
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Launching action")
}
