package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scanwatch/pkg/errors"
)

// Environment variable names
const (
	// EnvConfig points at an explicit configuration file
	EnvConfig = "SCANWATCH_CONFIG"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// AppDirName is the directory name used under the XDG base directories
	AppDirName = "scanwatch"

	// ConfigFileName is the name of the configuration file
	ConfigFileName = "scanwatch.toml"

	// LogFileName is the name of the log file
	LogFileName = "scanwatch.log"
)

// ExpandHome expands a leading ~ or ~/ to the user's home directory.
// Other forms (~user) are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// Normalize expands the home directory, makes the path absolute, resolves
// symbolic links and cleans it. Watch roots and event paths share this form
// so they can be compared as strings. A path that does not exist yet keeps
// its missing tail below the deepest existing ancestor, which is resolved.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to get absolute path for %s", path)
	}

	return resolveSymlinks(filepath.Clean(abs)), nil
}

func resolveSymlinks(path string) string {
	dir, rest := path, ""
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return path
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// IsWithin reports whether path is root itself or lies below it.
// Both arguments must already be normalized.
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && rel[2] == filepath.Separator
}

// FindConfigFile resolves the configuration file.
// Resolution order:
//  1. explicit (the --config flag)
//  2. $SCANWATCH_CONFIG
//  3. ./scanwatch.toml
//  4. $XDG_CONFIG_HOME/scanwatch/scanwatch.toml, then $XDG_CONFIG_DIRS
func FindConfigFile(explicit string) (string, error) {
	for _, candidate := range []string{explicit, os.Getenv(EnvConfig)} {
		if candidate == "" {
			continue
		}
		path := ExpandHome(candidate)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigNotFound, "configuration file %s", path).
				WithDetail("path", path)
		}
		return path, nil
	}

	if _, err := os.Stat(ConfigFileName); err == nil {
		abs, err := filepath.Abs(ConfigFileName)
		if err == nil {
			return abs, nil
		}
		return ConfigFileName, nil
	}

	path, err := xdg.SearchConfigFile(filepath.Join(AppDirName, ConfigFileName))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigNotFound,
			"cannot find configuration file %s", ConfigFileName)
	}
	return path, nil
}

// ConfigFilePath returns the preferred location of the user configuration file
func ConfigFilePath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// LogFilePath returns the path to the log file under $XDG_STATE_HOME
func LogFilePath() string {
	if xdg.StateHome == "" {
		return ""
	}
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
