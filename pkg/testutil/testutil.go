package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
)

// CreateFile writes a file below dir, creating parent directories.
// It fails the test if the file cannot be created.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}

	return path
}

// CreateDir creates a directory below parent.
// It fails the test if the directory cannot be created.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)

	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}

	return path
}

// RealPath resolves symbolic links in dir, which must exist.
// Temporary directories live below a symlink on some systems.
func RealPath(t *testing.T, dir string) string {
	t.Helper()

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("Failed to resolve %s: %v", dir, err)
	}
	return resolved
}

// Symlink creates link pointing at target, skipping the test where
// symbolic links are unavailable.
func Symlink(t *testing.T, target, link string) string {
	t.Helper()

	if err := os.Symlink(target, link); err != nil {
		t.Skipf("Symlinks unavailable: %v", err)
	}
	return link
}

// WriteConfig writes a scanwatch.toml into dir and returns its path
func WriteConfig(t *testing.T, dir, content string) string {
	t.Helper()
	return CreateFile(t, dir, "scanwatch.toml", content)
}

// IsolateXDG points every XDG base directory at a fresh temporary tree
// so tests never read or write the user's real configuration.
func IsolateXDG(t *testing.T) string {
	t.Helper()

	// Registered first so it runs after the environment is restored
	t.Cleanup(xdg.Reload)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "etc-xdg"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("SCANWATCH_CONFIG", "")
	xdg.Reload()

	return home
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("Test not supported on Windows")
	}
}

// SkipUnlessLinux skips tests that depend on inotify
func SkipUnlessLinux(t *testing.T) {
	t.Helper()

	if runtime.GOOS != "linux" {
		t.Skip("Test requires Linux")
	}
}
