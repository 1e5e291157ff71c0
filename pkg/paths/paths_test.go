package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bare tilde", "~", home},
		{"tilde slash", "~/Scans", filepath.Join(home, "Scans")},
		{"other user untouched", "~bob/Scans", "~bob/Scans"},
		{"absolute untouched", "/var/spool/scans", "/var/spool/scans"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("cleans absolute paths", func(t *testing.T) {
		got, err := Normalize("/watch/./in/../x.pdf")
		require.NoError(t, err)
		assert.Equal(t, "/watch/x.pdf", got)
	})

	t.Run("relative paths become absolute", func(t *testing.T) {
		got, err := Normalize("inbox")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("symlinked root is resolved", func(t *testing.T) {
		if runtime.GOOS == "windows" {
			t.Skip("symlinks need privileges on Windows")
		}

		base, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		real := filepath.Join(base, "real")
		require.NoError(t, os.Mkdir(real, 0755))
		link := filepath.Join(base, "Scans")
		require.NoError(t, os.Symlink(real, link))

		got, err := Normalize(link)
		require.NoError(t, err)
		assert.Equal(t, real, got)

		got, err = Normalize(filepath.Join(link, "x.pdf"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(real, "x.pdf"), got, "missing file below a symlink")

		got, err = Normalize(filepath.Join(link, "new", "x.pdf"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(real, "new", "x.pdf"), got)
	})

	t.Run("empty path is invalid input", func(t *testing.T) {
		_, err := Normalize("")
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/watch", "/watch"))
	assert.True(t, IsWithin("/watch", "/watch/x.pdf"))
	assert.True(t, IsWithin("/watch", "/watch/sub/x.pdf"))
	assert.True(t, IsWithin("/watch", "/watch/..x.pdf"))
	assert.False(t, IsWithin("/watch", "/watched/x.pdf"))
	assert.False(t, IsWithin("/watch/sub", "/watch/x.pdf"))
}

func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		dir := t.TempDir()
		explicit := filepath.Join(dir, "custom.toml")
		require.NoError(t, os.WriteFile(explicit, []byte(`path = "/tmp"`), 0644))
		t.Setenv(EnvConfig, filepath.Join(dir, "ignored.toml"))

		got, err := FindConfigFile(explicit)
		require.NoError(t, err)
		assert.Equal(t, explicit, got)
	})

	t.Run("missing explicit path is not found", func(t *testing.T) {
		_, err := FindConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
	})

	t.Run("environment variable", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, "env.toml")
		require.NoError(t, os.WriteFile(envPath, []byte(`path = "/tmp"`), 0644))
		t.Setenv(EnvConfig, envPath)

		got, err := FindConfigFile("")
		require.NoError(t, err)
		assert.Equal(t, envPath, got)
	})

	t.Run("xdg config home", func(t *testing.T) {
		configHome := t.TempDir()
		t.Setenv(EnvConfig, "")
		t.Setenv("XDG_CONFIG_HOME", configHome)
		xdg.Reload()
		t.Cleanup(xdg.Reload)

		oldwd, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(t.TempDir()))
		t.Cleanup(func() { _ = os.Chdir(oldwd) })

		want := filepath.Join(configHome, AppDirName, ConfigFileName)
		require.NoError(t, os.MkdirAll(filepath.Dir(want), 0755))
		require.NoError(t, os.WriteFile(want, []byte(`path = "/tmp"`), 0644))

		got, err := FindConfigFile("")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestLogFilePath(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	assert.Equal(t, filepath.Join(stateHome, "scanwatch", "scanwatch.log"), LogFilePath())
}
