// Test Type: Unit Test
// Description: Tests for backend selection and Open argument handling

package events

import (
	"runtime"
	"testing"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		in      string
		want    Backend
		wantErr bool
	}{
		{"", BackendAuto, false},
		{"auto", BackendAuto, false},
		{"inotify", BackendInotify, false},
		{" FSNotify", BackendFsnotify, false},
		{"kqueue", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBackend(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackend_Resolve(t *testing.T) {
	want := BackendFsnotify
	if runtime.GOOS == "linux" {
		want = BackendInotify
	}
	assert.Equal(t, want, BackendAuto.Resolve())
	assert.Equal(t, want, Backend("").Resolve())
	assert.Equal(t, BackendFsnotify, BackendFsnotify.Resolve())
}

func TestOpen_NoRoots(t *testing.T) {
	_, err := Open(Options{Backend: BackendFsnotify})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoWatchRoots))
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, DefaultSettle, o.Settle)
	assert.Equal(t, DefaultBuffer, o.Buffer)
	assert.NotNil(t, o.Fs)
}

func TestOpen_AutoSelectsInotifyOnLinux(t *testing.T) {
	testutil.SkipUnlessLinux(t)

	src, err := Open(Options{Backend: BackendAuto, Roots: []string{t.TempDir()}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	_, isFsnotify := src.(*fsnotifySource)
	assert.False(t, isFsnotify)
}
