// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code inspection

package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "no_roots",
			code:    errors.ErrNoWatchRoots,
			message: "no watch root could be registered",
			wantStr: "[NO_WATCH_ROOTS] no watch root could be registered",
		},
		{
			name:    "invalid_config",
			code:    errors.ErrConfigValid,
			message: "rule print has no cmd",
			wantStr: "[CONFIG_INVALID] rule print has no cmd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrPatternInvalid, "rule %s: bad pattern %q", "print", "(")
	assert.Equal(t, `rule print: bad pattern "("`, err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("exec: \"lpr\": executable file not found in $PATH")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrLaunchFailed, "failed to launch lpr")
		require.NotNil(t, err)

		assert.Equal(t, errors.ErrLaunchFailed, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.True(t, stderrors.Is(err, baseErr))
		assert.Equal(t, "[LAUNCH_FAILED] failed to launch lpr: "+baseErr.Error(), err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrWatcherInit, "cannot watch").
		WithDetail("root", "/watch").
		WithDetail("backend", "inotify")

	assert.Equal(t, "/watch", err.Details["root"])
	assert.Equal(t, "inotify", err.Details["backend"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
}

func TestErrorCodeInspection(t *testing.T) {
	inner := errors.New(errors.ErrConfigNotFound, "no config")
	outer := fmt.Errorf("startup: %w", inner)

	assert.True(t, errors.IsErrorCode(outer, errors.ErrConfigNotFound))
	assert.False(t, errors.IsErrorCode(outer, errors.ErrConfigParse))
	assert.Equal(t, errors.ErrConfigNotFound, errors.GetErrorCode(outer))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))

	assert.True(t, stderrors.Is(outer, errors.New(errors.ErrConfigNotFound, "")))
}
