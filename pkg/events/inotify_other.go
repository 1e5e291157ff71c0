//go:build !linux

package events

import "github.com/arthur-debert/scanwatch/pkg/errors"

func openInotify(opts Options) (Source, error) {
	return nil, errors.New(errors.ErrBackendUnsupported, "the inotify backend is only available on Linux").
		WithDetail("roots", opts.Roots)
}
