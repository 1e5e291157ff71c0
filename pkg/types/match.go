package types

import "path/filepath"

// MatchContext carries the names derived from a ready file
type MatchContext struct {
	// Path is the absolute path of the file
	Path string
	// ShortName is the base file name
	ShortName string
}

// NewMatchContext derives the match context for an absolute file path
func NewMatchContext(path string) MatchContext {
	return MatchContext{
		Path:      path,
		ShortName: filepath.Base(path),
	}
}
