package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/sample.toml
var sampleConfig []byte

// DefaultsContent returns the built-in defaults document
func DefaultsContent() string {
	return string(defaultConfig)
}

// rawBytesProvider feeds an embedded document to koanf through a parser
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }

// Read is unsupported; the embedded documents always go through toml.Parser
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("rawBytesProvider requires a parser")
}
