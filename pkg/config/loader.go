package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/scanwatch/pkg/errors"
	"github.com/arthur-debert/scanwatch/pkg/logging"
	"github.com/arthur-debert/scanwatch/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of configuration environment variables
const EnvPrefix = "SCANWATCH_"

// envLevelSeparator separates key levels in environment variable names
const envLevelSeparator = "__"

// Load finds the configuration file and loads it.
// explicit is the --config flag value and may be empty.
func Load(explicit string) (*Config, error) {
	path, err := paths.FindConfigFile(explicit)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads and validates the configuration in path
func LoadFile(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	k, err := loadLayers(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode configuration from %s", path).
			WithDetail("path", path)
	}
	cfg.File = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("path", path).
		Int("rules", len(cfg.Rules)).
		Int("roots", len(cfg.Roots)).
		Msg("Configuration loaded")

	return &cfg, nil
}

func loadLayers(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	// 2. The configuration file
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "failed to read configuration from %s", path).
			WithDetail("path", path)
	}
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse configuration from %s", path).
			WithDetail("path", path)
	}

	// 3. Legacy single-printer documents
	if legacy := legacyRule(k); legacy != nil {
		if err := k.Load(confmap.Provider(legacy, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to migrate legacy configuration")
		}
		logger := logging.GetLogger("config")
		logger.Info().
			Str("printer", k.String("printer")).
			Msg("Migrated legacy printer setting to the print rule")
	}

	// 4. Environment
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	return k, nil
}

// envKey maps SCANWATCH_WATCH__POLICY to watch.policy.
// Empty values and the config file selector are skipped.
func envKey(key, value string) (string, interface{}) {
	if value == "" || key == paths.EnvConfig {
		return "", nil
	}
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(name, envLevelSeparator, "."), value
}
