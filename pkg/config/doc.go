// Package config loads the scanwatch configuration.
//
// Sources are layered with koanf, later ones overriding earlier ones:
//
//  1. built-in defaults (embedded/defaults.toml)
//  2. the configuration file (scanwatch.toml)
//  3. migration of the legacy single-printer document
//  4. SCANWATCH_ environment variables, with "__" separating key levels,
//     e.g. SCANWATCH_WATCH__POLICY=strict or SCANWATCH_NOTIFY__ON_START=false
//
// The decoded Config is validated before it is returned and converted into
// the rule and watch-root types the engine works with.
package config
