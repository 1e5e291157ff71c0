// Package paths provides centralized path handling for scanwatch.
// It resolves the configuration file following the XDG Base Directory
// specification, locates the log file and canonicalizes watch roots.
package paths
