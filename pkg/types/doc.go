// Package types defines the core data types shared by the scanwatch pipeline:
// rules and watch roots loaded from configuration, raw filesystem events produced
// by the event source, and the per-file match context used for templating.
package types
