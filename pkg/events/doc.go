// Package events turns operating-system file notifications into an ordered
// stream of types.RawEvent values for one or more watch roots.
//
// Two backends are available:
//
//   - inotify (Linux only) reports IN_CLOSE_WRITE directly, so a file is
//     known to be complete the moment its writer closes it.
//   - fsnotify works on every platform but has no close-write signal. A
//     ClosedWrite is synthesised once the file's size and modification
//     time have stayed unchanged for the settle period after its last write.
//
// The source does no filtering. Every translated event, directories
// included, is forwarded and classification is left to the consumer.
//
// A root that cannot be registered is logged and skipped. Open only fails
// when no root at all could be registered or the notification mechanism
// itself is unavailable.
package events
