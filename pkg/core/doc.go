// Package core runs the scanwatch pipeline: it consumes the event stream,
// detects completed files and dispatches every matching rule.
//
// # Processing Model
//
// A single goroutine owns the loop started by Engine.Run. For each raw event:
//
//  1. The completion detector decides whether the event completes a file.
//  2. For a ready file, the candidate rules are those bound to every watch
//     root containing it (see Scope).
//  3. Each candidate is evaluated by the matcher; all matching rules fire,
//     in rule-name order.
//  4. Each firing rule is expanded and handed to the dispatcher, which launches
//     the command without waiting and sends the notification.
//
// A ready file is fully processed before the next event is read, so dispatches
// are ordered like the ready signals that caused them.
//
// # Failure Handling
//
// Nothing that happens to a single file stops the loop. Launch and notification
// failures are logged and counted in Stats; invalid filters are logged.
// Transport errors from the event source are logged and the loop keeps
// reading. Run returns when its context is cancelled or the event stream ends.
package core
