package types

// EventKind classifies a raw filesystem notification
type EventKind int

const (
	// EventOther covers every notification that carries no completion meaning
	EventOther EventKind = iota
	// EventCreated is emitted when a path first appears
	EventCreated
	// EventClosedWrite is emitted when a file opened for writing is closed
	EventClosedWrite
	// EventMovedIn is emitted when a file is renamed into a watched tree
	EventMovedIn
	// EventRemoved is emitted when a path is deleted or renamed away
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventClosedWrite:
		return "closed-write"
	case EventMovedIn:
		return "moved-in"
	case EventRemoved:
		return "removed"
	default:
		return "other"
	}
}

// RawEvent is one translated notification from the event source.
// Events are transient and ordered by arrival.
type RawEvent struct {
	Path  string
	Kind  EventKind
	IsDir bool
	// Op is the backend's own description of the notification, for diagnostics
	Op string
}
