package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMessage carries one chat message or system notice.
	EventMessage EventKind = iota
	// EventHistory delivers the recent-history batch to a joining client.
	EventHistory
	// EventRoomList delivers the room directory listing.
	EventRoomList
	// EventError notifies a client about a domain error.
	EventError
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	Message  Message
	Messages []Message // for EventHistory
	Rooms    []Room    // for EventRoomList
	Error    *CoreError
}
