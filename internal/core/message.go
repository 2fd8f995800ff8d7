package core

import "time"

// SystemUsername authors the synthesized join/leave notices.
const SystemUsername = "System"

// Message is the domain model for a chat message. Immutable once built.
type Message struct {
	ID        string
	Text      string
	Username  string
	Room      string
	Timestamp time.Time
}

// Room is a directory entry for a named channel.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
