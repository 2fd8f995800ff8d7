package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinRoom subscribes the client to a room.
	CommandJoinRoom CommandKind = iota
	// CommandLeaveRoom unsubscribes the client from a room.
	CommandLeaveRoom
	// CommandSendMessage delivers a chat message to room participants.
	CommandSendMessage
	// CommandCreateRoom adds a room to the directory.
	CommandCreateRoom
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Username string
	Room     string
	Text     string
	Name     string // room name for CommandCreateRoom
}
