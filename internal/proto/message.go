package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinRoom    = "join-room"
	InboundTypeLeaveRoom   = "leave-room"
	InboundTypeSendMessage = "send-message"
	InboundTypeCreateRoom  = "create-room"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventMessage  = "message"
	EventRoomList = "room-list"
)

// JoinRoomData asks to join a room under a display name.
type JoinRoomData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// LeaveRoomData asks to leave a room.
type LeaveRoomData struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// SendMessageData is a chat message from the client.
type SendMessageData struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	Room     string `json:"room"`
}

// CreateRoomData asks to add a room to the directory.
type CreateRoomData struct {
	Name string `json:"name"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessagePayload is a chat message or system notice on the wire. The
// history replay batch is an array of these under the same event name.
type MessagePayload struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Username  string    `json:"username"`
	Room      string    `json:"room"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomPayload is a directory entry on the wire.
type RoomPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
