package store

import (
	"context"
	"errors"
	"time"
)

// User is a persisted chat participant, keyed by username.
// Users exist independently of live connections.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Room is a persisted chat room. Names are globally unique.
type Room struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Message is a persisted chat message. Room references the room by name.
type Message struct {
	ID        string
	Room      string
	Username  string
	Text      string
	Timestamp time.Time
}

var (
	// ErrRoomExists is returned by CreateRoom when the name is taken.
	ErrRoomExists = errors.New("room already exists")
	// ErrRoomNotFound is returned by GetRoomByName for unknown names.
	ErrRoomNotFound = errors.New("room not found")
)

// UserStore handles user persistence.
type UserStore interface {
	// UpsertUser creates the user on first sight and is a no-op afterwards.
	UpsertUser(ctx context.Context, username string) (*User, error)
}

// RoomStore handles room persistence.
type RoomStore interface {
	// CreateRoom persists a new room. Returns ErrRoomExists when the
	// name is already taken.
	CreateRoom(ctx context.Context, room *Room) error

	// GetRoomByName retrieves a room by name. Returns ErrRoomNotFound
	// for unknown names.
	GetRoomByName(ctx context.Context, name string) (*Room, error)

	// ListRooms lists all rooms in creation order.
	ListRooms(ctx context.Context) ([]*Room, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message.
	SaveMessage(ctx context.Context, msg *Message) error

	// ListRecentMessages returns up to limit most recent messages for a
	// room, ordered ascending by timestamp.
	ListRecentMessages(ctx context.Context, room string, limit int) ([]*Message, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	RoomStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
