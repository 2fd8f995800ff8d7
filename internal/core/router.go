package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/store"
)

// Router validates and timestamps outgoing chat messages. Acceptance
// happens on the hub loop, so the assigned timestamps define the
// per-room delivery order.
type Router struct {
	store store.MessageStore
	log   *zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewRouter constructs a message router. The store may be nil, in which
// case messages are delivered without persistence.
func NewRouter(st store.MessageStore, logger *zerolog.Logger) *Router {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Router{
		store: st,
		log:   logger,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Accept validates a send request and stamps it with a fresh id and the
// current time. Blank text, missing username or missing room are
// rejected before any state mutation.
func (r *Router) Accept(text, username, room string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, coreError(ErrCodeInvalidMessage, "text is required")
	}
	if username == "" {
		return Message{}, coreError(ErrCodeInvalidMessage, "username is required")
	}
	if room == "" {
		return Message{}, coreError(ErrCodeInvalidMessage, "room is required")
	}

	return Message{
		ID:        r.newID(),
		Text:      text,
		Username:  username,
		Room:      room,
		Timestamp: r.now(),
	}, nil
}

// Notice synthesizes a system message for join/leave announcements.
// Notices are emitted only, never persisted.
func (r *Router) Notice(text, room string) Message {
	return Message{
		ID:        r.newID(),
		Text:      text,
		Username:  SystemUsername,
		Room:      room,
		Timestamp: r.now(),
	}
}

// Persist writes an accepted message to the store. Failures are logged
// and never reach the delivery path.
func (r *Router) Persist(ctx context.Context, msg Message) {
	if r.store == nil {
		return
	}
	err := r.store.SaveMessage(ctx, &store.Message{
		ID:        msg.ID,
		Room:      msg.Room,
		Username:  msg.Username,
		Text:      msg.Text,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		r.log.Warn().Err(err).Str("room", msg.Room).Str("message_id", msg.ID).Msg("failed to persist message")
	}
}
