package core

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/store"
)

// Coordinator performs the store-facing half of join handling: the user
// upsert and the history replay. Both run off the hub loop and degrade
// to logged failures so a slow or unreachable store never stalls live
// delivery.
type Coordinator struct {
	store        store.Store
	log          *zerolog.Logger
	historyLimit int
}

// NewCoordinator constructs a presence coordinator. The store may be
// nil, in which case joins proceed with no user record and no history.
func NewCoordinator(st store.Store, logger *zerolog.Logger, historyLimit int) *Coordinator {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Coordinator{
		store:        st,
		log:          logger,
		historyLimit: historyLimit,
	}
}

// RememberUser upserts the user by username. Fire-and-forget: failures
// are logged only.
func (p *Coordinator) RememberUser(ctx context.Context, username string) {
	if p.store == nil {
		return
	}
	if _, err := p.store.UpsertUser(ctx, username); err != nil {
		p.log.Warn().Err(err).Str("username", username).Msg("failed to upsert user")
	}
}

// ReplayHistory fetches the most recent messages for a room, ascending
// by timestamp, and delivers them to the joining client only as a
// single batch. Store failures degrade to no history.
func (p *Coordinator) ReplayHistory(ctx context.Context, c *Client, room string) {
	if p.store == nil {
		return
	}
	persisted, err := p.store.ListRecentMessages(ctx, room, p.historyLimit)
	if err != nil {
		p.log.Warn().Err(err).Str("room", room).Msg("failed to fetch history")
		return
	}
	if len(persisted) == 0 {
		return
	}

	history := make([]Message, 0, len(persisted))
	for _, m := range persisted {
		history = append(history, Message{
			ID:        m.ID,
			Text:      m.Text,
			Username:  m.Username,
			Room:      m.Room,
			Timestamp: m.Timestamp,
		})
	}
	c.trySend(&Event{Kind: EventHistory, Messages: history})
}
