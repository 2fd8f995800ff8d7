package http

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/config"
	"github.com/npetrov/roomchat-server/internal/core"
	"github.com/npetrov/roomchat-server/internal/store"
	"github.com/npetrov/roomchat-server/internal/store/sqlite"
)

// newTestStore creates an in-memory SQLite store with the schema applied.
func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// newTestHandler builds the full HTTP handler over the given store.
func newTestHandler(t *testing.T, st store.Store) stdhttp.Handler {
	t.Helper()

	nop := zerolog.Nop()
	cfg := config.Default()

	directory := core.NewDirectory(st, &nop, cfg.DefaultRoom)
	if err := directory.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap directory: %v", err)
	}
	hub := core.NewHub(st, directory, cfg.HistoryLimit, &nop)

	return NewServer(hub, st, cfg, &nop).Handler
}

// seedMessages persists n messages into room with ascending timestamps.
func seedMessages(t *testing.T, st store.Store, room string, n int) {
	t.Helper()

	base := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	for i := 0; i < n; i++ {
		msg := &store.Message{
			ID:        fmt.Sprintf("%s-m%d", room, i),
			Room:      room,
			Username:  "alice",
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := st.SaveMessage(context.Background(), msg); err != nil {
			t.Fatalf("seed message %d: %v", i, err)
		}
	}
}
