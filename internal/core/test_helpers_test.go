package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/npetrov/roomchat-server/internal/store"
)

// fakeStore is an in-memory store.Store with injectable failures.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]int64
	rooms       []*store.Room
	messages    []*store.Message
	failSaves   bool
	failCreates bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]int64)}
}

func (f *fakeStore) UpsertUser(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.users[username]
	if !ok {
		id = int64(len(f.users) + 1)
		f.users[username] = id
	}
	return &store.User{ID: id, Username: username}, nil
}

func (f *fakeStore) CreateRoom(_ context.Context, room *store.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failCreates {
		return errors.New("store unavailable")
	}
	for _, r := range f.rooms {
		if r.Name == room.Name {
			return store.ErrRoomExists
		}
	}
	copied := *room
	f.rooms = append(f.rooms, &copied)
	return nil
}

func (f *fakeStore) GetRoomByName(_ context.Context, name string) (*store.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.rooms {
		if r.Name == name {
			copied := *r
			return &copied, nil
		}
	}
	return nil, store.ErrRoomNotFound
}

func (f *fakeStore) ListRooms(_ context.Context) ([]*store.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*store.Room, 0, len(f.rooms))
	for _, r := range f.rooms {
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeStore) SaveMessage(_ context.Context, msg *store.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSaves {
		return errors.New("store unavailable")
	}
	copied := *msg
	f.messages = append(f.messages, &copied)
	return nil
}

func (f *fakeStore) ListRecentMessages(_ context.Context, room string, limit int) ([]*store.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []*store.Message
	for _, m := range f.messages {
		if m.Room == room {
			copied := *m
			matched = append(matched, &copied)
		}
	}
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) setFailSaves(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSaves = fail
}

func (f *fakeStore) setFailCreates(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCreates = fail
}

func (f *fakeStore) savedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

func (f *fakeStore) roomCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rooms)
}

func (f *fakeStore) seedMessage(room, username, text string, ts time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, &store.Message{
		ID:        fmt.Sprintf("seed-%d", len(f.messages)+1),
		Room:      room,
		Username:  username,
		Text:      text,
		Timestamp: ts,
	})
}

// startHub builds a hub over a fresh fake store with a bootstrapped
// directory and runs it until the test ends.
func startHub(t *testing.T) (*Hub, *fakeStore) {
	t.Helper()

	st := newFakeStore()
	directory := NewDirectory(st, nil, "general")
	if err := directory.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap directory: %v", err)
	}

	hub := NewHub(st, directory, 50, nil)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub, st
}

// mustEvent waits for the next event of the given kind, consuming
// everything before it.
func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

// mustMessageText waits for an EventMessage with the given text.
func mustMessageText(t *testing.T, ch <-chan *Event, text string) Message {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev != nil && ev.Kind == EventMessage && ev.Message.Text == text {
				return ev.Message
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected message %q not received", text)
	return Message{}
}

// collectEvents drains everything that arrives within the window.
func collectEvents(ch <-chan *Event, window time.Duration) []*Event {
	var out []*Event
	deadline := time.After(window)
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		case <-deadline:
			return out
		}
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, desc string, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition %q not met in time", desc)
}
