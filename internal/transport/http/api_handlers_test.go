package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/npetrov/roomchat-server/internal/proto"
	"github.com/npetrov/roomchat-server/internal/store"
)

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t, newTestStore(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/health", nil))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestListRoomsEndpoint(t *testing.T) {
	st := newTestStore(t)

	base := time.Now().Add(-time.Hour)
	extra := &store.Room{ID: "r-random", Name: "random", CreatedAt: base.Add(time.Minute)}
	if err := st.CreateRoom(context.Background(), extra); err != nil {
		t.Fatalf("seed room: %v", err)
	}

	handler := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/rooms", nil))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var rooms []proto.RoomPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &rooms); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	names := map[string]bool{}
	for _, r := range rooms {
		names[r.Name] = true
	}
	if !names["general"] || !names["random"] {
		t.Fatalf("missing rooms in %v", rooms)
	}
}

func TestListMessagesEndpoint(t *testing.T) {
	st := newTestStore(t)
	seedMessages(t, st, "general", 60)
	seedMessages(t, st, "random", 3)

	handler := newTestHandler(t, st)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/messages/general", nil))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var messages []proto.MessagePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(messages) != 50 {
		t.Fatalf("expected 50 messages, got %d", len(messages))
	}
	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp.Before(messages[i-1].Timestamp) {
			t.Fatalf("messages out of order at %d", i)
		}
	}
	for _, msg := range messages {
		if msg.Room != "general" {
			t.Fatalf("message from wrong room: %+v", msg)
		}
	}
}

func TestListMessagesEndpointEmptyRoom(t *testing.T) {
	handler := newTestHandler(t, newTestStore(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/api/messages/ghost", nil))

	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var messages []proto.MessagePayload
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected no messages, got %d", len(messages))
	}
}

func TestWSEndpointRejectsPlainHTTP(t *testing.T) {
	handler := newTestHandler(t, newTestStore(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/ws", nil))

	if rec.Code < 400 {
		t.Fatalf("expected an upgrade failure, got %d", rec.Code)
	}
}
