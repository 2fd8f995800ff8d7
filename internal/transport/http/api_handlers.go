package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/proto"
	"github.com/npetrov/roomchat-server/internal/store"
)

// QueryHandlers serves the read-only polling surface. It reads the
// store directly, outside the hub loop.
type QueryHandlers struct {
	store        store.Store
	log          *zerolog.Logger
	historyLimit int
}

// NewQueryHandlers creates the read-only query handlers.
func NewQueryHandlers(st store.Store, logger *zerolog.Logger, historyLimit int) *QueryHandlers {
	return &QueryHandlers{
		store:        st,
		log:          logger,
		historyLimit: historyLimit,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns all rooms in creation order.
// GET /api/rooms
func (h *QueryHandlers) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRooms(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]proto.RoomPayload, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, proto.RoomPayload{
			ID:        room.ID,
			Name:      room.Name,
			CreatedAt: room.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// ListMessages returns up to the history limit of most recent messages
// for a room, ascending by timestamp.
// GET /api/messages/:room
func (h *QueryHandlers) ListMessages(c *gin.Context) {
	room := c.Param("room")

	messages, err := h.store.ListRecentMessages(c.Request.Context(), room, h.historyLimit)
	if err != nil {
		h.log.Error().Err(err).Str("room", room).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	out := make([]proto.MessagePayload, 0, len(messages))
	for _, msg := range messages {
		out = append(out, proto.MessagePayload{
			ID:        msg.ID,
			Text:      msg.Text,
			Username:  msg.Username,
			Room:      msg.Room,
			Timestamp: msg.Timestamp,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Health is the liveness probe.
// GET /health
func (h *QueryHandlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
