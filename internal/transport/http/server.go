package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/npetrov/roomchat-server/internal/config"
	"github.com/npetrov/roomchat-server/internal/core"
	"github.com/npetrov/roomchat-server/internal/store"
)

// NewServer builds the HTTP server: the websocket endpoint plus the
// read-only query surface.
func NewServer(hub *core.Hub, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery(), CORSMiddleware())

	handlers := NewQueryHandlers(st, logger, cfg.HistoryLimit)
	router.GET("/health", handlers.Health)

	api := router.Group("/api")
	api.GET("/rooms", handlers.ListRooms)
	api.GET("/messages/:room", handlers.ListMessages)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
