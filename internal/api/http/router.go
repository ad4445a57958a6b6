package http

import (
	"log/slog"

	"rps-arena/internal/api/ws"
	"rps-arena/internal/config"
	"rps-arena/internal/room"

	"github.com/gin-gonic/gin"
)

func NewRouter(rm *room.Manager, hub *ws.Hub, cfg config.Config, logger *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger), CORS(cfg.Server.AllowedOrigins))

	// WebSocket game channel
	r.GET("/ws", hub.HandleWS)

	// --- ROOM ENDPOINTS ---
	r.GET("/rooms", ListRoomsHandler(rm))
	r.GET("/rooms/:roomKey", GetRoomHandler(rm))

	// --- CONFIG ENDPOINTS ---
	ch := NewConfigHandler(cfg.Match)
	r.GET("/config/match", ch.GetMatchRulesHandler)

	r.GET("/healthz", HealthHandler(rm, hub))

	return r
}
