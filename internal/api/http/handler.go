package http

import (
	"net/http"

	"rps-arena/internal/api/ws"
	"rps-arena/internal/room"

	"github.com/gin-gonic/gin"
)

// @Summary List rooms
// @Description Returns a snapshot of every live room
// @Tags Room
// @Produce json
// @Success 200 {object} RoomsResponse
// @Router /rooms [get]
func ListRoomsHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := rm.Snapshots()
		c.JSON(http.StatusOK, RoomsResponse{Count: len(rooms), Rooms: rooms})
	}
}

// @Summary Get room
// @Description Returns the current state of one room
// @Tags Room
// @Produce json
// @Param roomKey path string true "Room key"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} ErrorResponse
// @Router /rooms/{roomKey} [get]
func GetRoomHandler(rm *room.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, ok := rm.Snapshot(c.Param("roomKey"))
		if !ok {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: room.ErrRoomNotFound.Error()})
			return
		}
		c.JSON(http.StatusOK, RoomResponse{Room: snap})
	}
}

// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HealthHandler(rm *room.Manager, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:      "ok",
			Rooms:       len(rm.Snapshots()),
			Connections: hub.ConnectionCount(),
		})
	}
}
