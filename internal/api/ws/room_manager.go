package ws

import "rps-arena/internal/game"

// RoomManager is the part of room.Manager the hub dispatches client events to.
type RoomManager interface {
	Join(roomKey, connID string) error
	SubmitMove(roomKey, connID string, move game.Move) error
	Disconnect(connID string)
}
