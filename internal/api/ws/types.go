package ws

import (
	"encoding/json"

	"rps-arena/internal/game"
)

// Inbound event names.
const (
	EventJoinRoom   = "join-room"
	EventPlayerMove = "player-move"
)

// EventConnected is sent once after the upgrade so the client learns its socket id.
const EventConnected = "connected"

// Envelope is the frame format in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// MovePayload is the data of a player-move event.
type MovePayload struct {
	RoomID string    `json:"roomId"`
	Move   game.Move `json:"move"`
}

type ConnectedPayload struct {
	SocketID string `json:"socketId"`
}
