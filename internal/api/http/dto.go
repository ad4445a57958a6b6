package http

import "rps-arena/internal/room"

// RoomResponse wraps a single room snapshot.
type RoomResponse struct {
	Room room.Snapshot `json:"room"`
}

// RoomsResponse lists every live room.
type RoomsResponse struct {
	Count int             `json:"count"`
	Rooms []room.Snapshot `json:"rooms"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
}

// MatchRulesResponse describes the rules clients play under.
type MatchRulesResponse struct {
	Rounds        int      `json:"rounds"`
	RoundDuration int      `json:"roundDuration"`
	Capacity      int      `json:"capacity"`
	Moves         []string `json:"moves"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
