package room

import (
	"maps"
	"slices"
	"time"

	"rps-arena/internal/game"
)

// Capacity is the number of seats in a room.
const Capacity = 2

// Room is one match context. Players[0] is the first seat.
type Room struct {
	Key          string
	Players      []string
	Scores       map[string]int
	PendingMoves map[string]game.Move
	RoundNumber  int
	RoundActive  bool
	CreatedAt    time.Time
	StartedAt    time.Time
}

// Store holds the live rooms by key.
type Store interface {
	GetRoom(key string) (*Room, bool)
	SaveRoom(r *Room)
	DeleteRoom(key string)
	Rooms() []*Room
}

func newRoom(key string, now time.Time) *Room {
	return &Room{
		Key:          key,
		Players:      make([]string, 0, Capacity),
		Scores:       make(map[string]int, Capacity),
		PendingMoves: make(map[string]game.Move, Capacity),
		CreatedAt:    now,
	}
}

func (r *Room) seat(connID string) int {
	return slices.Index(r.Players, connID)
}

func (r *Room) started() bool {
	return !r.StartedAt.IsZero()
}

func (r *Room) scoresCopy() map[string]int {
	return maps.Clone(r.Scores)
}

// Snapshot is a read-only view of a room.
type Snapshot struct {
	Key         string         `json:"key"`
	Players     []string       `json:"players"`
	Scores      map[string]int `json:"scores"`
	Moved       []string       `json:"moved"`
	RoundNumber int            `json:"roundNumber"`
	RoundActive bool           `json:"roundActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
}

func (r *Room) snapshot() Snapshot {
	// Equivalent of slices.Sorted(maps.Keys(r.PendingMoves)) for Go 1.21.
	var moved []string
	for k := range r.PendingMoves {
		moved = append(moved, k)
	}
	slices.Sort(moved)
	s := Snapshot{
		Key:         r.Key,
		Players:     slices.Clone(r.Players),
		Scores:      r.scoresCopy(),
		Moved:       moved,
		RoundNumber: r.RoundNumber,
		RoundActive: r.RoundActive,
		CreatedAt:   r.CreatedAt,
	}
	if r.started() {
		t := r.StartedAt
		s.StartedAt = &t
	}
	return s
}
