package room

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"rps-arena/internal/config"
	"rps-arena/internal/game"
)

// Manager owns the room registry and runs the round state machine.
// Every exported method holds mu for its whole duration, including the
// broadcasts it issues, so events are applied one at a time and each room's
// notifications go out in mutation order.
type Manager struct {
	mu     sync.Mutex
	store  Store
	hub    Broadcaster
	cfg    config.MatchConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewManager(s Store, hub Broadcaster, cfg config.MatchConfig, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  s,
		hub:    hub,
		cfg:    cfg,
		logger: logger.With("component", "room_manager"),
		now:    time.Now,
	}
}

// Join seats connID in the room, creating the room on first use.
// The second seat starts the match.
func (m *Manager) Join(roomKey, connID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomKey)
	if ok {
		if r.seat(connID) >= 0 {
			m.logger.Warn("duplicate join ignored", "room", roomKey, "conn", connID)
			return ErrAlreadyJoined
		}
		if len(r.Players) >= Capacity {
			m.logger.Info("rejecting join, room full", "room", roomKey, "conn", connID)
			m.hub.Send(connID, EventRoomFull, roomFullMessage)
			m.hub.Kick(connID)
			return ErrRoomFull
		}
	} else {
		r = newRoom(roomKey, m.now())
		m.store.SaveRoom(r)
	}

	r.Players = append(r.Players, connID)
	r.Scores[connID] = 0
	m.hub.Subscribe(roomKey, connID)

	m.logger.Info("player joined",
		"room", roomKey,
		"conn", connID,
		"players", strings.Join(r.Players, ","),
	)

	if len(r.Players) == Capacity {
		r.StartedAt = m.now()
		m.logger.Info("room full, starting match", "room", roomKey)
		m.hub.Broadcast(roomKey, EventStartGame, startGameMessage)
		m.beginRound(roomKey)
	}
	return nil
}

// SubmitMove records connID's move for the current round. The second move of
// a round adjudicates it. Moves to a missing or idle room are dropped.
func (m *Manager) SubmitMove(roomKey, connID string, move game.Move) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomKey)
	if !ok {
		m.logger.Warn("move dropped", "room", roomKey, "conn", connID, "error", ErrRoomNotFound)
		return ErrRoomNotFound
	}
	if !r.RoundActive {
		m.logger.Warn("move dropped", "room", roomKey, "conn", connID, "error", ErrRoundInactive)
		return ErrRoundInactive
	}
	if r.seat(connID) < 0 {
		m.logger.Warn("move dropped", "room", roomKey, "conn", connID, "error", ErrNotInRoom)
		return ErrNotInRoom
	}

	r.PendingMoves[connID] = move
	m.logger.Debug("move recorded", "room", roomKey, "conn", connID, "move", move)

	if len(r.PendingMoves) == Capacity {
		m.finishRound(r)
	}
	return nil
}

// Disconnect removes connID from every room it sits in. A room left empty or
// with a match in progress is torn down without notice.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.store.Rooms() {
		i := r.seat(connID)
		if i < 0 {
			continue
		}
		r.Players = slices.Delete(r.Players, i, i+1)
		delete(r.Scores, connID)
		delete(r.PendingMoves, connID)

		m.logger.Info("player left", "room", r.Key, "conn", connID, "remaining", len(r.Players))

		if len(r.Players) == 0 || r.started() {
			m.destroy(r.Key, "player disconnected")
		}
	}
}

// Snapshot returns a copy of the room's current state.
func (m *Manager) Snapshot(roomKey string) (Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.store.GetRoom(roomKey)
	if !ok {
		return Snapshot{}, false
	}
	return r.snapshot(), true
}

// Snapshots returns every live room ordered by key.
func (m *Manager) Snapshots() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	rooms := m.store.Rooms()
	out := make([]Snapshot, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.snapshot())
	}
	slices.SortFunc(out, func(a, b Snapshot) int { return strings.Compare(a.Key, b.Key) })
	return out
}

func (m *Manager) beginRound(roomKey string) {
	r, ok := m.store.GetRoom(roomKey)
	if !ok {
		return
	}
	r.RoundActive = true
	clear(r.PendingMoves)
	m.hub.Broadcast(roomKey, EventStartRound, StartRoundPayload{RoundDuration: m.cfg.RoundDuration})
}

func (m *Manager) finishRound(r *Room) {
	// Close the round first so nothing submitted from here re-adjudicates it.
	r.RoundActive = false

	first, second := r.Players[0], r.Players[1]
	winner := seatID(game.ResolveRound(r.PendingMoves[first], r.PendingMoves[second]), first, second)
	if winner != "" {
		r.Scores[winner]++
	}
	r.RoundNumber++
	clear(r.PendingMoves)

	m.logger.Info("round complete",
		"room", r.Key,
		"round", r.RoundNumber,
		"winner", outcome(winner),
	)
	m.hub.Broadcast(r.Key, EventRoundResult, RoundResultPayload{
		RoundResult:    outcome(winner),
		WinnerSocketID: winner,
		Scores:         r.scoresCopy(),
		Rounds:         r.RoundNumber,
	})

	if r.RoundNumber >= m.cfg.Rounds {
		m.finishMatch(r)
		return
	}
	m.beginRound(r.Key)
}

func (m *Manager) finishMatch(r *Room) {
	first, second := r.Players[0], r.Players[1]
	result := outcome(seatID(game.ResolveMatch(r.Scores[first], r.Scores[second]), first, second))

	m.logger.Info("match complete", "room", r.Key, "result", result)
	m.hub.Broadcast(r.Key, EventGameResult, GameResultPayload{
		GameResult:     result,
		WinnerSocketID: result,
		Scores:         r.scoresCopy(),
	})
	m.destroy(r.Key, "match complete")
}

func (m *Manager) destroy(roomKey, reason string) {
	m.store.DeleteRoom(roomKey)
	m.hub.Release(roomKey)
	m.logger.Info("room destroyed", "room", roomKey, "reason", reason)
}

func seatID(res game.Result, first, second string) string {
	switch res {
	case game.ResultFirst:
		return first
	case game.ResultSecond:
		return second
	default:
		return ""
	}
}

func outcome(winner string) string {
	if winner == "" {
		return game.Draw
	}
	return winner
}
