package room_test

import (
	"io"
	"log/slog"
	"testing"

	"rps-arena/internal/config"
	"rps-arena/internal/game"
	"rps-arena/internal/room"
	"rps-arena/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	target string // room key for broadcasts, conn id for direct sends
	event  string
	data   interface{}
	direct bool
}

// recorder is a Broadcaster that remembers everything it was asked to do.
type recorder struct {
	sent     []sent
	members  map[string][]string
	released []string
	kicked   []string
}

func newRecorder() *recorder {
	return &recorder{members: map[string][]string{}}
}

func (r *recorder) Subscribe(roomKey, connID string) {
	r.members[roomKey] = append(r.members[roomKey], connID)
}

func (r *recorder) Release(roomKey string) {
	delete(r.members, roomKey)
	r.released = append(r.released, roomKey)
}

func (r *recorder) Broadcast(roomKey, event string, data interface{}) {
	r.sent = append(r.sent, sent{target: roomKey, event: event, data: data})
}

func (r *recorder) Send(connID, event string, data interface{}) {
	r.sent = append(r.sent, sent{target: connID, event: event, data: data, direct: true})
}

func (r *recorder) Kick(connID string) {
	r.kicked = append(r.kicked, connID)
}

func (r *recorder) events() []string {
	out := make([]string, 0, len(r.sent))
	for _, s := range r.sent {
		out = append(out, s.event)
	}
	return out
}

func (r *recorder) last() sent {
	return r.sent[len(r.sent)-1]
}

func (r *recorder) reset() {
	r.sent = nil
}

func newTestManager(t *testing.T) (*room.Manager, *recorder) {
	t.Helper()
	rec := newRecorder()
	cfg := config.Default().Match
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return room.NewManager(store.NewMemoryStore(), rec, cfg, logger), rec
}

// startMatch seats A and B in R1 and clears the recorder.
func startMatch(t *testing.T) (*room.Manager, *recorder) {
	t.Helper()
	m, rec := newTestManager(t)
	require.NoError(t, m.Join("R1", "A"))
	require.NoError(t, m.Join("R1", "B"))
	rec.reset()
	return m, rec
}

func TestJoin_SinglePlayerCreatesRoomWithoutStarting(t *testing.T) {
	m, rec := newTestManager(t)

	require.NoError(t, m.Join("R1", "A"))

	snap, ok := m.Snapshot("R1")
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, snap.Players)
	assert.Equal(t, map[string]int{"A": 0}, snap.Scores)
	assert.False(t, snap.RoundActive)
	assert.Nil(t, snap.StartedAt)
	assert.Empty(t, rec.sent, "no notifications with a single player")
	assert.Equal(t, []string{"A"}, rec.members["R1"])
}

func TestJoin_SecondPlayerStartsGameAndRound(t *testing.T) {
	m, rec := newTestManager(t)

	require.NoError(t, m.Join("R1", "A"))
	require.NoError(t, m.Join("R1", "B"))

	assert.Equal(t, []string{room.EventStartGame, room.EventStartRound}, rec.events())
	assert.Equal(t, "R1", rec.sent[0].target)
	assert.Equal(t, room.StartRoundPayload{RoundDuration: 5}, rec.sent[1].data)

	snap, ok := m.Snapshot("R1")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, snap.Players)
	assert.True(t, snap.RoundActive)
	assert.NotNil(t, snap.StartedAt)
}

func TestJoin_ThirdPlayerRejected(t *testing.T) {
	m, rec := startMatch(t)

	err := m.Join("R1", "C")
	assert.ErrorIs(t, err, room.ErrRoomFull)

	require.Len(t, rec.sent, 1)
	assert.Equal(t, sent{target: "C", event: room.EventRoomFull, data: rec.sent[0].data, direct: true}, rec.sent[0])
	assert.Equal(t, []string{"C"}, rec.kicked)

	snap, _ := m.Snapshot("R1")
	assert.Equal(t, []string{"A", "B"}, snap.Players)
	assert.NotContains(t, snap.Scores, "C")
	assert.Equal(t, []string{"A", "B"}, rec.members["R1"])
}

func TestJoin_DuplicateIgnored(t *testing.T) {
	m, rec := newTestManager(t)
	require.NoError(t, m.Join("R1", "A"))

	assert.ErrorIs(t, m.Join("R1", "A"), room.ErrAlreadyJoined)

	snap, _ := m.Snapshot("R1")
	assert.Equal(t, []string{"A"}, snap.Players)
	assert.Empty(t, rec.sent)
}

func TestSubmitMove_RoundResult(t *testing.T) {
	m, rec := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "A", game.Rock))
	assert.Empty(t, rec.sent, "one move does not adjudicate")

	require.NoError(t, m.SubmitMove("R1", "B", game.Scissors))

	require.Equal(t, []string{room.EventRoundResult, room.EventStartRound}, rec.events())
	assert.Equal(t, room.RoundResultPayload{
		RoundResult:    "A",
		WinnerSocketID: "A",
		Scores:         map[string]int{"A": 1, "B": 0},
		Rounds:         1,
	}, rec.sent[0].data)

	snap, _ := m.Snapshot("R1")
	assert.Equal(t, 1, snap.RoundNumber)
	assert.Empty(t, snap.Moved)
	assert.True(t, snap.RoundActive)
}

func TestSubmitMove_SecondSeatWins(t *testing.T) {
	m, rec := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "B", game.Paper))
	require.NoError(t, m.SubmitMove("R1", "A", game.Rock))

	res := rec.sent[0].data.(room.RoundResultPayload)
	assert.Equal(t, "B", res.RoundResult)
	assert.Equal(t, "B", res.WinnerSocketID)
	assert.Equal(t, map[string]int{"A": 0, "B": 1}, res.Scores)
}

func TestSubmitMove_DrawHasNoWinner(t *testing.T) {
	m, rec := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "A", game.Paper))
	require.NoError(t, m.SubmitMove("R1", "B", game.Paper))

	res := rec.sent[0].data.(room.RoundResultPayload)
	assert.Equal(t, "draw", res.RoundResult)
	assert.Empty(t, res.WinnerSocketID)
	assert.Equal(t, map[string]int{"A": 0, "B": 0}, res.Scores)
}

func TestSubmitMove_UnrecognizedMoveLoses(t *testing.T) {
	m, rec := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "A", game.Move("lizard")))
	require.NoError(t, m.SubmitMove("R1", "B", game.Scissors))

	res := rec.sent[0].data.(room.RoundResultPayload)
	assert.Equal(t, "B", res.WinnerSocketID)
}

func TestSubmitMove_LastWriteWins(t *testing.T) {
	m, rec := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "A", game.Scissors))
	require.NoError(t, m.SubmitMove("R1", "A", game.Rock))
	assert.Empty(t, rec.sent, "duplicate submission does not adjudicate")

	snap, _ := m.Snapshot("R1")
	assert.Equal(t, []string{"A"}, snap.Moved)

	require.NoError(t, m.SubmitMove("R1", "B", game.Scissors))
	res := rec.sent[0].data.(room.RoundResultPayload)
	assert.Equal(t, "A", res.WinnerSocketID)
}

func TestSubmitMove_Rejections(t *testing.T) {
	t.Run("unknown room", func(t *testing.T) {
		m, rec := newTestManager(t)
		assert.ErrorIs(t, m.SubmitMove("nope", "A", game.Rock), room.ErrRoomNotFound)
		assert.Empty(t, rec.sent)
	})

	t.Run("round not started", func(t *testing.T) {
		m, rec := newTestManager(t)
		require.NoError(t, m.Join("R1", "A"))
		assert.ErrorIs(t, m.SubmitMove("R1", "A", game.Rock), room.ErrRoundInactive)
		assert.Empty(t, rec.sent)

		snap, _ := m.Snapshot("R1")
		assert.Empty(t, snap.Moved)
	})

	t.Run("not seated", func(t *testing.T) {
		m, rec := startMatch(t)
		assert.ErrorIs(t, m.SubmitMove("R1", "C", game.Rock), room.ErrNotInRoom)
		assert.Empty(t, rec.sent)

		snap, _ := m.Snapshot("R1")
		assert.Empty(t, snap.Moved)
	})
}

func TestMatch_AllDrawsEndsInDraw(t *testing.T) {
	m, rec := startMatch(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, m.SubmitMove("R1", "A", game.Rock))
		require.NoError(t, m.SubmitMove("R1", "B", game.Rock))
	}

	got := rec.last()
	assert.Equal(t, room.EventGameResult, got.event)
	assert.Equal(t, room.GameResultPayload{
		GameResult:     "draw",
		WinnerSocketID: "draw",
		Scores:         map[string]int{"A": 0, "B": 0},
	}, got.data)

	_, ok := m.Snapshot("R1")
	assert.False(t, ok, "room destroyed after the final round")
	assert.Equal(t, []string{"R1"}, rec.released)

	// a later move from A is silently dropped
	rec.reset()
	assert.ErrorIs(t, m.SubmitMove("R1", "A", game.Rock), room.ErrRoomNotFound)
	assert.Empty(t, rec.sent)
}

func TestMatch_EventSequence(t *testing.T) {
	m, rec := startMatch(t)

	moves := [][2]game.Move{
		{game.Rock, game.Scissors},
		{game.Paper, game.Scissors},
		{game.Paper, game.Rock},
		{game.Rock, game.Rock},
		{game.Scissors, game.Paper},
	}
	for _, mv := range moves {
		require.NoError(t, m.SubmitMove("R1", "A", mv[0]))
		require.NoError(t, m.SubmitMove("R1", "B", mv[1]))
	}

	want := []string{
		room.EventRoundResult, room.EventStartRound,
		room.EventRoundResult, room.EventStartRound,
		room.EventRoundResult, room.EventStartRound,
		room.EventRoundResult, room.EventStartRound,
		room.EventRoundResult, room.EventGameResult,
	}
	assert.Equal(t, want, rec.events())

	final := rec.sent[8].data.(room.RoundResultPayload)
	assert.Equal(t, 5, final.Rounds)

	assert.Equal(t, room.GameResultPayload{
		GameResult:     "A",
		WinnerSocketID: "A",
		Scores:         map[string]int{"A": 3, "B": 1},
	}, rec.last().data)
}

func TestMatch_RoomKeyReusableAfterDestruction(t *testing.T) {
	m, rec := startMatch(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.SubmitMove("R1", "A", game.Paper))
		require.NoError(t, m.SubmitMove("R1", "B", game.Rock))
	}
	rec.reset()

	require.NoError(t, m.Join("R1", "A"))
	snap, ok := m.Snapshot("R1")
	require.True(t, ok)
	assert.Equal(t, 0, snap.RoundNumber)
	assert.Equal(t, map[string]int{"A": 0}, snap.Scores)
	assert.Empty(t, rec.sent)
}

func TestMatch_PendingMovesNeverExceedTwo(t *testing.T) {
	m, _ := startMatch(t)

	require.NoError(t, m.SubmitMove("R1", "A", game.Rock))
	_ = m.SubmitMove("R1", "C", game.Rock)
	snap, _ := m.Snapshot("R1")
	assert.LessOrEqual(t, len(snap.Moved), room.Capacity)

	require.NoError(t, m.SubmitMove("R1", "B", game.Paper))
	snap, _ = m.Snapshot("R1")
	assert.Empty(t, snap.Moved)
}

func TestDisconnect_MidRoundDestroysRoom(t *testing.T) {
	m, rec := startMatch(t)
	require.NoError(t, m.SubmitMove("R1", "B", game.Rock))

	m.Disconnect("A")

	_, ok := m.Snapshot("R1")
	assert.False(t, ok)
	assert.Empty(t, rec.sent, "remaining player is not notified")
	assert.Equal(t, []string{"R1"}, rec.released)

	assert.ErrorIs(t, m.SubmitMove("R1", "B", game.Paper), room.ErrRoomNotFound)
	assert.Empty(t, rec.sent)
}

func TestDisconnect_LastPlayerDestroysWaitingRoom(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Join("R1", "A"))

	m.Disconnect("A")

	_, ok := m.Snapshot("R1")
	assert.False(t, ok)
}

func TestDisconnect_UnknownConnectionIsNoop(t *testing.T) {
	m, rec := startMatch(t)

	m.Disconnect("Z")

	snap, ok := m.Snapshot("R1")
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, snap.Players)
	assert.Empty(t, rec.released)
}

func TestDisconnect_ScansEveryRoom(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Join("R1", "A"))
	require.NoError(t, m.Join("R2", "A"))
	require.NoError(t, m.Join("R3", "B"))

	m.Disconnect("A")

	snaps := m.Snapshots()
	require.Len(t, snaps, 1)
	assert.Equal(t, "R3", snaps[0].Key)
}

func TestSnapshots_SortedByKey(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.Join("b", "1"))
	require.NoError(t, m.Join("a", "2"))
	require.NoError(t, m.Join("c", "3"))

	var keys []string
	for _, s := range m.Snapshots() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestCustomRoundLimit(t *testing.T) {
	rec := newRecorder()
	cfg := config.MatchConfig{Rounds: 1, RoundDuration: 10}
	m := room.NewManager(store.NewMemoryStore(), rec, cfg, nil)

	require.NoError(t, m.Join("R1", "A"))
	require.NoError(t, m.Join("R1", "B"))
	assert.Equal(t, room.StartRoundPayload{RoundDuration: 10}, rec.sent[1].data)

	require.NoError(t, m.SubmitMove("R1", "A", game.Rock))
	require.NoError(t, m.SubmitMove("R1", "B", game.Paper))

	assert.Equal(t, room.EventGameResult, rec.last().event)
	_, ok := m.Snapshot("R1")
	assert.False(t, ok)
}
