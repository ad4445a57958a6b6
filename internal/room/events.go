package room

// Outbound event names.
const (
	EventStartGame   = "start-game"
	EventRoomFull    = "room-full"
	EventStartRound  = "start-round"
	EventRoundResult = "round-result"
	EventGameResult  = "game-result"
)

const (
	startGameMessage = "Game starting!"
	roomFullMessage  = "Room is already full. Please try another room."
)

type StartRoundPayload struct {
	RoundDuration int `json:"roundDuration"`
}

// RoundResultPayload carries "draw" or the winner's connection id in RoundResult.
type RoundResultPayload struct {
	RoundResult    string         `json:"roundResult"`
	WinnerSocketID string         `json:"winnerSocketId,omitempty"`
	Scores         map[string]int `json:"scores"`
	Rounds         int            `json:"rounds"`
}

// GameResultPayload mirrors GameResult into WinnerSocketID, so it reads "draw" on a tie.
type GameResultPayload struct {
	GameResult     string         `json:"gameResult"`
	WinnerSocketID string         `json:"winnerSocketId"`
	Scores         map[string]int `json:"scores"`
}
