package game

// Move is a value submitted by a player for the current round.
// Anything other than the three known values is kept as-is and
// treated as unrecognized.
type Move string

const (
	Rock     Move = "rock"
	Paper    Move = "paper"
	Scissors Move = "scissors"
)

// Draw is the outcome label used when nobody wins a round or a match.
const Draw = "draw"

// beats maps each recognized move to the move it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// Valid reports whether m is one of rock, paper or scissors.
func (m Move) Valid() bool {
	_, ok := beats[m]
	return ok
}

// Beats reports whether m defeats other. An unrecognized move never beats
// anything and a recognized move always beats an unrecognized one.
func (m Move) Beats(other Move) bool {
	if !m.Valid() {
		return false
	}
	if !other.Valid() {
		return true
	}
	return beats[m] == other
}

// Result is the outcome of a round or a match between two seats.
type Result int

const (
	ResultDraw Result = iota
	ResultFirst
	ResultSecond
)

func (r Result) String() string {
	switch r {
	case ResultFirst:
		return "first"
	case ResultSecond:
		return "second"
	default:
		return Draw
	}
}
