package game

// ResolveRound decides a round between the first and second seat.
// Identical moves draw. When neither move beats the other (two different
// unrecognized values) the second seat takes the round.
func ResolveRound(first, second Move) Result {
	switch {
	case first == second:
		return ResultDraw
	case first.Beats(second):
		return ResultFirst
	default:
		return ResultSecond
	}
}

// ResolveMatch compares final scores: higher wins, equal is a draw.
func ResolveMatch(firstScore, secondScore int) Result {
	switch {
	case firstScore > secondScore:
		return ResultFirst
	case secondScore > firstScore:
		return ResultSecond
	default:
		return ResultDraw
	}
}
