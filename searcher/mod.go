package searcher

import (
	"chengsan/game"

	"golang.org/x/exp/rand"
)

// Rollout outcomes from the searching player's perspective
const WIN = 1
const LOSS = 0

// Score given to a candidate that loses on the spot, below any rollout score
const IMMEDIATE_LOSS = -1

// Policy picks moves for one side inside rollouts. Implementations must only
// draw randomness from r, which is private to the calling goroutine.
type Policy interface {
	Tag() game.Tag
	Sample(r *rand.Rand, board *game.Board, round int) game.Step
}

func rewarder(player game.Tag) func(winner game.Tag) int {
	return func(winner game.Tag) int {
		if winner == player {
			return WIN
		}
		return LOSS
	}
}
