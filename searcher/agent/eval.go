package agent

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
	"chengsan/searcher"
)

type evaluationAgent struct {
	player   *searcher.Player
	opponent searcher.Policy
}

// NewEvaluationAgent returns an agent that searches with rollouts, modelling
// the opponent with the given policy.
func NewEvaluationAgent(player *searcher.Player, opponent searcher.Policy) Agent {
	return evaluationAgent{player: player, opponent: opponent}
}

func (a evaluationAgent) FindMove(board *game.Board, round int) (game.Step, metrics.SearchMetric) {
	return a.player.Search(board, round, a.opponent)
}

func (a evaluationAgent) Tag() game.Tag {
	return a.player.Tag()
}

type randomAgent struct {
	player *searcher.Player
}

// NewRandomAgent returns a baseline agent that plays uniformly random steps.
func NewRandomAgent(player *searcher.Player) Agent {
	return randomAgent{player: player}
}

func (a randomAgent) FindMove(board *game.Board, round int) (game.Step, metrics.SearchMetric) {
	return a.player.RandomMove(board, round), metrics.SearchMetric{}
}

func (a randomAgent) Tag() game.Tag {
	return a.player.Tag()
}
