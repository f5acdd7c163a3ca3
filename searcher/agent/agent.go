package agent

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
)

type Agent interface {
	// FindMove returns the step to play and performance metrics (if collected) from the search
	FindMove(board *game.Board, round int) (game.Step, metrics.SearchMetric)
	Tag() game.Tag
}
