package engine

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
)

type Runner interface {
	// Run plays a game till there's a winner or a max number of rounds is reached
	Run() (winner game.Tag, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
