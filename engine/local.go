package engine

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
	"chengsan/meta"
	"chengsan/searcher/agent"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(e *Engine)

type Engine struct {
	Board     *game.Board
	Round     int
	Agents    [2]agent.Agent
	maxRounds int
	render    io.Writer
}

// WithMaxRounds stops the game as a draw after the given number of rounds.
func WithMaxRounds(rounds int) Option {
	return func(e *Engine) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// WithRenderer draws the board to w after every step.
func WithRenderer(w io.Writer) Option {
	return func(e *Engine) {
		e.render = w
	}
}

func LocalEngine(agents [2]agent.Agent, options ...Option) *Engine {
	if agents[0] == nil || agents[1] == nil {
		panic("need two agents")
	}
	if agents[0].Tag() != game.First || agents[1].Tag() != game.Second {
		panic("agents must play first and second in order")
	}

	e := &Engine{
		Board:     game.NewBoard(),
		Agents:    agents,
		maxRounds: meta.MAX_ROUNDS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until a winner is found. The winner is
// game.Empty when the round cap is hit.
func (e *Engine) Run() (game.Tag, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(game.First),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s player is starting", game.First)

	winner := game.Empty
	step := 0
loop:
	for e.Round < e.maxRounds {
		for _, a := range e.Agents {
			move, searchMetric := a.FindMove(e.Board, e.Round)
			e.Board.Apply(move, e.Round)
			step++

			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Step:         step,
				Round:        e.Round,
				Player:       int(a.Tag()),
				Move:         move.String(),
				SearchMetric: searchMetric,
			})
			log.Debug().
				Int("round", e.Round).
				Stringer("step", move).
				Stringer("board", e.Board).
				Uint64("hash", e.Board.Hash()).
				Msg("played")

			if e.render != nil {
				Render(e.render, e.Board, e.Round)
			}

			if over, w := e.Board.IsTerminal(e.Round); over {
				winner = w
				break loop
			}
		}
		e.Round++
	}

	if winner != game.Empty {
		log.Info().Msgf("game ended in round %d, winner: %s", e.Round, winner)
	} else {
		log.Info().Msgf("stopped after %d rounds (no winner)", e.Round)
	}

	gameMetric.Winner = winner.String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.Rounds = e.Round
	gameMetric.TotalMoves = step
	return winner, gameMetric, moveMetrics
}
