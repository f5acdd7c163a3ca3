package searcher

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
	"chengsan/meta"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

type Option func(p *Player)

// Player picks moves for one side, either uniformly at random or by scoring
// every candidate with random rollouts. A Player is not safe for concurrent use.
type Player struct {
	tag        game.Tag
	opponent   game.Tag
	goroutines int
	rollouts   int
	cutoff     int
	duration   time.Duration
	rng        *rand.Rand
	metrics    metrics.Collector
	logger     zerolog.Logger
}

func WithGoroutines(goroutines int) Option {
	return func(p *Player) {
		if goroutines > 0 {
			p.goroutines = goroutines
		}
	}
}

// WithRollouts sets the number of rollouts per candidate.
func WithRollouts(rollouts int) Option {
	return func(p *Player) {
		if rollouts > 0 {
			p.rollouts = rollouts
		}
	}
}

// WithCutoff sets how many exchanges a rollout plays before it is scored by material.
func WithCutoff(depth int) Option {
	return func(p *Player) {
		if depth > 0 {
			p.cutoff = depth
		}
	}
}

// WithDuration bounds the time spent on rollouts for one search.
func WithDuration(duration time.Duration) Option {
	return func(p *Player) {
		if duration > 0 {
			p.duration = duration
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(p *Player) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(r *rand.Rand) Option {
	return func(p *Player) {
		if r != nil {
			p.rng = r
		}
	}
}

func WithMetrics() Option {
	return func(p *Player) {
		p.metrics = metrics.NewCollector()
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

func NewPlayer(tag game.Tag, options ...Option) *Player {
	p := &Player{ // Default values
		tag:        tag,
		opponent:   tag.Opponent(),
		goroutines: meta.GO_ROUTINES,
		rollouts:   meta.ROLLOUTS,
		cutoff:     meta.CUTOFF,
		metrics:    metrics.NewDummyCollector(),
		logger:     zerolog.Nop(),
	}
	for _, option := range options {
		option(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return p
}

func (p *Player) Tag() game.Tag {
	return p.tag
}

func (p *Player) OpponentTag() game.Tag {
	return p.opponent
}

// RandomMove returns a uniformly random legal step for the player, using the
// player's own random source. The caller must make sure the game is not over.
func (p *Player) RandomMove(board *game.Board, round int) game.Step {
	return p.Sample(p.rng, board, round)
}

// Sample is the random policy: a random empty point while placing, a random
// slide afterwards, plus a random capture whenever the step closes a mill.
func (p *Player) Sample(r *rand.Rand, board *game.Board, round int) game.Step {
	var step game.Step
	if game.IsPlacement(round) {
		empty := board.PointsWithTag(game.Empty)
		step = game.PlaceStep(p.tag, empty.Nth(r.Intn(empty.Len())))
	} else {
		moves := board.LegalMoves(p.tag)
		step = moves[r.Intn(len(moves))]
	}

	if !p.closesMill(board, step) {
		return step
	}
	targets := board.CapturablePieces(p.opponent)
	if targets.Empty() {
		return step
	}
	return step.Capturing(targets.Nth(r.Intn(targets.Len())))
}

func (p *Player) closesMill(board *game.Board, step game.Step) bool {
	if step.Kind() == game.MoveKind {
		return board.CompletesMill(p.tag, step.To(), step.From())
	}
	return board.CompletesMill(p.tag, step.At(), game.NoPoint)
}
