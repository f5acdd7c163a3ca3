package searcher

import (
	"chengsan/experiments/metrics"
	"chengsan/game"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type candidate struct {
	step   game.Step
	board  *game.Board // state right after step
	lost   bool
	margin int // own pieces minus opponent pieces after step
	seed   uint64
	rng    *rand.Rand
	wins   []bool // outcome of each completed rollout
}

// BestMove returns the candidate step with the most rollout wins.
func (p *Player) BestMove(board *game.Board, round int, opponent Policy) game.Step {
	step, _ := p.Search(board, round, opponent)
	return step
}

// Search scores every candidate step with random rollouts and returns the best
// one with the search metrics. The board is not modified. The caller must make
// sure the game is not over and that opponent plays the other side.
func (p *Player) Search(board *game.Board, round int, opponent Policy) (game.Step, metrics.SearchMetric) {
	if opponent.Tag() != p.opponent {
		panic(fmt.Sprintf("opponent model plays %s, want %s", opponent.Tag(), p.opponent))
	}
	steps := p.Candidates(board, round)
	if len(steps) == 0 {
		panic("no candidate steps: game is over")
	}
	p.metrics.Start(p.goroutines, p.cutoff, len(steps))
	start := time.Now()

	// One-ply check: take a winning step right away, mark losing ones
	candidates := make([]*candidate, len(steps))
	for i, step := range steps {
		after := board.Copy()
		after.Apply(step, round)
		if over, winner := after.IsTerminal(round); over {
			if winner == p.tag {
				p.metrics.SetShortCircuit()
				p.logger.Debug().Stringer("step", step).Int("round", round).Msg("immediate win")
				return step, p.metrics.Complete(WIN)
			}
			candidates[i] = &candidate{step: step, lost: true}
			continue
		}
		candidates[i] = &candidate{
			step:   step,
			board:  after,
			margin: after.Count(p.tag) - after.Count(p.opponent),
		}
	}
	// Seeds are drawn in enumeration order so results do not depend on scheduling
	for _, c := range candidates {
		c.seed = p.rng.Uint64()
	}

	var deadline time.Time
	if p.duration > 0 {
		deadline = start.Add(p.duration)
	}
	p.evaluate(candidates, round, opponent, deadline)

	scores := score(candidates)
	best := pickBest(candidates, scores)
	metric := p.metrics.Complete(scores[best])

	p.logger.Debug().
		Int("round", round).
		Int("candidates", len(candidates)).
		Stringer("step", candidates[best].step).
		Int("score", scores[best]).
		Dur("duration", time.Since(start)).
		Msg("search complete")

	return candidates[best].step, metric
}

// Candidates lists every step the player can take at round. A step that
// closes a mill appears once per capturable opponent piece.
func (p *Player) Candidates(board *game.Board, round int) []game.Step {
	var base []game.Step
	if game.IsPlacement(round) {
		for _, at := range board.PointsWithTag(game.Empty).Points() {
			base = append(base, game.PlaceStep(p.tag, at))
		}
	} else {
		base = board.LegalMoves(p.tag)
	}

	steps := make([]game.Step, 0, len(base))
	for _, step := range base {
		if !p.closesMill(board, step) {
			steps = append(steps, step)
			continue
		}
		targets := board.CapturablePieces(p.opponent)
		if targets.Empty() {
			steps = append(steps, step)
			continue
		}
		for _, target := range targets.Points() {
			steps = append(steps, step.Capturing(target))
		}
	}
	return steps
}

// evaluate runs the rollouts of all candidates on a pool of goroutines, one
// rollout per candidate per pass, so a deadline cuts off at most one pass.
// Every candidate owns its board copy and random source; passes are
// sequential, so each source is used in the same order at any goroutine count.
func (p *Player) evaluate(candidates []*candidate, round int, opponent Policy, deadline time.Time) {
	live := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.lost {
			continue
		}
		c.rng = rand.New(rand.NewSource(c.seed))
		c.wins = make([]bool, 0, p.rollouts)
		live = append(live, c)
	}
	if len(live) == 0 {
		return
	}
	expired := func() bool {
		return !deadline.IsZero() && time.Now().After(deadline)
	}

	task := make(chan *candidate, len(live))
	var pass, workers sync.WaitGroup
	for i := 0; i < p.goroutines; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()

			for c := range task {
				if !expired() {
					c.wins = append(c.wins, p.rollout(c.rng, c.board, round, opponent) == WIN)
					p.metrics.AddRollout()
				}
				pass.Done()
			}
		}()
	}

	for k := 0; k < p.rollouts && !expired(); k++ {
		pass.Add(len(live))
		for _, c := range live {
			task <- c
		}
		pass.Wait()
	}
	close(task)
	workers.Wait()
}

// rollout plays random steps from start, opponent first, until the game ends
// or the cutoff is reached.
func (p *Player) rollout(r *rand.Rand, start *game.Board, round int, opponent Policy) int {
	reward := rewarder(p.tag)
	board := start.Copy()
	isFirst := p.tag == game.First

	// The second player's step closes the round
	if !isFirst {
		round++
	}
	for depth := 0; depth < p.cutoff; depth++ {
		board.Apply(opponent.Sample(r, board, round), round)
		if over, winner := board.IsTerminal(round); over {
			p.metrics.AddFullPlayout()
			return reward(winner)
		}

		if isFirst {
			round++
		}
		board.Apply(p.Sample(r, board, round), round)
		if over, winner := board.IsTerminal(round); over {
			p.metrics.AddFullPlayout()
			return reward(winner)
		}
		if !isFirst {
			round++
		}
	}

	// At cutoff, the side with more pieces on the board wins
	if game.EvaluateMaterial(board, p.tag) > 0 {
		return WIN
	}
	return LOSS
}

// score sums the rollout wins of each candidate. When rollouts were cut short
// by the deadline, every candidate is scored on the same number of rollouts.
func score(candidates []*candidate) []int {
	completed := math.MaxInt
	for _, c := range candidates {
		if !c.lost {
			completed = min(completed, len(c.wins))
		}
	}

	scores := make([]int, len(candidates))
	for i, c := range candidates {
		if c.lost {
			scores[i] = IMMEDIATE_LOSS
			continue
		}
		for _, won := range c.wins[:completed] {
			if won {
				scores[i]++
			}
		}
	}
	return scores
}

// pickBest returns the index of the first candidate with the highest score.
// If no rollout was won anywhere, the candidate with the best material
// margin is taken instead.
func pickBest(candidates []*candidate, scores []int) int {
	best := slices.Index(scores, slices.Max(scores))
	if scores[best] != 0 {
		return best
	}

	bestMargin := math.MinInt
	for i, c := range candidates {
		if !c.lost && c.margin > bestMargin {
			bestMargin = c.margin
			best = i
		}
	}
	return best
}
