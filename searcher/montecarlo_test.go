package searcher

import (
	"chengsan/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestCandidates(t *testing.T) {
	t.Run("placement expands every capture", func(t *testing.T) {
		board := mustParse(t, "xx.......oo.............")
		p := NewPlayer(game.First)

		steps := p.Candidates(board, 4)

		// 20 empty points, point 2 appears once per capturable piece
		require.Len(t, steps, 21)
		require.Contains(t, steps, game.PlaceStep(game.First, 2).Capturing(9))
		require.Contains(t, steps, game.PlaceStep(game.First, 2).Capturing(10))
		require.NotContains(t, steps, game.PlaceStep(game.First, 2))
	})

	t.Run("closing a mill without capturable pieces", func(t *testing.T) {
		board := mustParse(t, "xx......................")
		p := NewPlayer(game.First)

		steps := p.Candidates(board, 1)

		require.Len(t, steps, 22)
		require.Contains(t, steps, game.PlaceStep(game.First, 2))
	})

	t.Run("movement uses legal slides", func(t *testing.T) {
		board := mustParse(t, "xx.x........o.o.....o...")
		p := NewPlayer(game.First)

		steps := p.Candidates(board, 12)

		require.Equal(t, []game.Step{
			game.MoveStep(game.First, 0, 7),
			game.MoveStep(game.First, 1, 2),
			game.MoveStep(game.First, 1, 9),
			game.MoveStep(game.First, 3, 2).Capturing(12),
			game.MoveStep(game.First, 3, 2).Capturing(14),
			game.MoveStep(game.First, 3, 2).Capturing(20),
			game.MoveStep(game.First, 3, 4),
			game.MoveStep(game.First, 3, 11),
		}, steps)
	})
}

func TestBestMove(t *testing.T) {
	t.Run("takes an immediate win", func(t *testing.T) {
		// Sliding 3-2 closes {0,1,2}; any capture leaves second with two pieces
		board := mustParse(t, "xx.x........o.o.....o...")
		p := NewPlayer(game.First, WithSeed(1), WithMetrics())
		opponent := NewPlayer(game.Second, WithSeed(2))

		step, metric := p.Search(board, 12, opponent)

		require.Equal(t, game.MoveStep(game.First, 3, 2).Capturing(12), step)
		require.True(t, metric.ShortCircuit)
		require.Zero(t, metric.Rollouts, "no rollouts should be needed")
	})

	t.Run("leaves the board untouched", func(t *testing.T) {
		board := mustParse(t, "x.x.x.......o.o.o.......")
		before := board.String()
		p := NewPlayer(game.First, WithSeed(1), WithRollouts(5), WithCutoff(10))

		p.BestMove(board, 12, NewPlayer(game.Second))

		require.Equal(t, before, board.String())
	})

	t.Run("returns one of the candidates", func(t *testing.T) {
		board := mustParse(t, "x.o.....x..o....x.o.....")
		p := NewPlayer(game.Second, WithSeed(4), WithRollouts(10), WithCutoff(20), WithMetrics())

		step, metric := p.Search(board, 3, NewPlayer(game.First))

		require.Contains(t, p.Candidates(board, 3), step)
		require.Equal(t, len(p.Candidates(board, 3)), metric.Candidates)
		require.Equal(t, 10*metric.Candidates, metric.Rollouts)
		require.False(t, metric.ShortCircuit)
	})

	t.Run("deterministic for a seed regardless of goroutines", func(t *testing.T) {
		board := mustParse(t, "xo.x..o...x.o....ox.....")
		search := func(goroutines int) game.Step {
			p := NewPlayer(game.First, WithSeed(11), WithRollouts(10), WithCutoff(30), WithGoroutines(goroutines))
			return p.BestMove(board, 5, NewPlayer(game.Second))
		}

		require.Equal(t, search(1), search(4))
	})

	t.Run("deadline keeps the completed rollouts", func(t *testing.T) {
		board := game.NewBoard()
		board.Apply(game.PlaceStep(game.First, 0), 0)
		board.Apply(game.PlaceStep(game.Second, 9), 0)
		for _, goroutines := range []int{1, 4} {
			p := NewPlayer(game.First, WithSeed(3), WithRollouts(100000), WithDuration(100*time.Millisecond),
				WithGoroutines(goroutines), WithMetrics())

			step, metric := p.Search(board, 1, NewPlayer(game.Second))

			require.Equal(t, 22, metric.Candidates)
			require.Less(t, metric.Rollouts, 100000*metric.Candidates, "deadline should cut the search")
			require.GreaterOrEqual(t, metric.Rollouts, metric.Candidates, "every candidate should finish a rollout")
			require.Positive(t, metric.BestScore, "completed rollouts should be scored")
			require.True(t, board.IsEmpty(step.At()))
		}
	})

	t.Run("opponent must play the other side", func(t *testing.T) {
		board := game.NewBoard()
		p := NewPlayer(game.First, WithSeed(1))

		require.Panics(t, func() { p.Search(board, 0, NewPlayer(game.First)) })
	})
}

func TestEvaluate(t *testing.T) {
	t.Run("passes stop at the deadline", func(t *testing.T) {
		board := mustParse(t, "x.x.x.x.........o.o.o...")
		p := NewPlayer(game.First, WithRollouts(50), WithCutoff(5), WithGoroutines(3))
		candidates := make([]*candidate, 4)
		for i := range candidates {
			candidates[i] = &candidate{board: board, seed: uint64(i)}
		}
		candidates[2].lost = true

		p.evaluate(candidates, 14, NewPlayer(game.Second), time.Now().Add(-time.Second))

		for _, c := range candidates {
			require.Empty(t, c.wins)
		}
	})

	t.Run("every candidate gets the full budget without a deadline", func(t *testing.T) {
		board := mustParse(t, "x.x.x.x.........o.o.o...")
		p := NewPlayer(game.First, WithRollouts(7), WithCutoff(5), WithGoroutines(3))
		candidates := make([]*candidate, 5)
		for i := range candidates {
			candidates[i] = &candidate{board: board, seed: uint64(i)}
		}
		candidates[0].lost = true

		p.evaluate(candidates, 14, NewPlayer(game.Second), time.Time{})

		require.Nil(t, candidates[0].wins)
		for _, c := range candidates[1:] {
			require.Len(t, c.wins, 7)
		}
	})
}

func TestRollout(t *testing.T) {
	t.Run("scores material at the cutoff", func(t *testing.T) {
		// Neither side can close a mill in one exchange, first is a piece up
		board := mustParse(t, "x.x.x.x.........o.o.o...")
		p := NewPlayer(game.First, WithCutoff(1))
		opponent := NewPlayer(game.Second)

		for seed := uint64(0); seed < 20; seed++ {
			r := newRand(seed)
			require.Equal(t, WIN, p.rollout(r, board, 14, opponent))
		}
	})

	t.Run("rollout works on a copy", func(t *testing.T) {
		board := mustParse(t, "x.x.x.x.....o.o.o.......")
		before := board.String()
		p := NewPlayer(game.Second, WithCutoff(50))

		p.rollout(newRand(1), board, 12, NewPlayer(game.First))

		require.Equal(t, before, board.String())
	})
}

func TestScore(t *testing.T) {
	t.Run("sums wins and marks immediate losses", func(t *testing.T) {
		candidates := []*candidate{
			{wins: []bool{true, false, true}},
			{lost: true},
			{wins: []bool{false, false, false}},
		}

		require.Equal(t, []int{2, IMMEDIATE_LOSS, 0}, score(candidates))
	})

	t.Run("truncates to the fewest completed rollouts", func(t *testing.T) {
		candidates := []*candidate{
			{wins: []bool{false, false, true, true, true}},
			{wins: []bool{true, true}},
		}

		require.Equal(t, []int{0, 2}, score(candidates))
	})
}

func TestPickBest(t *testing.T) {
	t.Run("first candidate with the highest score", func(t *testing.T) {
		candidates := make([]*candidate, 4)
		for i := range candidates {
			candidates[i] = &candidate{}
		}

		require.Equal(t, 1, pickBest(candidates, []int{3, 7, 7, 1}))
	})

	t.Run("all immediate losses pick the first", func(t *testing.T) {
		candidates := []*candidate{{lost: true}, {lost: true}}

		require.Equal(t, 0, pickBest(candidates, []int{IMMEDIATE_LOSS, IMMEDIATE_LOSS}))
	})

	t.Run("a losing candidate is never preferred to a scoreless one", func(t *testing.T) {
		candidates := []*candidate{{lost: true}, {margin: -2}}

		require.Equal(t, 1, pickBest(candidates, []int{IMMEDIATE_LOSS, 0}))
	})

	// No rollout won: fall back to the best material margin
	t.Run("scoreless search uses material margin", func(t *testing.T) {
		candidates := []*candidate{
			{margin: -1},
			{lost: true},
			{margin: 1},
			{margin: 1},
		}

		require.Equal(t, 2, pickBest(candidates, []int{0, IMMEDIATE_LOSS, 0, 0}))
	})
}
