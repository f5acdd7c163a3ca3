package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent rollouts", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 100, 12)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for k := 0; k < 250; k++ {
					c.AddRollout()
					if k%5 == 0 {
						c.AddFullPlayout()
					}
				}
			}()
		}
		wg.Wait()

		m := c.Complete(7)
		require.Equal(t, 4, m.Goroutines)
		require.Equal(t, 100, m.Cutoff)
		require.Equal(t, 12, m.Candidates)
		require.Equal(t, 1000, m.Rollouts)
		require.Equal(t, 200, m.FullPlayouts)
		require.Equal(t, 7, m.BestScore)
		require.False(t, m.ShortCircuit)
	})

	t.Run("start resets the counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 10, 3)
		c.AddRollout()
		c.SetShortCircuit()
		require.True(t, c.Complete(1).ShortCircuit)

		c.Start(1, 10, 3)
		m := c.Complete(0)
		require.Zero(t, m.Rollouts)
		require.False(t, m.ShortCircuit)
	})

	t.Run("dummy collects nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(4, 100, 12)
		c.AddRollout()
		c.SetShortCircuit()

		require.Equal(t, SearchMetric{}, c.Complete(3))
	})
}
