package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Candidates   int
	Rollouts     int
	Cutoff       int
	FullPlayouts int
	ShortCircuit bool // a candidate won immediately, no rollouts were needed
	BestScore    int
}

type MoveMetric struct {
	Step   int // Half-turn number, 1-based
	Round  int
	Player int // 1 or 2
	Move   string
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int
	Winner         string
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Rounds         int
	TotalMoves     int
}

type Collector interface {
	Start(goroutines, cutoff, candidates int)
	AddRollout()
	AddFullPlayout()
	SetShortCircuit()
	Complete(bestScore int) SearchMetric
}

type collector struct {
	goroutines   int
	cutoff       int
	candidates   int
	startTime    time.Time
	rollouts     atomic.Int32
	fullPlayouts atomic.Int32
	shortCircuit atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, cutoff, candidates int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
	m.candidates = candidates
	m.rollouts.Store(0)
	m.fullPlayouts.Store(0)
	m.shortCircuit.Store(false)
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) SetShortCircuit() {
	m.shortCircuit.Store(true)
}

func (m *collector) Complete(bestScore int) SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Candidates:   m.candidates,
		Rollouts:     int(m.rollouts.Load()),
		Cutoff:       m.cutoff,
		FullPlayouts: int(m.fullPlayouts.Load()),
		ShortCircuit: m.shortCircuit.Load(),
		BestScore:    bestScore,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, cutoff, candidates int) {}
func (m *dummyCollector) AddRollout()                              {}
func (m *dummyCollector) AddFullPlayout()                          {}
func (m *dummyCollector) SetShortCircuit()                         {}
func (m *dummyCollector) Complete(bestScore int) SearchMetric      { return SearchMetric{} }
