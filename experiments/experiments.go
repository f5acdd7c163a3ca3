package experiments

import (
	"chengsan/engine"
	"chengsan/experiments/metrics"
	"chengsan/game"
	"chengsan/searcher"
	"chengsan/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 100 * time.Millisecond
)

var baseline = metrics.AgentConfig{ID: 0, Random: true}

var rolloutConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 4, Rollouts: 10, Cutoff: 100},
	{ID: 2, Goroutines: 4, Rollouts: 50, Cutoff: 100},
	{ID: 3, Goroutines: 4, Rollouts: 100, Cutoff: 100},
	{ID: 4, Goroutines: 4, Rollouts: 1, Cutoff: 100000}, // a single long rollout
}

// Options shared by every game of an experiment
type Options struct {
	Dir       string // root directory for results
	NumGames  int
	Seed      uint64
	MaxRounds int
}

// RunBaseline pairs every rollout configuration against the random player.
func RunBaseline(opts Options) error {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range rolloutConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}
	return Run("baseline", append(rolloutConfigs, baseline), matchUps, opts)
}

// RunRollouts pairs the smallest rollout budget against each larger one,
// alternating seats between games.
func RunRollouts(opts Options) error {
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range rolloutConfigs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{rolloutConfigs[0], config})
	}
	return Run("rollouts", rolloutConfigs, matchUps, opts)
}

// RunDeadline pairs a time-bounded searcher against a rollout-bounded one.
func RunDeadline(opts Options) error {
	timed := metrics.AgentConfig{ID: 5, Goroutines: 4, Rollouts: 1000, Cutoff: 100, Duration: TimeBudget}
	configs := []metrics.AgentConfig{rolloutConfigs[2], timed}
	return Run("deadline", configs, [][]metrics.AgentConfig{configs}, opts)
}

func Run(name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, opts Options) error {
	if opts.NumGames <= 0 {
		opts.NumGames = NumGames
	}

	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	start := time.Now()

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		for i := 0; i < opts.NumGames; i++ {
			// Alternate seats so neither agent always moves first
			config1, config2 := matchup[0], matchup[1]
			if i%2 == 1 {
				config1, config2 = config2, config1
			}
			log.Info().Msgf("starting matchup %d of %d game %d of %d between agent%d and agent%d...",
				mi+1, len(matchUps), i+1, opts.NumGames, config1.ID, config2.ID)

			seed := opts.Seed + uint64(count)*2
			winner, gameMetric, moveMetrics := runGame(config1, config2, seed, opts.MaxRounds)
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %s", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(opts.Dir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:      name,
		Matchups:  matchUps,
		NumGames:  opts.NumGames,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	})
	if err != nil {
		return fmt.Errorf("failed to store setup: %w", err)
	}

	if err = writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(config1, config2 metrics.AgentConfig, seed uint64, maxRounds int) (game.Tag, metrics.GameMetric, []metrics.MoveMetric) {
	agents := [2]agent.Agent{
		CreateAgent(config1, game.First, seed),
		CreateAgent(config2, game.Second, seed+1),
	}
	e := engine.LocalEngine(agents, engine.WithMaxRounds(maxRounds))

	return e.Run()
}

// CreateAgent builds the agent described by config for the given seat.
func CreateAgent(config metrics.AgentConfig, tag game.Tag, seed uint64) agent.Agent {
	options := []searcher.Option{searcher.WithSeed(seed)}
	if config.Random {
		return agent.NewRandomAgent(searcher.NewPlayer(tag, options...))
	}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Rollouts > 0 {
		options = append(options, searcher.WithRollouts(config.Rollouts))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	options = append(options, searcher.WithMetrics(), searcher.WithLogger(log.Logger))

	// The opponent is modelled by a random player with its own source
	opponent := searcher.NewPlayer(tag.Opponent(), searcher.WithSeed(seed^0x9e3779b97f4a7c15))
	return agent.NewEvaluationAgent(searcher.NewPlayer(tag, options...), opponent)
}
