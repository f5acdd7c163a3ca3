package main

import (
	"chengsan/engine"
	"chengsan/experiments"
	"chengsan/experiments/metrics"
	"chengsan/game"
	"chengsan/meta"
	"chengsan/searcher/agent"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "game", "game, baseline, rollouts or deadline")
	rollouts := flag.Int("rollouts", meta.ROLLOUTS, "Number of rollouts per candidate move")
	cutoff := flag.Int("cutoff", meta.CUTOFF, "Exchanges per rollout before scoring by material")
	goroutines := flag.Int("goroutines", 4, "Number of goroutines scoring candidates")
	duration := flag.Duration("duration", 0, "Time budget per move, 0 for none")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	random := flag.Bool("random", false, "Let the second player move at random")
	games := flag.Int("games", experiments.NumGames, "Games per matchup in experiments")
	out := flag.String("out", "results", "Directory for experiment results")
	render := flag.Bool("render", true, "Draw the board after every step")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	opts := experiments.Options{Dir: *out, NumGames: *games, Seed: *seed, MaxRounds: meta.MAX_ROUNDS}
	var err error
	switch *mode {
	case "game":
		config := metrics.AgentConfig{
			ID:         1,
			Goroutines: *goroutines,
			Duration:   *duration,
			Rollouts:   *rollouts,
			Cutoff:     *cutoff,
		}
		opponent := config
		opponent.ID = 2
		opponent.Random = *random
		runGame(config, opponent, *seed, *render)
	case "baseline":
		err = experiments.RunBaseline(opts)
	case "rollouts":
		err = experiments.RunRollouts(opts)
	case "deadline":
		err = experiments.RunDeadline(opts)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func runGame(config1, config2 metrics.AgentConfig, seed uint64, render bool) {
	agents := [2]agent.Agent{
		experiments.CreateAgent(config1, game.First, seed),
		experiments.CreateAgent(config2, game.Second, seed+1),
	}
	options := []engine.Option{}
	if render {
		options = append(options, engine.WithRenderer(os.Stdout))
	}
	e := engine.LocalEngine(agents, options...)

	winner, gameMetric, _ := e.Run()
	log.Info().
		Stringer("winner", winner).
		Int("rounds", gameMetric.Rounds).
		Dur("duration", gameMetric.Duration).
		Msg("game over")
}
