package experiments

import (
	"context"
	"fmt"

	"ego/engine"
	"ego/experiments/metrics"
	"ego/game"
	"ego/meta"
	"ego/searcher"
	"ego/searcher/agent"

	"github.com/rs/zerolog/log"
)

var policyKinds = []searcher.PolicyKind{searcher.SimpleKind, searcher.AtariKind, searcher.LocalKind}

// TrainerOptions maps a run configuration to trainer options.
func TrainerOptions(cfg meta.Config) []searcher.Option {
	options := []searcher.Option{
		searcher.WithPlayouts(cfg.Playouts),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithPrior(cfg.Prior),
		searcher.WithAafFraction(cfg.AafFraction),
		searcher.WithLocalProbability(cfg.LocalProbability),
		searcher.WithSeed(cfg.Seed),
		searcher.WithMetrics(),
	}
	if cfg.Mercy {
		options = append(options, searcher.WithMercy(cfg.MercyThreshold))
	}
	if cfg.Progress {
		options = append(options, searcher.WithProgress())
	}
	return options
}

// RunPolicyComparison trains every playout policy from an empty board and
// records how its playouts end.
func RunPolicyComparison(ctx context.Context, cfg meta.Config) (string, error) {
	const name = "policy_comparison"
	log.Info().Msgf("starting %s experiment...", name)

	records := make([]metrics.PolicyRecord, 0, len(policyKinds))
	for i, kind := range policyKinds {
		log.Info().Msgf("training policy %d of %d: %s", i+1, len(policyKinds), kind)

		trainer := searcher.NewTrainer(TrainerOptions(cfg)...)
		b := game.NewBoard(cfg.BoardSize, cfg.Komi)
		stats, metric, err := trainer.Train(ctx, b, kind)
		if err != nil {
			return "", fmt.Errorf("policy %s: %w", kind, err)
		}
		records = append(records, metrics.PolicyRecord{
			BoardSize:   cfg.BoardSize,
			MeanScore:   stats.Unconditional().Mean(),
			TrainMetric: metric,
		})

		log.Info().Msgf("completed policy %s: %.0f playouts/s, mean length %.1f", kind, metric.PlayoutsPerSecond(), metric.MeanLength())
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return "", err
	}
	err = writer.WritePolicyRecords(records)
	if err != nil {
		return "", fmt.Errorf("failed to store policy records: %w", err)
	}
	log.Info().Msg("stored policy records")
	return writer.Dir(), nil
}

// RunSelfPlay plays games between an agent using the configured policy and a
// baseline agent using SimplePolicy, alternating colors.
func RunSelfPlay(ctx context.Context, cfg meta.Config, games int) (string, error) {
	const name = "self_play"
	kind, err := searcher.ParsePolicyKind(cfg.Policy)
	if err != nil {
		return "", err
	}
	configs := []metrics.AgentConfig{
		{ID: 0, Policy: searcher.SimpleKind.String(), Playouts: cfg.Playouts, Goroutines: cfg.Goroutines, Temperature: cfg.Temperature}, // Baseline
		{ID: 1, Policy: kind.String(), Playouts: cfg.Playouts, Goroutines: cfg.Goroutines, Temperature: cfg.Temperature},
	}

	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment between %+v and %+v...", name, configs[0], configs[1])

	for i := 0; i < games; i++ {
		black, white := configs[i%2], configs[(i+1)%2]
		log.Info().Msgf("starting game %d of %d...", i+1, games)

		gameMetric, moveMetrics, err := runGame(ctx, cfg, black, white)
		if err != nil {
			return "", fmt.Errorf("game %d: %w", i+1, err)
		}
		gameRecords = append(gameRecords, metrics.GameRecord{
			ID:         i + 1,
			Black:      black.ID,
			White:      white.ID,
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			moveRecords = append(moveRecords, metrics.MoveRecord{
				Game:       i + 1,
				MoveMetric: mm,
			})
		}

		log.Info().Msgf("completed game %d with winner: %s", i+1, gameMetric.Winner)
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return "", err
	}
	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(gameRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moveRecords)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}

// runGame executes a single game between two agents.
func runGame(ctx context.Context, cfg meta.Config, black, white metrics.AgentConfig) (metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]agent.Agent{
		game.Black: createAgent(cfg, black),
		game.White: createAgent(cfg, white),
	}
	e := engine.LocalEngine(game.NewBoard(cfg.BoardSize, cfg.Komi), agents)
	return e.Run(ctx)
}

func createAgent(cfg meta.Config, config metrics.AgentConfig) agent.Agent {
	cfg.Playouts = config.Playouts
	cfg.Goroutines = config.Goroutines
	if cfg.Seed != 0 {
		cfg.Seed += uint64(config.ID)
	}
	trainer := searcher.NewTrainer(TrainerOptions(cfg)...)

	kind, _ := searcher.ParsePolicyKind(config.Policy)
	if config.Temperature > 0 {
		return agent.NewSamplingAgent(trainer, kind, config.Temperature, cfg.Seed)
	}
	return agent.NewAafAgent(trainer, kind)
}
