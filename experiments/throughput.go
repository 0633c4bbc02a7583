package experiments

import (
	"context"
	"fmt"

	"ego/experiments/metrics"
	"ego/game"
	"ego/meta"
	"ego/searcher"

	"github.com/rs/zerolog/log"
)

var throughputGoroutines = []int{1, 2, 4, 8, 16}

// RunThroughput measures playouts per second of the configured policy for a
// growing number of goroutines.
func RunThroughput(ctx context.Context, cfg meta.Config) (string, error) {
	const name = "throughput"
	kind, err := searcher.ParsePolicyKind(cfg.Policy)
	if err != nil {
		return "", err
	}

	log.Info().Msgf("starting %s experiment...", name)

	records := make([]metrics.PolicyRecord, 0, len(throughputGoroutines))
	for _, goroutines := range throughputGoroutines {
		cfg.Goroutines = goroutines
		trainer := searcher.NewTrainer(TrainerOptions(cfg)...)
		stats, metric, err := trainer.Train(ctx, game.NewBoard(cfg.BoardSize, cfg.Komi), kind)
		if err != nil {
			return "", fmt.Errorf("%d goroutines: %w", goroutines, err)
		}
		records = append(records, metrics.PolicyRecord{
			BoardSize:   cfg.BoardSize,
			MeanScore:   stats.Unconditional().Mean(),
			TrainMetric: metric,
		})
		log.Info().Msgf("%d goroutines: %.0f playouts/s", goroutines, metric.PlayoutsPerSecond())
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(cfg.OutputDir, name)
	if err != nil {
		return "", err
	}
	err = writer.WritePolicyRecords(records)
	if err != nil {
		return "", fmt.Errorf("failed to store throughput records: %w", err)
	}
	log.Info().Msg("stored throughput records")
	return writer.Dir(), nil
}
