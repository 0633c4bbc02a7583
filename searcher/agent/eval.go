package agent

import (
	"context"

	"ego/experiments/metrics"
	"ego/game"
	"ego/searcher"
)

type aafAgent struct {
	trainer *searcher.Trainer
	kind    searcher.PolicyKind
}

// NewAafAgent returns an agent that plays the point with the best AAF value.
func NewAafAgent(trainer *searcher.Trainer, kind searcher.PolicyKind) Agent {
	return aafAgent{trainer: trainer, kind: kind}
}

func (a aafAgent) FindMove(ctx context.Context, b *game.Board) (game.Vertex, metrics.TrainMetric, error) {
	if passWins(b) {
		return game.Pass, metrics.TrainMetric{}, nil
	}
	stats, metric, err := a.trainer.Train(ctx, b, a.kind)
	if err != nil {
		return game.Pass, metric, err
	}
	return findMax(candidates(b, stats)), metric, nil
}

func findMax(moves []candidate) game.Vertex {
	best := game.Pass
	maxValue := 0.0
	for i, move := range moves {
		if i == 0 || move.value > maxValue {
			maxValue = move.value
			best = move.vertex
		}
	}
	return best
}
