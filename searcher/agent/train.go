package agent

import (
	"context"
	"math"

	"ego/experiments/metrics"
	"ego/game"
	"ego/searcher"
)

type sampler interface {
	Float64() float64
}

type samplingAgent struct {
	trainer     *searcher.Trainer
	kind        searcher.PolicyKind
	temperature float64
	random      sampler
}

// NewSamplingAgent returns an agent that samples its move from a softmax over
// the AAF values. Lower temperatures play closer to NewAafAgent.
func NewSamplingAgent(trainer *searcher.Trainer, kind searcher.PolicyKind, temperature float64, seed uint64) Agent {
	if seed == 0 {
		seed = searcher.RandomSeed()
	}
	return &samplingAgent{
		trainer:     trainer,
		kind:        kind,
		temperature: temperature,
		random:      searcher.NewSource(seed),
	}
}

func (a *samplingAgent) FindMove(ctx context.Context, b *game.Board) (game.Vertex, metrics.TrainMetric, error) {
	if passWins(b) {
		return game.Pass, metrics.TrainMetric{}, nil
	}
	stats, metric, err := a.trainer.Train(ctx, b, a.kind)
	if err != nil {
		return game.Pass, metric, err
	}
	moves := candidates(b, stats)
	if len(moves) == 0 || a.temperature <= 0 {
		return findMax(moves), metric, nil
	}
	return sample(adjustTemperature(moves, a.temperature), a.random), metric, nil
}

// adjustTemperature turns values into probabilities proportional to
// exp(value / temperature).
func adjustTemperature(moves []candidate, temperature float64) []candidate {
	maxValue := math.Inf(-1)
	for _, move := range moves {
		maxValue = max(maxValue, move.value)
	}

	sum := 0.0
	adjusted := make([]candidate, len(moves))
	for i, move := range moves {
		prob := math.Exp((move.value - maxValue) / temperature)
		sum += prob
		adjusted[i] = candidate{vertex: move.vertex, value: prob}
	}
	// Normalize
	for i := range adjusted {
		adjusted[i].value /= sum
	}
	return adjusted
}

func sample(policy []candidate, random sampler) game.Vertex {
	sampled := random.Float64()
	cumulative := 0.0
	for _, move := range policy {
		cumulative += move.value
		if sampled < cumulative {
			return move.vertex
		}
	}
	return policy[len(policy)-1].vertex // Fallback in case of rounding errors
}
