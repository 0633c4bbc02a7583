package agent

import (
	"context"
	"math"

	"ego/experiments/metrics"
	"ego/game"
	"ego/searcher"
)

type Agent interface {
	// FindMove trains from b and returns the vertex to play for the player to act, with the training metrics
	FindMove(ctx context.Context, b *game.Board) (game.Vertex, metrics.TrainMetric, error)
}

type candidate struct {
	vertex game.Vertex
	value  float64
}

// candidates lists the legal non-eye points for the player to act, valued by
// the normalized AAF mean from that player's point of view.
func candidates(b *game.Board, stats *searcher.AafStats) []candidate {
	act := b.ActPlayer()
	sign := 1.0
	if act == game.White {
		sign = -1.0
	}

	out := make([]candidate, 0, b.EmptyCount())
	for i := 0; i < b.EmptyCount(); i++ {
		v := b.EmptyAt(i)
		if b.IsEyelike(act, v) || !b.IsPseudoLegal(act, v) {
			continue
		}
		value := stats.NormMeanGivenMove(game.NewMove(act, v))
		if math.IsNaN(value) { // Never played in the AAF window
			continue
		}
		out = append(out, candidate{vertex: v, value: sign * value})
	}
	return out
}

// passWins reports whether the opponent just passed and the board already
// scores as a win for the player to act, so passing ends the game.
func passWins(b *game.Board) bool {
	if b.LastVertex() != game.Pass {
		return false
	}
	score := b.Score()
	if b.ActPlayer() == game.Black {
		return score > 0
	}
	return score <= 0 // Ties go to white
}
