package engine

import (
	"context"

	"ego/experiments/metrics"
)

type Engine interface {
	// Run plays a game till both players pass or the max number of moves is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
