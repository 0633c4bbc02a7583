package agent

import (
	"context"
	"testing"

	"ego/game"
	"ego/searcher"

	"github.com/stretchr/testify/require"
)

type fixedSampler float64

func (f fixedSampler) Float64() float64 { return float64(f) }

func vertex(t *testing.T, s string) game.Vertex {
	t.Helper()
	v, err := game.ParseVertex(s, 5)
	require.NoError(t, err)
	return v
}

func TestFindMax(t *testing.T) {
	t.Run("picks the highest value", func(t *testing.T) {
		moves := []candidate{{vertex: 1, value: -3}, {vertex: 2, value: -1}, {vertex: 3, value: -2}}
		require.Equal(t, game.Vertex(2), findMax(moves))
	})

	t.Run("passes without candidates", func(t *testing.T) {
		require.Equal(t, game.Pass, findMax(nil))
	})
}

func TestAdjustTemperature(t *testing.T) {
	moves := []candidate{{vertex: 1, value: 0}, {vertex: 2, value: 1}}

	adjusted := adjustTemperature(moves, 1)

	require.InDelta(t, 1.0, adjusted[0].value+adjusted[1].value, 1e-12)
	require.Greater(t, adjusted[1].value, adjusted[0].value)

	cold := adjustTemperature(moves, 0.01)
	require.InDelta(t, 1.0, cold[1].value, 1e-9)

	require.Equal(t, game.Vertex(1), sample(adjusted, fixedSampler(0)))
	require.Equal(t, game.Vertex(2), sample(adjusted, fixedSampler(0.999)))
}

func TestCandidates(t *testing.T) {
	t.Run("values are seen from the player to act", func(t *testing.T) {
		b := game.NewBoard(5, 0.5)
		b.PlayLegal(game.Black, vertex(t, "C3"))
		stats := searcher.NewAafStats(0)
		stats.Update([]game.Move{game.NewMove(game.White, vertex(t, "B2"))}, 1, -6)
		stats.Update([]game.Move{game.NewMove(game.White, vertex(t, "D4"))}, 1, 6)

		moves := candidates(b, stats)

		require.Len(t, moves, 2, "Points never played are skipped without a prior")
		require.Equal(t, vertex(t, "B2"), findMax(moves), "White prefers low scores")
	})

	t.Run("eyes and occupied points are excluded", func(t *testing.T) {
		b := game.NewBoard(5, 0.5)
		for _, s := range []string{"A2", "B1", "C3"} {
			b.PlayLegal(game.Black, vertex(t, s))
		}
		b.PlayLegal(game.White, game.Pass)

		moves := candidates(b, searcher.NewAafStats(1))

		for _, move := range moves {
			require.NotEqual(t, vertex(t, "A1"), move.vertex)
			require.NotEqual(t, vertex(t, "C3"), move.vertex)
		}
		require.Len(t, moves, 25-3-1)
	})
}

func TestAgents(t *testing.T) {
	trainer := searcher.NewTrainer(searcher.WithPlayouts(200), searcher.WithGoroutines(2), searcher.WithSeed(5), searcher.WithMetrics())
	agents := map[string]Agent{
		"aaf":      NewAafAgent(trainer, searcher.AtariKind),
		"sampling": NewSamplingAgent(trainer, searcher.SimpleKind, 0.5, 9),
	}

	for name, agent := range agents {
		t.Run(name+" agent plays a legal point", func(t *testing.T) {
			b := game.NewBoard(5, game.DefaultKomi)
			b.PlayLegal(game.Black, vertex(t, "C3"))

			move, metric, err := agent.FindMove(context.Background(), b)

			require.NoError(t, err)
			require.NotEqual(t, game.Pass, move)
			require.True(t, b.IsPseudoLegal(game.White, move))
			require.False(t, b.IsEyelike(game.White, move))
			require.Equal(t, 1, b.MoveNo(), "Agents must not change the board")
			require.Equal(t, 200, metric.Playouts)
		})
	}

	t.Run("passes after an opponent pass when already winning", func(t *testing.T) {
		b := game.NewBoard(5, 0.5)
		b.PlayLegal(game.Black, vertex(t, "C3"))
		b.PlayLegal(game.White, game.Pass)
		require.Equal(t, 4.5, b.Score())

		move, _, err := NewAafAgent(trainer, searcher.SimpleKind).FindMove(context.Background(), b)

		require.NoError(t, err)
		require.Equal(t, game.Pass, move)
	})

	t.Run("keeps playing after an opponent pass when behind", func(t *testing.T) {
		b := game.NewBoard(5, 0.5)
		b.PlayLegal(game.Black, vertex(t, "C3"))
		b.PlayLegal(game.White, vertex(t, "A1"))
		b.PlayLegal(game.Black, game.Pass)

		move, _, err := NewAafAgent(trainer, searcher.SimpleKind).FindMove(context.Background(), b)

		require.NoError(t, err)
		require.NotEqual(t, game.Pass, move)
	})

	t.Run("cancelled training returns the error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := NewAafAgent(trainer, searcher.SimpleKind).FindMove(ctx, game.NewBoard(5, 0))

		require.ErrorIs(t, err, context.Canceled)
	})
}
