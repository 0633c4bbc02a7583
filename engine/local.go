package engine

import (
	"context"
	"fmt"
	"time"

	"ego/experiments/metrics"
	"ego/game"
	"ego/meta"
	"ego/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local plays a game on one board between two in-process agents.
type Local struct {
	Board    *game.Board
	Agents   [2]agent.Agent // Indexed by game.Player
	MaxMoves int
}

func LocalEngine(b *game.Board, agents [2]agent.Agent) *Local {
	if agents[game.Black] == nil || agents[game.White] == nil {
		panic("need an agent for each player")
	}
	area := len(b.Vertices())
	return &Local{
		Board:    b,
		Agents:   agents,
		MaxMoves: b.MaxPlayoutLength() - int(float64(area)*meta.GAME_LENGTH_RESERVE),
	}
}

// Run executes the game loop until both players pass or MaxMoves moves were
// played, and scores the final position.
func (e *Local) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.Board.ActPlayer().String(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %s is starting", gameMetric.StartingPlayer)

	var moveMetrics []metrics.MoveMetric
	for step := 1; !e.Board.BothPlayerPass() && e.Board.MoveNo() < e.MaxMoves; step++ {
		act := e.Board.ActPlayer()
		v, trainMetric, err := e.Agents[act].FindMove(ctx, e.Board)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("move %d: %w", step, err)
		}
		err = e.Board.Play(act, v)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("move %d by %s: %w", step, act, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:        step,
			Player:      act.String(),
			Vertex:      v.String(),
			TrainMetric: trainMetric,
		})
		log.Debug().Msgf("move %d: %s %s", step, act, v)
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	gameMetric.Score = e.Board.Score()
	gameMetric.Winner = game.White.String() // Ties go to white
	if gameMetric.Score > 0 {
		gameMetric.Winner = game.Black.String()
	}

	if e.Board.BothPlayerPass() {
		gameMetric.EndReason = metrics.EndPassPass
		log.Info().Msgf("game ended by two passes, winner %s by %.1f", gameMetric.Winner, gameMetric.Score)
	} else {
		gameMetric.EndReason = metrics.EndMoveCap
		log.Warn().Msgf("stopped after %d moves, winner %s by %.1f on an unfinished board", gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Score)
	}
	return gameMetric, moveMetrics, nil
}
