package searcher

import (
	"math"

	"ego/experiments/metrics"
	"ego/game"
	"ego/meta"
)

type Status int

const (
	PassPass Status = metrics.StatusPassPass
	Mercy    Status = metrics.StatusMercy
	TooLong  Status = metrics.StatusTooLong
)

func (s Status) String() string {
	switch s {
	case PassPass:
		return "pass_pass"
	case Mercy:
		return "mercy"
	case TooLong:
		return "too_long"
	}
	return "unknown"
}

// Result of one playout. Moves aliases the board's history, so it is only
// valid until the board is reloaded.
type Result struct {
	Status Status
	Moves  []game.Move
	Length int
}

type PlayoutConfig struct {
	Mercy          bool
	MercyThreshold float64
}

func DefaultPlayoutConfig() PlayoutConfig {
	return PlayoutConfig{Mercy: meta.USE_MERCY_RULE, MercyThreshold: meta.MERCY_THRESHOLD}
}

// Policy makes exactly one move (possibly a pass) for the player to act.
type Policy interface {
	PlayMove(b *game.Board)
}

// Starter is implemented by policies that need to know where a playout begins.
type Starter interface {
	StartPlayout(b *game.Board)
}

// Run plays b to the end with policy. The board length limit counts moves
// from the start of the game, not of the playout.
func Run[P Policy](policy P, b *game.Board, cfg PlayoutConfig) Result {
	begin := b.MoveNo()
	if s, ok := any(policy).(Starter); ok {
		s.StartPlayout(b)
	}
	maxLength := b.MaxPlayoutLength()

	var status Status
	for {
		if b.BothPlayerPass() {
			status = PassPass
			break
		}
		if b.MoveNo() >= maxLength {
			status = TooLong
			break
		}
		if cfg.Mercy && math.Trunc(math.Abs(b.ApproxScore())) > cfg.MercyThreshold {
			status = Mercy
			break
		}
		policy.PlayMove(b)
	}

	return Result{
		Status: status,
		Moves:  b.History()[begin:],
		Length: b.MoveNo() - begin,
	}
}
