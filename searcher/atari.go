package searcher

import "ego/game"

type tier int

const (
	captureTier tier = iota
	saveTier
	simpleTier
)

// AtariPolicy captures a group the opponent left in atari, else saves one of
// its own, else plays like SimplePolicy.
type AtariPolicy struct {
	simple *SimplePolicy
	atari  [2]game.Vertex
}

func NewAtariPolicy(random Source) *AtariPolicy {
	return &AtariPolicy{simple: NewSimplePolicy(random)}
}

func (p *AtariPolicy) PlayMove(b *game.Board) {
	p.play(b)
}

func (p *AtariPolicy) play(b *game.Board) tier {
	act, last := b.ActPlayer(), b.LastPlayer()
	b.PseudoAtari(&p.atari)

	if tryPlay(b, act, p.atari[last]) {
		return captureTier
	}
	if tryPlay(b, act, p.atari[act]) {
		return saveTier
	}
	p.simple.PlayMove(b)
	return simpleTier
}

func tryPlay(b *game.Board, p game.Player, v game.Vertex) bool {
	if v == game.Unset || b.IsEyelike(p, v) || !b.IsPseudoLegal(p, v) {
		return false
	}
	b.PlayLegal(p, v)
	return true
}
