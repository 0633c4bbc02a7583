package searcher

import "ego/game"

type offset struct{ row, col int }

var localGroups = [3][]offset{
	{{1, 0}, {0, 1}, {-1, 0}, {0, -1}},   // orthogonal
	{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}}, // diagonal
	ringOffsets(),                        // distance 2
}

// Group try orders; repeats weight them 4:2:1.
var groupOrders = [7][3]int{
	{0, 1, 2}, {0, 1, 2}, {0, 1, 2}, {0, 1, 2},
	{1, 0, 2}, {1, 0, 2},
	{2, 0, 1},
}

// ringOffsets walks the border of the 5x5 square around the center: two
// steps out to a corner, then four steps along each edge.
func ringOffsets() []offset {
	ring := make([]offset, 0, 16)
	pos := offset{-2, -2}
	for _, step := range []offset{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
		for i := 0; i < 4; i++ {
			ring = append(ring, pos)
			pos.row += step.row
			pos.col += step.col
		}
	}
	return ring
}

// LocalPolicy prefers moves near the previous move.
type LocalPolicy struct {
	simple      *SimplePolicy
	random      Source
	probability float64
	start       int
}

// NewLocalPolicy returns a policy that plays a plain random move with the given
// probability and otherwise looks near the last move first.
func NewLocalPolicy(random Source, probability float64) *LocalPolicy {
	return &LocalPolicy{
		simple:      NewSimplePolicy(random),
		random:      random,
		probability: probability,
	}
}

func (p *LocalPolicy) StartPlayout(b *game.Board) {
	p.start = b.MoveNo()
}

func (p *LocalPolicy) PlayMove(b *game.Board) {
	if !p.playLocal(b) {
		p.simple.PlayMove(b)
	}
}

func (p *LocalPolicy) playLocal(b *game.Board) bool {
	if b.MoveNo() <= p.start { // No previous move in this playout
		return false
	}
	if p.random.Float64() < p.probability {
		return false
	}
	center := b.LastVertex()
	if center == game.Pass {
		return false
	}

	act := b.ActPlayer()
	for _, g := range groupOrders[p.random.Intn(len(groupOrders))] {
		group := localGroups[g]
		first := p.random.Intn(len(group))
		for i := range group {
			o := group[(first+i)%len(group)]
			v := center.Offset(o.row, o.col)
			if b.ColorAt(v) == game.Empty && !b.IsEyelike(act, v) && b.IsPseudoLegal(act, v) {
				b.PlayLegal(act, v)
				return true
			}
		}
	}
	return false
}
