package searcher

import "ego/game"

// AafStats folds playout outcomes into All-As-First move statistics and a
// black-minus-white ownership map.
type AafStats struct {
	unconditional Stat
	givenMove     [game.NumMoves]Stat
	ownage        [game.NumPoints]float64
	ownageCount   float64
}

func NewAafStats(prior float64) *AafStats {
	a := &AafStats{}
	a.Reset(prior)
	return a
}

func (a *AafStats) Reset(prior float64) {
	a.unconditional.Reset(prior)
	for i := range a.givenMove {
		a.givenMove[i].Reset(prior)
	}
	a.ownage = [game.NumPoints]float64{}
	a.ownageCount = 0
}

// Update credits score to every one of the first moveCount moves. A move
// repeated within the window is credited once per occurrence.
func (a *AafStats) Update(moves []game.Move, moveCount int, score float64) {
	a.unconditional.Update(score)
	for _, m := range moves[:moveCount] {
		a.givenMove[m.Index()].Update(score)
	}
}

func (a *AafStats) OwnageUpdate(b *game.Board) {
	a.ownageCount++
	for _, v := range b.Vertices() {
		a.ownage[v] += float64(b.VertexScore(v))
	}
}

func (a *AafStats) Unconditional() Stat { return a.unconditional }

func (a *AafStats) GivenMove(m game.Move) Stat { return a.givenMove[m.Index()] }

// NormMeanGivenMove is the mean score of playouts containing m minus the
// mean of all playouts.
func (a *AafStats) NormMeanGivenMove(m game.Move) float64 {
	return a.givenMove[m.Index()].Mean() - a.unconditional.Mean()
}

// Ownage is the mean ownership of v, +1 black and -1 white. NaN before any
// playout.
func (a *AafStats) Ownage(v game.Vertex) float64 {
	return a.ownage[v] / a.ownageCount
}

func (a *AafStats) Playouts() float64 { return a.ownageCount }

// Merge folds the partial statistics of other into a. Both must have been
// reset with the same prior.
func (a *AafStats) Merge(other *AafStats) {
	a.unconditional.Merge(other.unconditional)
	for i := range a.givenMove {
		a.givenMove[i].Merge(other.givenMove[i])
	}
	for i := range a.ownage {
		a.ownage[i] += other.ownage[i]
	}
	a.ownageCount += other.ownageCount
}
