package searcher

import (
	"math"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"
)

// Source is the uniform generator policies draw from. Each playout
// worker owns its own Source.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a PCG stream for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomSeed draws a fresh non-zero seed from the system generator.
func RandomSeed() uint64 {
	return frand.Uint64n(math.MaxUint64) + 1
}

// streamSeed derives independent seeds for each cycle and worker.
func streamSeed(seed, cycle uint64, worker int) uint64 {
	z := seed + cycle*0xbf58476d1ce4e5b9 + uint64(worker+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
