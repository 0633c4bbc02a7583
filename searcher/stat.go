package searcher

import "math"

// Stat is a running mean seeded with prior pseudo-samples of value 0 and
// variance 1. Mean is NaN with a zero prior and no samples.
type Stat struct {
	prior float64
	count float64
	sum   float64
	sqSum float64
}

func (s *Stat) Reset(prior float64) {
	*s = Stat{prior: prior}
}

func (s *Stat) Update(value float64) {
	s.count++
	s.sum += value
	s.sqSum += value * value
}

// Merge adds the samples of other, which must share s's prior.
func (s *Stat) Merge(other Stat) {
	s.count += other.count
	s.sum += other.sum
	s.sqSum += other.sqSum
}

// Samples is the number of real updates.
func (s Stat) Samples() float64 { return s.count }

// Count is the effective sample count, prior included.
func (s Stat) Count() float64 { return s.prior + s.count }

func (s Stat) Mean() float64 {
	return s.sum / s.Count()
}

func (s Stat) Variance() float64 {
	mean := s.Mean()
	return (s.sqSum+s.prior)/s.Count() - mean*mean
}

func (s Stat) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

func (s Stat) StdError() float64 {
	return s.StdDev() / math.Sqrt(s.Count())
}
