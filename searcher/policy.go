package searcher

import (
	"fmt"
	"strings"

	"ego/game"
)

type PolicyKind int

const (
	SimpleKind PolicyKind = iota
	AtariKind
	LocalKind
)

func (k PolicyKind) String() string {
	switch k {
	case AtariKind:
		return "atari"
	case LocalKind:
		return "local"
	}
	return "simple"
}

func ParsePolicyKind(s string) (PolicyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "simple":
		return SimpleKind, nil
	case "atari":
		return AtariKind, nil
	case "local":
		return LocalKind, nil
	}
	return SimpleKind, fmt.Errorf("unknown policy %q", s)
}

// NewPolicy builds a policy of the given kind drawing from random.
func NewPolicy(kind PolicyKind, random Source, localProbability float64) Policy {
	switch kind {
	case AtariKind:
		return NewAtariPolicy(random)
	case LocalKind:
		return NewLocalPolicy(random, localProbability)
	}
	return NewSimplePolicy(random)
}

// SimplePolicy plays a uniformly random non-eye pseudo-legal move.
type SimplePolicy struct {
	random Source
}

func NewSimplePolicy(random Source) *SimplePolicy {
	return &SimplePolicy{random: random}
}

// PlayMove scans the empty points cyclically from a random start and plays
// the first acceptable one, or passes after a full cycle.
func (p *SimplePolicy) PlayMove(b *game.Board) {
	act := b.ActPlayer()
	n := b.EmptyCount()
	if n == 0 {
		b.PlayLegal(act, game.Pass)
		return
	}

	start := p.random.Intn(n)
	i := start
	for {
		v := b.EmptyAt(i)
		if !b.IsEyelike(act, v) && b.IsPseudoLegal(act, v) {
			b.PlayLegal(act, v)
			return
		}
		i = (i + 1) % n
		if i == start {
			b.PlayLegal(act, game.Pass)
			return
		}
	}
}
