package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/*
board:
- capture: single stone, multi-stone capture by a move with no empty neighbor
- legality: suicide, simple ko (forbidden once, allowed after another move)
- eye rule: center and corner eyes, diagonal enemies
- atari: candidate per player, merged chains
- scoring: area score with komi, vertex ownership
- copying: Load is a deep copy
- consistency: random games keep the empty list and liberty counts in sync
*/

func vertex(t *testing.T, b *Board, s string) Vertex {
	t.Helper()
	v, err := ParseVertex(s, b.Size())
	require.NoError(t, err)
	return v
}

func place(t *testing.T, b *Board, p Player, coords ...string) {
	t.Helper()
	for _, c := range coords {
		require.NoError(t, b.Play(p, vertex(t, b, c)), "placing %s %s", p, c)
	}
}

func TestNewBoard(t *testing.T) {
	t.Run("empty 9x9 board", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)

		require.Equal(t, 81, b.EmptyCount())
		require.Len(t, b.Vertices(), 81)
		require.Equal(t, Black, b.ActPlayer(), "Black should move first")
		require.Equal(t, 0, b.MoveNo())
		require.Equal(t, 162, b.MaxPlayoutLength())
		require.Equal(t, -DefaultKomi, b.Score())
		require.Equal(t, Unset, b.LastVertex())
	})

	t.Run("panics on unsupported size", func(t *testing.T) {
		require.Panics(t, func() { NewBoard(1, 0) })
		require.Panics(t, func() { NewBoard(MaxSize+1, 0) })
	})
}

func TestParseVertex(t *testing.T) {
	t.Run("round trips coordinates", func(t *testing.T) {
		for _, s := range []string{"A1", "D4", "J9", "H8", "pass"} {
			v, err := ParseVertex(s, 9)
			require.NoError(t, err)
			require.Equal(t, s, v.String())
		}
	})

	t.Run("skips the letter I", func(t *testing.T) {
		v, err := ParseVertex("J1", 9)
		require.NoError(t, err)
		require.Equal(t, 8, v.Col())

		_, err = ParseVertex("I1", 9)
		require.ErrorIs(t, err, ErrBadVertex)
	})

	t.Run("rejects coordinates outside the board", func(t *testing.T) {
		for _, s := range []string{"K1", "A10", "A0", "A", "Ax"} {
			_, err := ParseVertex(s, 9)
			require.ErrorIs(t, err, ErrBadVertex, s)
		}
	})
}

func TestCapture(t *testing.T) {
	t.Run("capturing a single stone", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, White, "E5")
		place(t, b, Black, "D5", "F5", "E6")
		require.Equal(t, 77, b.EmptyCount())

		require.NoError(t, b.Play(Black, vertex(t, b, "E4")))

		require.Equal(t, 1, b.LastCaptureSize())
		require.Equal(t, Empty, b.ColorAt(vertex(t, b, "E5")))
		require.Equal(t, 77, b.EmptyCount(), "One stone added and one removed")
	})

	t.Run("capturing two stones with a move that has no empty neighbor", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "B1", "A2")
		place(t, b, White, "C1", "B2", "A3")
		a1 := vertex(t, b, "A1")

		require.True(t, b.IsPseudoLegal(White, a1), "Capturing move should be legal")
		b.PlayLegal(White, a1)

		require.Equal(t, 2, b.LastCaptureSize())
		require.Equal(t, Empty, b.ColorAt(vertex(t, b, "B1")))
		require.Equal(t, Empty, b.ColorAt(vertex(t, b, "A2")))
	})
}

func TestLegality(t *testing.T) {
	t.Run("suicide is illegal", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "B1", "A2")
		a1 := vertex(t, b, "A1")

		require.False(t, b.IsPseudoLegal(White, a1))
		require.ErrorIs(t, b.Play(White, a1), ErrSuicide)
		require.True(t, b.IsPseudoLegal(Black, a1), "Filling own eye is legal")
	})

	t.Run("occupied and off-board vertices are rejected", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "E5")

		require.ErrorIs(t, b.Play(White, vertex(t, b, "E5")), ErrOccupied)
		require.ErrorIs(t, b.Play(White, NewVertex(9, 0)), ErrOffBoard)
		require.ErrorIs(t, b.Play(White, Unset), ErrOffBoard)
	})

	t.Run("simple ko forbids immediate recapture", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "B4", "C5", "C3")
		place(t, b, White, "D5", "C4", "E4", "D3")

		require.NoError(t, b.Play(Black, vertex(t, b, "D4")))
		require.Equal(t, 1, b.LastCaptureSize())

		c4 := vertex(t, b, "C4")
		require.False(t, b.IsPseudoLegal(White, c4))
		require.ErrorIs(t, b.Play(White, c4), ErrKo)

		place(t, b, White, "J9")
		place(t, b, Black, "J1")
		require.True(t, b.IsPseudoLegal(White, c4), "Ko should be lifted after other moves")
		require.NoError(t, b.Play(White, c4))
		require.Equal(t, 1, b.LastCaptureSize())
	})
}

func TestIsEyelike(t *testing.T) {
	t.Run("center eye tolerates one diagonal enemy", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "D5", "F5", "E4", "E6")
		e5 := vertex(t, b, "E5")

		require.True(t, b.IsEyelike(Black, e5))
		require.False(t, b.IsEyelike(White, e5))

		place(t, b, White, "D4")
		require.True(t, b.IsEyelike(Black, e5), "One diagonal enemy is allowed")

		place(t, b, White, "F6")
		require.False(t, b.IsEyelike(Black, e5), "Two diagonal enemies make a false eye")
	})

	t.Run("corner eye tolerates no diagonal enemy", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "A2", "B1")
		a1 := vertex(t, b, "A1")

		require.True(t, b.IsEyelike(Black, a1))

		place(t, b, White, "B2")
		require.False(t, b.IsEyelike(Black, a1))
	})

	t.Run("occupied and pass are never eyes", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "E5")

		require.False(t, b.IsEyelike(Black, vertex(t, b, "E5")))
		require.False(t, b.IsEyelike(Black, Pass))
	})
}

func TestPseudoAtari(t *testing.T) {
	t.Run("reports the liberty of a single stone in atari", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, White, "E5")
		place(t, b, Black, "D5", "F5", "E6")

		var out [2]Vertex
		b.PseudoAtari(&out)

		require.Equal(t, vertex(t, b, "E4"), out[White])
		require.Equal(t, Unset, out[Black])
	})

	t.Run("reports the liberty of a merged chain in atari", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "D4", "E4")
		place(t, b, White, "D5", "E5", "D3", "E3", "C4")

		var out [2]Vertex
		b.PseudoAtari(&out)

		require.Equal(t, vertex(t, b, "F4"), out[Black])
		require.Equal(t, Unset, out[White])
	})

	t.Run("reports nothing without ataris", func(t *testing.T) {
		b := NewBoard(9, DefaultKomi)
		place(t, b, Black, "E5")
		place(t, b, White, "C3")

		var out [2]Vertex
		b.PseudoAtari(&out)

		require.Equal(t, [2]Vertex{Unset, Unset}, out)
	})
}

func TestScore(t *testing.T) {
	t.Run("counting stones and surrounded points", func(t *testing.T) {
		b := NewBoard(5, 0.5)
		place(t, b, Black, "B1", "B2", "B3", "B4", "B5")
		place(t, b, White, "D1", "D2", "D3", "D4", "D5")

		require.Equal(t, 1, b.VertexScore(vertex(t, b, "A3")))
		require.Equal(t, 1, b.VertexScore(vertex(t, b, "B3")))
		require.Equal(t, 0, b.VertexScore(vertex(t, b, "C3")), "Dame belongs to nobody")
		require.Equal(t, -1, b.VertexScore(vertex(t, b, "E3")))
		require.Equal(t, -0.5, b.Score())
		require.Equal(t, -0.5, b.ApproxScore())
	})
}

func TestBothPlayerPass(t *testing.T) {
	b := NewBoard(9, DefaultKomi)
	require.False(t, b.BothPlayerPass())

	b.PlayLegal(Black, Pass)
	require.False(t, b.BothPlayerPass())

	b.PlayLegal(White, Pass)
	require.True(t, b.BothPlayerPass())

	b.PlayLegal(White, Pass)
	require.False(t, b.BothPlayerPass(), "Two passes by the same player do not end the game")
}

func TestLoad(t *testing.T) {
	b := NewBoard(9, DefaultKomi)
	place(t, b, Black, "E5")

	var copied Board
	copied.Load(b)
	place(t, &copied, White, "D5")

	require.Equal(t, 1, b.MoveNo(), "Original should not see moves on the copy")
	require.Equal(t, Empty, b.ColorAt(vertex(t, b, "D5")))
	require.Equal(t, 2, copied.MoveNo())
	require.Equal(t, b.History()[0], copied.History()[0])
}

// liberties counts distinct liberties of the chain at v by flood fill.
func liberties(b *Board, v Vertex) int {
	seen := map[Vertex]bool{v: true}
	libs := map[Vertex]bool{}
	stack := []Vertex{v}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range dirs {
			n := s + d
			switch {
			case b.color[n] == Empty:
				libs[n] = true
			case b.color[n] == b.color[v] && !seen[n]:
				seen[n] = true
				stack = append(stack, n)
			}
		}
	}
	return len(libs)
}

func TestRandomGameConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	b := NewBoard(9, DefaultKomi)

	for i := 0; i < 400 && !b.BothPlayerPass(); i++ {
		p := b.ActPlayer()
		candidates := []Vertex{}
		for j := 0; j < b.EmptyCount(); j++ {
			v := b.EmptyAt(j)
			if !b.IsEyelike(p, v) && b.IsPseudoLegal(p, v) {
				candidates = append(candidates, v)
			}
		}
		v := Pass
		if len(candidates) > 0 {
			v = candidates[rng.Intn(len(candidates))]
		}
		b.PlayLegal(p, v)

		empties := 0
		for _, v := range b.Vertices() {
			switch b.color[v] {
			case Empty:
				empties++
				require.Equal(t, v, b.emptyV[b.emptyPos[v]], "Empty list index out of sync")
			case ColorBlack, ColorWhite:
				libs := liberties(b, v)
				require.Positive(t, libs, "Chain at %v has no liberty", v)
				require.Equal(t, libs == 1, b.inAtari(b.chainID[v]), "Atari mismatch at %v", v)
			}
		}
		require.Equal(t, empties, b.EmptyCount())
	}
}
