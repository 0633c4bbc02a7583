package game

import (
	"errors"
	"fmt"
	"strings"
)

// MaxHistory is the capacity of the move log of a board.
const MaxHistory = 4 * MaxSize * MaxSize

const DefaultKomi = 7.5

var (
	ErrOffBoard    = errors.New("vertex is off board")
	ErrOccupied    = errors.New("vertex is occupied")
	ErrSuicide     = errors.New("suicide")
	ErrKo          = errors.New("ko")
	ErrHistoryFull = errors.New("move history is full")
)

var dirs = [4]Vertex{1, -1, Stride, -Stride}
var diags = [4]Vertex{Stride - 1, Stride + 1, -Stride - 1, -Stride + 1}

// Board is a Go position with incrementally maintained chains. Liberties are
// tracked as pseudo-liberties (one per stone/empty adjacency) together with
// their sum and sum of squares, which identifies a chain in atari exactly:
// all pseudo-liberties are the same point iff sum^2 == count*sumSq.
//
// All state lives in fixed-size arrays, so Load is a plain value copy.
type Board struct {
	size int
	komi float64

	color     [NumPoints]Color
	chainID   [NumPoints]Vertex
	chainNext [NumPoints]Vertex
	chainSize [NumPoints]int
	libCnt    [NumPoints]int
	libSum    [NumPoints]int
	libSumSq  [NumPoints]int

	vertices  [MaxSize * MaxSize]Vertex
	vertexCnt int
	emptyV    [MaxSize * MaxSize]Vertex
	emptyPos  [NumPoints]int
	emptyCnt  int
	stones    [2]int

	ko          Vertex
	koPlayer    Player
	lastPlayer  Player
	lastCapture int
	moveNo      int
	history     [MaxHistory]Move
}

// NewBoard returns an empty board. Panics if size is outside 2..MaxSize.
func NewBoard(size int, komi float64) *Board {
	b := &Board{}
	b.Clear(size, komi)
	return b
}

func (b *Board) Clear(size int, komi float64) {
	if size < 2 || size > MaxSize {
		panic(fmt.Sprintf("unsupported board size %d", size))
	}
	*b = Board{size: size, komi: komi}
	for i := range b.color {
		b.color[i] = OffBoard
		b.chainID[i] = Vertex(i)
		b.chainNext[i] = Vertex(i)
	}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			v := NewVertex(row, col)
			b.color[v] = Empty
			b.vertices[b.vertexCnt] = v
			b.vertexCnt++
			b.emptyPos[v] = b.emptyCnt
			b.emptyV[b.emptyCnt] = v
			b.emptyCnt++
		}
	}
	b.ko = Unset
	b.lastPlayer = White // black moves first
}

// Load makes b a deep copy of other.
func (b *Board) Load(other *Board) { *b = *other }

func (b *Board) Size() int            { return b.size }
func (b *Board) Komi() float64        { return b.komi }
func (b *Board) MoveNo() int          { return b.moveNo }
func (b *Board) LastPlayer() Player   { return b.lastPlayer }
func (b *Board) ActPlayer() Player    { return b.lastPlayer.Opponent() }
func (b *Board) LastCaptureSize() int { return b.lastCapture }

func (b *Board) ColorAt(v Vertex) Color {
	if !v.Valid() {
		return OffBoard
	}
	return b.color[v]
}

// Vertices lists the on-board vertices.
func (b *Board) Vertices() []Vertex { return b.vertices[:b.vertexCnt] }

// History is the move log from the start of the game.
func (b *Board) History() []Move { return b.history[:b.moveNo] }

func (b *Board) EmptyCount() int       { return b.emptyCnt }
func (b *Board) EmptyAt(i int) Vertex  { return b.emptyV[i] }
func (b *Board) MaxPlayoutLength() int { return 2 * b.vertexCnt }

// LastVertex is the vertex of the most recent move, or Unset at game start.
func (b *Board) LastVertex() Vertex {
	if b.moveNo == 0 {
		return Unset
	}
	return b.history[b.moveNo-1].Vertex
}

func (b *Board) BothPlayerPass() bool {
	if b.moveNo < 2 {
		return false
	}
	last, prev := b.history[b.moveNo-1], b.history[b.moveNo-2]
	return last.IsPass() && prev.IsPass() && last.Player != prev.Player
}

// IsEyelike reports whether v is surrounded by p's stones with at most one
// diagonal enemy (none at the edge).
func (b *Board) IsEyelike(p Player, v Vertex) bool {
	if v == Pass || b.color[v] != Empty {
		return false
	}
	own := p.Color()
	for _, d := range dirs {
		if c := b.color[v+d]; c != own && c != OffBoard {
			return false
		}
	}
	enemies, edge := 0, 0
	for _, d := range diags {
		switch b.color[v+d] {
		case p.Opponent().Color():
			enemies++
		case OffBoard:
			edge = 1
		}
	}
	return enemies+edge < 2
}

// IsPseudoLegal reports whether p may play v ignoring superko.
func (b *Board) IsPseudoLegal(p Player, v Vertex) bool {
	if v == Pass {
		return true
	}
	if b.color[v] != Empty {
		return false
	}
	if v == b.ko && p == b.koPlayer {
		return false
	}
	for _, d := range dirs {
		if b.color[v+d] == Empty {
			return true
		}
	}
	own := p.Color()
	for _, d := range dirs {
		c := b.color[v+d]
		if !c.IsPlayer() {
			continue
		}
		atari := b.inAtari(b.chainID[v+d])
		if (c == own && !atari) || (c != own && atari) {
			return true
		}
	}
	return false
}

// Play is the checked version of PlayLegal.
func (b *Board) Play(p Player, v Vertex) error {
	if b.moveNo >= MaxHistory {
		return ErrHistoryFull
	}
	if v != Pass {
		if !v.Valid() || b.color[v] == OffBoard {
			return fmt.Errorf("%w: %v", ErrOffBoard, v)
		}
		if b.color[v] != Empty {
			return fmt.Errorf("%w: %v", ErrOccupied, v)
		}
		if v == b.ko && p == b.koPlayer {
			return fmt.Errorf("%w: %v", ErrKo, v)
		}
		if !b.IsPseudoLegal(p, v) {
			return fmt.Errorf("%w: %v", ErrSuicide, v)
		}
	}
	b.PlayLegal(p, v)
	return nil
}

// PlayLegal plays a move the caller has already checked with IsPseudoLegal.
func (b *Board) PlayLegal(p Player, v Vertex) {
	if b.moveNo >= MaxHistory {
		panic("move history overflow")
	}
	b.ko = Unset
	b.lastCapture = 0
	if v != Pass {
		b.placeStone(p, v)
	}
	b.history[b.moveNo] = Move{Player: p, Vertex: v}
	b.moveNo++
	b.lastPlayer = p
}

func (b *Board) placeStone(p Player, v Vertex) {
	own, enemy := p.Color(), p.Opponent().Color()

	b.removeEmpty(v)
	b.color[v] = own
	b.stones[p]++
	b.chainID[v] = v
	b.chainNext[v] = v
	b.chainSize[v] = 1
	b.libCnt[v], b.libSum[v], b.libSumSq[v] = 0, 0, 0

	for _, d := range dirs {
		n := v + d
		switch c := b.color[n]; {
		case c == Empty:
			b.addLib(v, n)
		case c.IsPlayer():
			b.removeLib(b.chainID[n], v)
		}
	}
	for _, d := range dirs {
		n := v + d
		if b.color[n] == own && b.chainID[n] != b.chainID[v] {
			b.merge(b.chainID[v], b.chainID[n])
		}
	}

	captured := Unset
	for _, d := range dirs {
		n := v + d
		if b.color[n] == enemy && b.libCnt[b.chainID[n]] == 0 {
			b.lastCapture += b.removeChain(b.chainID[n])
			captured = n
		}
	}

	root := b.chainID[v]
	if b.lastCapture == 1 && b.chainSize[root] == 1 && b.libCnt[root] == 1 {
		b.ko = captured
		b.koPlayer = p.Opponent()
	}
}

func (b *Board) addLib(root, lib Vertex) {
	b.libCnt[root]++
	b.libSum[root] += int(lib)
	b.libSumSq[root] += int(lib) * int(lib)
}

func (b *Board) removeLib(root, lib Vertex) {
	b.libCnt[root]--
	b.libSum[root] -= int(lib)
	b.libSumSq[root] -= int(lib) * int(lib)
}

func (b *Board) inAtari(root Vertex) bool {
	n := b.libCnt[root]
	return n > 0 && b.libSum[root]*b.libSum[root] == n*b.libSumSq[root]
}

func (b *Board) atariLib(root Vertex) Vertex {
	return Vertex(b.libSum[root] / b.libCnt[root])
}

// merge joins two chains under the root of the larger one.
func (b *Board) merge(root, other Vertex) {
	if b.chainSize[root] < b.chainSize[other] {
		root, other = other, root
	}
	s := other
	for {
		b.chainID[s] = root
		s = b.chainNext[s]
		if s == other {
			break
		}
	}
	b.chainNext[root], b.chainNext[other] = b.chainNext[other], b.chainNext[root]
	b.chainSize[root] += b.chainSize[other]
	b.libCnt[root] += b.libCnt[other]
	b.libSum[root] += b.libSum[other]
	b.libSumSq[root] += b.libSumSq[other]
}

func (b *Board) removeChain(root Vertex) int {
	owner := b.color[root].Player()
	removed := 0
	s := root
	for {
		b.color[s] = Empty
		b.addEmpty(s)
		b.stones[owner]--
		removed++
		for _, d := range dirs {
			n := s + d
			if b.color[n].IsPlayer() && b.chainID[n] != root {
				b.addLib(b.chainID[n], s)
			}
		}
		s = b.chainNext[s]
		if s == root {
			break
		}
	}
	return removed
}

func (b *Board) addEmpty(v Vertex) {
	b.emptyPos[v] = b.emptyCnt
	b.emptyV[b.emptyCnt] = v
	b.emptyCnt++
}

func (b *Board) removeEmpty(v Vertex) {
	i := b.emptyPos[v]
	b.emptyCnt--
	last := b.emptyV[b.emptyCnt]
	b.emptyV[i] = last
	b.emptyPos[last] = i
}

// PseudoAtari fills out with, per player, the liberty of one of that player's
// chains in atari, or Unset. Chains touching the last move are preferred.
func (b *Board) PseudoAtari(out *[2]Vertex) {
	out[Black], out[White] = Unset, Unset
	if last := b.LastVertex(); last.Valid() {
		b.noteAtari(out, last)
		for _, d := range dirs {
			b.noteAtari(out, last+d)
		}
	}
	for _, v := range b.Vertices() {
		if out[Black] != Unset && out[White] != Unset {
			return
		}
		if b.chainID[v] == v {
			b.noteAtari(out, v)
		}
	}
}

func (b *Board) noteAtari(out *[2]Vertex, v Vertex) {
	c := b.color[v]
	if !c.IsPlayer() || out[c.Player()] != Unset {
		return
	}
	if root := b.chainID[v]; b.inAtari(root) {
		out[c.Player()] = b.atariLib(root)
	}
}

// ApproxScore is the black minus white stone count minus komi.
func (b *Board) ApproxScore() float64 {
	return float64(b.stones[Black]-b.stones[White]) - b.komi
}

// VertexScore is +1 for black-owned, -1 for white-owned and 0 otherwise.
// Empty points count for a player when every on-board neighbor is theirs.
func (b *Board) VertexScore(v Vertex) int {
	switch b.color[v] {
	case ColorBlack:
		return 1
	case ColorWhite:
		return -1
	case OffBoard:
		return 0
	}
	var seen [4]bool
	for _, d := range dirs {
		seen[b.color[v+d]] = true
	}
	switch {
	case seen[ColorBlack] && !seen[ColorWhite]:
		return 1
	case seen[ColorWhite] && !seen[ColorBlack]:
		return -1
	}
	return 0
}

// Score is the area score from black's point of view, komi included.
func (b *Board) Score() float64 {
	total := 0
	for _, v := range b.Vertices() {
		total += b.VertexScore(v)
	}
	return float64(total) - b.komi
}

func (b *Board) String() string {
	var sb strings.Builder
	last := b.LastVertex()
	for row := b.size - 1; row >= 0; row-- {
		fmt.Fprintf(&sb, "%2d ", row+1)
		for col := 0; col < b.size; col++ {
			v := NewVertex(row, col)
			if v == last {
				sb.WriteString("(" + b.color[v].String() + ")")
				continue
			}
			sb.WriteString(" " + b.color[v].String() + " ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for col := 0; col < b.size; col++ {
		sb.WriteString(" " + columns[col:col+1] + " ")
	}
	return sb.String()
}
