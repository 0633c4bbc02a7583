package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ego/utils"
)

// Board geometry limits
const (
	MaxSize   = 19
	margin    = 2 // off-board rows/columns around the playing area
	Stride    = MaxSize + 2*margin
	NumPoints = Stride * Stride
)

// Vertex indexes a padded 1-D board. Row 0 is the bottom row (GTP "1").
// Every vertex within Chebyshev distance 2 of an on-board vertex is a valid
// index, so neighborhood walks never need bounds checks.
type Vertex int

const (
	Pass  Vertex = -1
	Unset Vertex = -2
)

const columns = "ABCDEFGHJKLMNOPQRST"

var ErrBadVertex = errors.New("malformed vertex")

func NewVertex(row, col int) Vertex {
	return Vertex((row+margin)*Stride + col + margin)
}

func (v Vertex) Row() int { return int(v)/Stride - margin }
func (v Vertex) Col() int { return int(v)%Stride - margin }

// Offset returns the vertex dRow rows up and dCol columns right.
func (v Vertex) Offset(dRow, dCol int) Vertex {
	return v + Vertex(dRow*Stride+dCol)
}

func (v Vertex) IsPass() bool { return v == Pass }

// Valid reports whether v is a real index (possibly off-board).
func (v Vertex) Valid() bool { return v >= 0 && v < NumPoints }

func (v Vertex) String() string {
	switch v {
	case Pass:
		return "pass"
	case Unset:
		return "unset"
	}
	if v.Row() < 0 || v.Col() < 0 || v.Row() >= MaxSize || v.Col() >= MaxSize {
		return fmt.Sprintf("off(%d)", int(v))
	}
	return fmt.Sprintf("%c%d", columns[v.Col()], v.Row()+1)
}

// ParseVertex reads a GTP coordinate such as "D4" or "pass" on a board of the given size.
func ParseVertex(s string, size int) (Vertex, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) < 2 {
		return Unset, fmt.Errorf("%w: %q", ErrBadVertex, s)
	}
	col := utils.FindIndex([]byte(columns), s[0])
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Unset, fmt.Errorf("%w: %q: %w", ErrBadVertex, s, err)
	}
	if col < 0 || col >= size || row < 1 || row > size {
		return Unset, fmt.Errorf("%w: %q outside %dx%d board", ErrBadVertex, s, size, size)
	}
	return NewVertex(row-1, col), nil
}

// Player to move or who moved.
type Player uint8

const (
	Black Player = iota
	White
)

func (p Player) Opponent() Player { return p ^ 1 }

func (p Player) Color() Color { return Color(p) }

func (p Player) String() string {
	if p == Black {
		return "B"
	}
	return "W"
}

// ParsePlayer accepts b, black, w or white in any case.
func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Black, fmt.Errorf("unknown player %q", s)
}

// Color of a vertex. Black and White share values with Player.
type Color uint8

const (
	ColorBlack Color = iota
	ColorWhite
	Empty
	OffBoard
)

func (c Color) IsPlayer() bool { return c <= ColorWhite }

// Player converts a stone color to its owner. Only valid when IsPlayer.
func (c Color) Player() Player { return Player(c) }

func (c Color) String() string {
	switch c {
	case ColorBlack:
		return "X"
	case ColorWhite:
		return "O"
	case Empty:
		return "."
	}
	return "#"
}

// Move is a (player, vertex) pair.
type Move struct {
	Player Player
	Vertex Vertex
}

// NumMoves bounds Move.Index.
const NumMoves = 2 * (NumPoints + 1)

func NewMove(p Player, v Vertex) Move { return Move{Player: p, Vertex: v} }

// Index maps the move to a dense slot, with pass sharing the last slot per player.
func (m Move) Index() int {
	slot := int(m.Vertex)
	if m.Vertex == Pass {
		slot = NumPoints
	}
	return int(m.Player)*(NumPoints+1) + slot
}

func (m Move) IsPass() bool { return m.Vertex == Pass }

func (m Move) String() string {
	return m.Player.String() + " " + m.Vertex.String()
}
