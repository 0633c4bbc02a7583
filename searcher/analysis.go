package searcher

import (
	"fmt"
	"strings"

	"ego/game"
)

// MoveValues maps every board point to the normalized AAF value of player
// moving there, divided by scale. Occupied points are 0. Row 0 is the top row.
func MoveValues(b *game.Board, stats *AafStats, player game.Player, scale float64) [][]float64 {
	return grid(b, func(v game.Vertex) float64 {
		if b.ColorAt(v) != game.Empty {
			return 0
		}
		return stats.NormMeanGivenMove(game.NewMove(player, v)) / scale
	})
}

// Ownership maps every board point to its mean owner over all playouts,
// +1 black and -1 white, divided by scale. Row 0 is the top row.
func Ownership(b *game.Board, stats *AafStats, scale float64) [][]float64 {
	return grid(b, func(v game.Vertex) float64 {
		return stats.Ownage(v) / scale
	})
}

func grid(b *game.Board, value func(game.Vertex) float64) [][]float64 {
	size := b.Size()
	out := make([][]float64, size)
	for r := range out {
		out[r] = make([]float64, size)
		row := size - 1 - r
		for c := range out[r] {
			out[r][c] = value(game.NewVertex(row, c))
		}
	}
	return out
}

// ShowPlayout plays one playout from a copy of start and renders the moves of
// its AAF window followed by the final score.
func ShowPlayout(start *game.Board, kind PolicyKind, random Source, cfg PlayoutConfig, aafFraction, localProbability float64) string {
	var b game.Board
	b.Load(start)
	result := Run(NewPolicy(kind, random, localProbability), &b, cfg)
	window := int(float64(result.Length) * aafFraction)

	var sb strings.Builder
	sb.WriteString("VAR")
	for _, m := range result.Moves[:window] {
		fmt.Fprintf(&sb, " %s %s", strings.ToLower(m.Player.String()), m.Vertex)
	}
	fmt.Fprintf(&sb, "\nstatus %s, length %d, score %.1f\n", result.Status, result.Length, b.Score())
	return sb.String()
}

// FormatGrid renders values with three decimals, labelled with board
// coordinates.
func FormatGrid(values [][]float64) string {
	return format(values, 7, func(f float64) string { return fmt.Sprintf("%7.3f", f) })
}

// FormatOwnership renders an ownership map as glyphs: X and O for points
// owned by black or white in most playouts, x and o for leaning points.
func FormatOwnership(values [][]float64) string {
	return format(values, 1, func(f float64) string {
		switch {
		case f > 0.6:
			return "X"
		case f > 0.3:
			return "x"
		case f < -0.6:
			return "O"
		case f < -0.3:
			return "o"
		}
		return "."
	})
}

func format(values [][]float64, width int, cell func(float64) string) string {
	const columns = "ABCDEFGHJKLMNOPQRST"
	size := len(values)

	var sb strings.Builder
	header := func() {
		sb.WriteString("   ")
		for c := 0; c < size; c++ {
			fmt.Fprintf(&sb, " %*c", width, columns[c])
		}
		sb.WriteByte('\n')
	}

	header()
	for r, row := range values {
		fmt.Fprintf(&sb, "%2d ", size-r)
		for _, f := range row {
			sb.WriteByte(' ')
			sb.WriteString(cell(f))
		}
		fmt.Fprintf(&sb, " %2d\n", size-r)
	}
	header()
	return sb.String()
}
