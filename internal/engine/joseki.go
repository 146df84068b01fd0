package engine

import (
	"fmt"
	"sort"
	"strings"
)

// The matcher looks at a fixed window in each corner. Coordinates below are
// corner-local with (0,0) at the corner itself; every corner is mapped into
// this top-left orientation before lookup, and colors are renamed relative to
// the first stone in scan order, so one table serves both players and all
// four corners. The transpose of each signature is tried as well to cover the
// diagonal symmetry — together that is all 8 symmetries of the square.
const (
	josekiWindow       = 7
	josekiMinBoardSize = 13
	josekiMaxStones    = 4
)

// josekiTable maps a normalized corner signature to the canonical response
// point in corner-local coordinates. Signatures list stones in scan order
// (by y, then x); A is the color of the first stone.
var josekiTable = map[string]Point{
	// Lone 4-4 star point: knight's approach (doubles as the keima
	// enclosure when the stone is one's own).
	"A3,3": {X: 5, Y: 2},
	// Lone 3-3: shoulder hit.
	"A2,2": {X: 3, Y: 3},
	// Lone 3-4: low approach.
	"A2,3": {X: 4, Y: 2},
	// 3-3 under a star point (invasion, or shoulder hit on a 3-3): extend.
	"A2,2|B3,3": {X: 3, Y: 2},
	// Star point approached with a knight's move: answer with the keima.
	"A5,2|B3,3": {X: 2, Y: 5},
	// 3-4 approached low: one-space jump out.
	"A4,2|B2,3": {X: 2, Y: 5},
}

type cornerStone struct {
	X, Y  int
	Color Cell
}

// corner transforms map board coordinates into the top-left orientation.
var cornerTransforms = [4]struct{ flipX, flipY bool }{
	{false, false},
	{true, false},
	{false, true},
	{true, true},
}

// JosekiResponse scans the four corners for a known opening configuration
// and returns the catalogued answer, already transformed back into board
// coordinates and verified to be a legal move for player. The boolean is
// false when no corner matches.
func JosekiResponse(b Board, player Player) (Point, bool) {
	size := b.Size()
	if size < josekiMinBoardSize {
		return Point{}, false
	}

	for _, tr := range cornerTransforms {
		stones := cornerWindowStones(b, tr.flipX, tr.flipY)
		if len(stones) == 0 || len(stones) > josekiMaxStones {
			continue
		}

		response, ok := lookupSignature(stones)
		if !ok {
			// Diagonal symmetry: transpose the window and the answer.
			transposed := make([]cornerStone, len(stones))
			for i, s := range stones {
				transposed[i] = cornerStone{X: s.Y, Y: s.X, Color: s.Color}
			}
			response, ok = lookupSignature(transposed)
			if !ok {
				continue
			}
			response = Point{X: response.Y, Y: response.X}
		}

		boardPoint := fromCornerLocal(response, size, tr.flipX, tr.flipY)
		if IsLegal(b, boardPoint.X, boardPoint.Y, player, GameTypeGo, 0) {
			return boardPoint, true
		}
	}
	return Point{}, false
}

// cornerWindowStones collects the stones inside one corner's window in
// corner-local coordinates, sorted into scan order.
func cornerWindowStones(b Board, flipX, flipY bool) []cornerStone {
	size := b.Size()
	var stones []cornerStone
	for v := 0; v < josekiWindow; v++ {
		for u := 0; u < josekiWindow; u++ {
			bp := fromCornerLocal(Point{X: u, Y: v}, size, flipX, flipY)
			cell := b.At(bp.X, bp.Y)
			if cell == CellEmpty {
				continue
			}
			stones = append(stones, cornerStone{X: u, Y: v, Color: cell})
			if len(stones) > josekiMaxStones {
				return stones
			}
		}
	}
	sort.Slice(stones, func(i, j int) bool {
		if stones[i].Y != stones[j].Y {
			return stones[i].Y < stones[j].Y
		}
		return stones[i].X < stones[j].X
	})
	return stones
}

func fromCornerLocal(p Point, size int, flipX, flipY bool) Point {
	x, y := p.X, p.Y
	if flipX {
		x = size - 1 - x
	}
	if flipY {
		y = size - 1 - y
	}
	return Point{X: x, Y: y}
}

// lookupSignature renders the stones into the player-agnostic signature and
// probes the table.
func lookupSignature(stones []cornerStone) (Point, bool) {
	sorted := make([]cornerStone, len(stones))
	copy(sorted, stones)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	first := sorted[0].Color
	tokens := make([]string, len(sorted))
	for i, s := range sorted {
		label := byte('A')
		if s.Color != first {
			label = 'B'
		}
		tokens[i] = fmt.Sprintf("%c%d,%d", label, s.X, s.Y)
	}
	response, ok := josekiTable[strings.Join(tokens, "|")]
	return response, ok
}
