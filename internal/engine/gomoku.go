package engine

// WinLength is the run length that ends a Gomoku game.
const WinLength = 5

// Threat tiers. Each tier is separated by more than an order of magnitude so
// that the priority order — win, block win, open four, block open four, open
// three, and so on — survives any sum of lower tiers.
const (
	gomokuFive        = 1_000_000_000.0
	gomokuOpenFour    = 10_000_000.0
	gomokuClosedFour  = 200_000.0
	gomokuOpenThree   = 60_000.0
	gomokuClosedThree = 4_000.0
	gomokuOpenTwo     = 1_500.0
	gomokuClosedTwo   = 150.0

	// A blocking move is worth slightly less than the same threat made, so
	// the side to move prefers winning over defending when both exist.
	gomokuDefenseFactor = 0.8
)

var gomokuAxes = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {1, -1}}

// IsGomokuWin reports whether the stone at last completes a run of at least
// WinLength in any of the four axis directions.
func IsGomokuWin(b Board, last Point) bool {
	if !b.InBounds(last.X, last.Y) {
		return false
	}
	cell := b.At(last.X, last.Y)
	if cell == CellEmpty {
		return false
	}
	for _, axis := range gomokuAxes {
		count := 1
		count += countRun(b, last, axis[0], axis[1], cell)
		count += countRun(b, last, -axis[0], -axis[1], cell)
		if count >= WinLength {
			return true
		}
	}
	return false
}

func countRun(b Board, start Point, dx, dy int, cell Cell) int {
	x, y := start.X+dx, start.Y+dy
	count := 0
	for b.InBounds(x, y) && b.At(x, y) == cell {
		count++
		x += dx
		y += dy
	}
	return count
}

// endOpen reports whether the cell just past a run is empty, i.e. the run can
// still grow in that direction. Board edges and enemy stones both close it.
func endOpen(b Board, start Point, dx, dy int, runLen int) bool {
	x := start.X + dx*(runLen+1)
	y := start.Y + dy*(runLen+1)
	return b.IsEmpty(x, y)
}

// runValue maps a run length and its open-end count to a threat tier.
func runValue(length, openEnds int) float64 {
	if length >= WinLength {
		return gomokuFive
	}
	if openEnds == 0 {
		return 0
	}
	switch length {
	case 4:
		if openEnds == 2 {
			return gomokuOpenFour
		}
		return gomokuClosedFour
	case 3:
		if openEnds == 2 {
			return gomokuOpenThree
		}
		return gomokuClosedThree
	case 2:
		if openEnds == 2 {
			return gomokuOpenTwo
		}
		return gomokuClosedTwo
	default:
		return 0
	}
}

// placementValue sums, over the four axes, the threat created by placing cell
// at p. The board is probed with the stone virtually present.
func placementValue(b Board, p Point, cell Cell) float64 {
	total := 0.0
	for _, axis := range gomokuAxes {
		forward := countRun(b, p, axis[0], axis[1], cell)
		backward := countRun(b, p, -axis[0], -axis[1], cell)
		length := 1 + forward + backward
		openEnds := 0
		if endOpen(b, p, axis[0], axis[1], forward) {
			openEnds++
		}
		if endOpen(b, p, -axis[0], -axis[1], backward) {
			openEnds++
		}
		total += runValue(length, openEnds)
	}
	return total
}

// GomokuMoveScore is the static ordering score of a candidate: the threat it
// creates plus, discounted, the opponent threat it prevents. An own five
// dominates everything, a must-block opponent five dominates all non-winning
// moves, then open four, blocking an open four, and so on down the tiers.
func GomokuMoveScore(b Board, p Point, player Player) float64 {
	if !b.IsEmpty(p.X, p.Y) {
		return illegalScore
	}
	offense := placementValue(b, p, CellFromPlayer(player))
	defense := placementValue(b, p, CellFromPlayer(player.Opponent()))
	return offense + defense*gomokuDefenseFactor
}

// EvaluateGomokuBoard is the leaf evaluation for the minimax search: every
// maximal run on the board is classified and weighted, side to move minus
// opponent.
func EvaluateGomokuBoard(b Board, sideToMove Player) float64 {
	mine := CellFromPlayer(sideToMove)
	opp := CellFromPlayer(sideToMove.Opponent())
	return boardRunsValue(b, mine) - boardRunsValue(b, opp)
}

func boardRunsValue(b Board, cell Cell) float64 {
	size := b.Size()
	total := 0.0
	for _, axis := range gomokuAxes {
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				// Only score a run at its first stone.
				if b.At(x, y) != cell {
					continue
				}
				px, py := x-axis[0], y-axis[1]
				if b.InBounds(px, py) && b.At(px, py) == cell {
					continue
				}
				length := 1 + countRun(b, Point{X: x, Y: y}, axis[0], axis[1], cell)
				openEnds := 0
				if b.IsEmpty(px, py) {
					openEnds++
				}
				if endOpen(b, Point{X: x, Y: y}, axis[0], axis[1], length-1) {
					openEnds++
				}
				total += runValue(length, openEnds)
			}
		}
	}
	return total
}
