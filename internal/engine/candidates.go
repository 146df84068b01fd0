package engine

// DefaultCandidateRadius is the Chebyshev distance around existing stones
// inside which empty cells are considered playable.
const DefaultCandidateRadius = 2

// starLine is the distance of a star point from the board edge on boards
// large enough to have them.
const starLine = 3

// Candidates prunes the move space: on an empty board it returns the
// canonical opening points, otherwise every empty cell within radius of any
// stone. A pathological near-full board falls back to all empty cells so the
// search always has something to look at.
func Candidates(b Board, radius int) []Point {
	if radius <= 0 {
		radius = DefaultCandidateRadius
	}
	size := b.Size()
	if b.CountStones() == 0 {
		return openingPoints(size)
	}

	marked := make([]bool, size*size)
	var points []Point
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) == CellEmpty {
				continue
			}
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					nx, ny := x+dx, y+dy
					if !b.InBounds(nx, ny) || b.At(nx, ny) != CellEmpty {
						continue
					}
					idx := ny*size + nx
					if marked[idx] {
						continue
					}
					marked[idx] = true
					points = append(points, Point{X: nx, Y: ny})
				}
			}
		}
	}
	if len(points) > 0 {
		return points
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) == CellEmpty {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// openingPoints returns the center for small boards, and the four star
// points plus the center for boards of 13 and up.
func openingPoints(size int) []Point {
	center := size / 2
	if size < 13 {
		return []Point{{X: center, Y: center}}
	}
	far := size - 1 - starLine
	return []Point{
		{X: starLine, Y: starLine},
		{X: far, Y: starLine},
		{X: starLine, Y: far},
		{X: far, Y: far},
		{X: center, Y: center},
	}
}

// StarPoints lists the handicap points for a board size, used by the
// positional evaluator.
func StarPoints(size int) []Point {
	if size < 13 {
		center := size / 2
		return []Point{{X: center, Y: center}}
	}
	far := size - 1 - starLine
	center := size / 2
	return []Point{
		{X: starLine, Y: starLine},
		{X: far, Y: starLine},
		{X: starLine, Y: far},
		{X: far, Y: far},
		{X: center, Y: center},
	}
}
