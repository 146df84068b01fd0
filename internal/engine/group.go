package engine

// Group is the maximal orthogonally connected set of same-colored stones
// containing a seed point, plus the number of distinct empty cells adjacent
// to any of them. Groups are derived on demand and never stored.
type Group struct {
	Color     Cell
	Stones    []Point
	Liberties int
}

// GroupAt flood-fills the group containing (x, y). The second return value is
// false when the cell is empty or out of bounds.
func GroupAt(b Board, x, y int) (Group, bool) {
	if !b.InBounds(x, y) || b.At(x, y) == CellEmpty {
		return Group{}, false
	}
	size := b.Size()
	visited := make([]bool, size*size)
	libertySeen := make([]bool, size*size)
	return fillGroup(b, x, y, visited, libertySeen), true
}

// AllGroups partitions every stone on the board into exactly one group. Used
// by the evaluator and exposed for renderers; the legality path sticks to
// GroupAt for the handful of groups it actually needs.
func AllGroups(b Board) []Group {
	size := b.Size()
	visited := make([]bool, size*size)
	libertySeen := make([]bool, size*size)
	var groups []Group
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if b.At(x, y) == CellEmpty || visited[y*size+x] {
				continue
			}
			for i := range libertySeen {
				libertySeen[i] = false
			}
			groups = append(groups, fillGroup(b, x, y, visited, libertySeen))
		}
	}
	return groups
}

// fillGroup runs a breadth-first traversal from the seed. Liberties are
// counted per distinct empty cell, not per stone-to-cell edge, hence the
// libertySeen index set.
func fillGroup(b Board, x, y int, visited, libertySeen []bool) Group {
	size := b.Size()
	color := b.At(x, y)
	group := Group{Color: color}

	queue := make([]Point, 0, 8)
	queue = append(queue, Point{X: x, Y: y})
	visited[y*size+x] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		group.Stones = append(group.Stones, p)

		for _, d := range neighborOffsets {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.InBounds(nx, ny) {
				continue
			}
			idx := ny*size + nx
			switch b.At(nx, ny) {
			case color:
				if !visited[idx] {
					visited[idx] = true
					queue = append(queue, Point{X: nx, Y: ny})
				}
			case CellEmpty:
				if !libertySeen[idx] {
					libertySeen[idx] = true
					group.Liberties++
				}
			}
		}
	}
	return group
}
