package engine

// DefaultKomi is the compensation added to white under area scoring.
const DefaultKomi = 7.5

// ScoreResult is an area (Chinese) count: stones on the board plus enclosed
// empty regions, komi added to white. The territory/dame fields partition the
// empty cells; together with the stone counts they always sum to size².
type ScoreResult struct {
	Black          float64 `json:"black"`
	White          float64 `json:"white"`
	BlackStones    int     `json:"black_stones"`
	WhiteStones    int     `json:"white_stones"`
	BlackTerritory int     `json:"black_territory"`
	WhiteTerritory int     `json:"white_territory"`
	Dame           int     `json:"dame"`
}

// Score flood-fills every maximal empty region exactly once. A region
// bordered by a single color is that color's territory; a region touching
// both colors is dame and counts for neither.
func Score(b Board, komi float64) ScoreResult {
	size := b.Size()
	visited := make([]bool, size*size)
	var result ScoreResult

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			idx := y*size + x
			switch b.At(x, y) {
			case CellBlack:
				result.BlackStones++
				continue
			case CellWhite:
				result.WhiteStones++
				continue
			}
			if visited[idx] {
				continue
			}

			regionSize, owner, contested := fillEmptyRegion(b, x, y, visited)
			switch {
			case contested || owner == CellEmpty:
				result.Dame += regionSize
			case owner == CellBlack:
				result.BlackTerritory += regionSize
			default:
				result.WhiteTerritory += regionSize
			}
		}
	}

	result.Black = float64(result.BlackStones + result.BlackTerritory)
	result.White = float64(result.WhiteStones+result.WhiteTerritory) + komi
	return result
}

// fillEmptyRegion expands one maximal connected empty region and reports its
// size, the single bordering color if there is one, and whether both colors
// touch it. An all-empty board yields owner CellEmpty.
func fillEmptyRegion(b Board, x, y int, visited []bool) (regionSize int, owner Cell, contested bool) {
	size := b.Size()
	queue := make([]Point, 0, 16)
	queue = append(queue, Point{X: x, Y: y})
	visited[y*size+x] = true

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		regionSize++

		for _, d := range neighborOffsets {
			nx, ny := p.X+d[0], p.Y+d[1]
			if !b.InBounds(nx, ny) {
				continue
			}
			cell := b.At(nx, ny)
			if cell == CellEmpty {
				idx := ny*size + nx
				if !visited[idx] {
					visited[idx] = true
					queue = append(queue, Point{X: nx, Y: ny})
				}
				continue
			}
			if owner == CellEmpty {
				owner = cell
			} else if owner != cell {
				contested = true
			}
		}
	}
	return regionSize, owner, contested
}
