package engine

import "math/rand"

const illegalScore = -1e9

// Heuristic weights for the Go move evaluator. Captures dominate, shape and
// position break ties.
const (
	captureStoneValue = 120.0
	atariBonus        = 45.0
	selfAtariPenalty  = 60.0
	tigerMouthBonus   = 18.0
	cutBonus          = 14.0
	starPointBonus    = 12.0
	firstLinePenalty  = 18.0
	secondLinePenalty = 8.0
	centerStep        = 0.5
)

// Resignation gates: the board must be mostly full, the game past its
// opening, and the area count lopsided before the engine gives up.
const (
	resignFillRatio = 0.55
	resignMinMoves  = 3 // times size, see ShouldResign
)

// EvaluateGoMove scores a single candidate point for player. Illegal moves
// score illegalScore. jitter adds difficulty-scaled noise; lookahead
// additionally subtracts the opponent's best local answer on the post-move
// board, a cheap one-ply deepening.
func EvaluateGoMove(b Board, p Point, player Player, jitter float64, lookahead bool, rng *rand.Rand) float64 {
	score, res, ok := staticGoMoveScore(b, p, player)
	if !ok {
		return illegalScore
	}

	if lookahead {
		if reply := bestLocalReply(res.Board, p, player.Opponent()); reply > 0 {
			score -= reply
		}
	}

	if jitter > 0 && rng != nil {
		score += (rng.Float64()*2 - 1) * jitter
	}
	return score
}

// staticGoMoveScore is the jitter-free, lookahead-free core shared by the
// top-level evaluation and the one-ply reply scan.
func staticGoMoveScore(b Board, p Point, player Player) (float64, MoveResult, bool) {
	res, err := ApplyMove(b, p.X, p.Y, player, GameTypeGo, 0)
	if err != nil {
		return 0, MoveResult{}, false
	}

	score := float64(res.Captured) * captureStoneValue

	// Atari created on neighboring enemy groups. Groups are deduplicated by
	// their first stone so a shared group is not rewarded twice.
	opponentCell := CellFromPlayer(player.Opponent())
	seen := map[Point]bool{}
	for _, d := range neighborOffsets {
		nx, ny := p.X+d[0], p.Y+d[1]
		if !res.Board.InBounds(nx, ny) || res.Board.At(nx, ny) != opponentCell {
			continue
		}
		group, ok := GroupAt(res.Board, nx, ny)
		if !ok || seen[group.Stones[0]] {
			continue
		}
		seen[group.Stones[0]] = true
		if group.Liberties == 1 {
			score += atariBonus
		}
	}

	// Leaving the own group in atari is only acceptable when the move
	// captured something (snapback shapes).
	if own, ok := GroupAt(res.Board, p.X, p.Y); ok && own.Liberties == 1 && res.Captured == 0 {
		score -= selfAtariPenalty
	}

	score += shapeBonus(b, p, player)
	score += positionalWeight(b.Size(), p)
	return score, res, true
}

// shapeBonus rewards tiger's-mouth style diagonal connections and cutting
// points against two or more distinct adjacent enemy groups. Computed on the
// pre-move board: it describes what the point does, not what survives.
func shapeBonus(b Board, p Point, player Player) float64 {
	own := CellFromPlayer(player)
	enemy := CellFromPlayer(player.Opponent())

	diagonalFriends := 0
	for _, d := range diagonalOffsets {
		nx, ny := p.X+d[0], p.Y+d[1]
		if b.InBounds(nx, ny) && b.At(nx, ny) == own {
			diagonalFriends++
		}
	}
	bonus := 0.0
	if diagonalFriends >= 2 {
		bonus += tigerMouthBonus
	}

	enemyGroups := map[Point]bool{}
	for _, d := range neighborOffsets {
		nx, ny := p.X+d[0], p.Y+d[1]
		if !b.InBounds(nx, ny) || b.At(nx, ny) != enemy {
			continue
		}
		if group, ok := GroupAt(b, nx, ny); ok {
			enemyGroups[group.Stones[0]] = true
		}
	}
	if len(enemyGroups) >= 2 {
		bonus += cutBonus
	}
	return bonus
}

// positionalWeight prefers star points and the middle of the board, and
// penalizes the first and second lines on boards big enough for that to
// matter.
func positionalWeight(size int, p Point) float64 {
	weight := 0.0
	line := p.X
	if p.Y < line {
		line = p.Y
	}
	if size-1-p.X < line {
		line = size - 1 - p.X
	}
	if size-1-p.Y < line {
		line = size - 1 - p.Y
	}
	if size >= 9 {
		switch line {
		case 0:
			weight -= firstLinePenalty
		case 1:
			weight -= secondLinePenalty
		}
	}

	for _, star := range StarPoints(size) {
		if star == p {
			weight += starPointBonus
			break
		}
	}

	center := size / 2
	dist := abs(p.X - center)
	if d := abs(p.Y - center); d > dist {
		dist = d
	}
	weight += float64(center-dist) * centerStep
	return weight
}

// bestLocalReply scores the opponent's candidate answers within the pruning
// radius of the move just played and returns the best one. Jitter-free and
// without further recursion.
func bestLocalReply(b Board, around Point, opponent Player) float64 {
	best := 0.0
	for dy := -DefaultCandidateRadius; dy <= DefaultCandidateRadius; dy++ {
		for dx := -DefaultCandidateRadius; dx <= DefaultCandidateRadius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			p := Point{X: around.X + dx, Y: around.Y + dy}
			if !b.IsEmpty(p.X, p.Y) {
				continue
			}
			if score, _, ok := staticGoMoveScore(b, p, opponent); ok && score > best {
				best = score
			}
		}
	}
	return best
}

// ShouldResign signals a hopeless late-game position: the board is mostly
// filled, enough moves have been played to rule out opening noise, and the
// raw area count has the player far behind.
func ShouldResign(b Board, player Player, moveCount int) bool {
	size := b.Size()
	total := size * size
	if moveCount < resignMinMoves*size {
		return false
	}
	if float64(b.CountStones())/float64(total) < resignFillRatio {
		return false
	}
	score := Score(b, 0)
	deficit := score.White - score.Black
	if player == PlayerWhite {
		deficit = -deficit
	}
	return deficit > float64(total)/8
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
