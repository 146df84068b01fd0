package engine

import (
	"math/rand"
	"sort"
	"time"
)

// Difficulty is a closed enumeration; each tier maps to an explicit search
// configuration instead of being dispatched on by name.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
	DifficultyExpert
)

// LevelConfig parameterizes one difficulty tier.
type LevelConfig struct {
	// Jitter is the magnitude of random noise added to Go move scores.
	Jitter float64
	// UseJoseki enables the corner pattern lookup.
	UseJoseki bool
	// Lookahead enables the one-ply opponent-response subtraction.
	Lookahead bool
	// Depth and BeamWidth bound the Gomoku minimax.
	Depth     int
	BeamWidth int
	// UseSuggester marks the tier that defers to the external neural
	// suggester; the caller falls back to these heuristics when it fails.
	UseSuggester bool
}

func (d Difficulty) Config() LevelConfig {
	switch d {
	case DifficultyEasy:
		return LevelConfig{Jitter: 40, Depth: 2, BeamWidth: 6}
	case DifficultyMedium:
		return LevelConfig{Jitter: 12, UseJoseki: true, Depth: 2, BeamWidth: 8}
	case DifficultyExpert:
		return LevelConfig{Jitter: 1, UseJoseki: true, Lookahead: true, Depth: 4, BeamWidth: 8, UseSuggester: true}
	default: // DifficultyHard
		return LevelConfig{Jitter: 1, UseJoseki: true, Lookahead: true, Depth: 4, BeamWidth: 8}
	}
}

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	case DifficultyExpert:
		return "expert"
	default:
		return "unknown"
	}
}

type DecisionKind int

const (
	DecisionPlay DecisionKind = iota
	DecisionPass
	DecisionResign
)

// Decision is what the search hands back: a point to play, a pass, or a
// resignation signal.
type Decision struct {
	Kind  DecisionKind
	Point Point
}

var defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// AIMove picks a move for player. prevHash feeds the ko check when
// simulating Go moves; moveCount gates the resignation heuristic. rng may be
// nil, in which case a package-wide time-seeded source is used.
func AIMove(b Board, player Player, gameType GameType, level Difficulty, prevHash uint64, moveCount int, rng *rand.Rand) Decision {
	if rng == nil {
		rng = defaultRand
	}
	cfg := level.Config()
	if gameType == GameTypeGomoku {
		return gomokuMove(b, player, cfg)
	}
	return goMove(b, player, cfg, prevHash, moveCount, rng)
}

func goMove(b Board, player Player, cfg LevelConfig, prevHash uint64, moveCount int, rng *rand.Rand) Decision {
	if ShouldResign(b, player, moveCount) {
		return Decision{Kind: DecisionResign}
	}

	if cfg.UseJoseki {
		if p, ok := JosekiResponse(b, player); ok {
			return Decision{Kind: DecisionPlay, Point: p}
		}
	}

	best := illegalScore
	var bestPoint Point
	found := false
	for _, p := range Candidates(b, DefaultCandidateRadius) {
		if prevHash != 0 {
			// The evaluator ignores ko for speed; re-check it on the
			// candidate before it can become the chosen move.
			if _, err := ApplyMove(b, p.X, p.Y, player, GameTypeGo, prevHash); err != nil {
				continue
			}
		}
		score := EvaluateGoMove(b, p, player, cfg.Jitter, cfg.Lookahead, rng)
		if score <= illegalScore {
			continue
		}
		if !found || score > best {
			best = score
			bestPoint = p
			found = true
		}
	}
	if !found {
		return Decision{Kind: DecisionPass}
	}
	return Decision{Kind: DecisionPlay, Point: bestPoint}
}

func gomokuMove(b Board, player Player, cfg LevelConfig) Decision {
	candidates := Candidates(b, DefaultCandidateRadius)
	if len(candidates) == 0 {
		return Decision{Kind: DecisionPass}
	}

	ordered := orderGomokuCandidates(b, candidates, player)
	if len(ordered) == 0 {
		return Decision{Kind: DecisionPass}
	}

	cell := CellFromPlayer(player)

	// Immediate win short-circuit: never search past a finished game. The
	// static score alone is not proof of a five — a point covering two
	// opponent threats reaches the same tier — so verify the win on the
	// board. Win candidates always score at least the five tier, so the
	// scan can stop at the first lower score.
	for _, c := range ordered {
		if c.score < gomokuFive {
			break
		}
		probe := b.Clone()
		probe.Set(c.point.X, c.point.Y, cell)
		if IsGomokuWin(probe, c.point) {
			return Decision{Kind: DecisionPlay, Point: c.point}
		}
	}

	beam := cfg.BeamWidth
	if beam <= 0 || beam > len(ordered) {
		beam = len(ordered)
	}
	depth := cfg.Depth
	if depth < 1 {
		depth = 1
	}

	best := illegalScore
	bestPoint := ordered[0].point
	for _, c := range ordered[:beam] {
		probe := b.Clone()
		probe.Set(c.point.X, c.point.Y, cell)
		var value float64
		if IsGomokuWin(probe, c.point) {
			value = gomokuFive + float64(depth)
		} else {
			value = -gomokuNegamax(probe, player.Opponent(), depth-1, -winInfinity, winInfinity, c.point)
		}
		if value > best {
			best = value
			bestPoint = c.point
		}
	}
	return Decision{Kind: DecisionPlay, Point: bestPoint}
}

const winInfinity = gomokuFive * 4

type scoredPoint struct {
	point Point
	score float64
}

func orderGomokuCandidates(b Board, candidates []Point, player Player) []scoredPoint {
	ordered := make([]scoredPoint, 0, len(candidates))
	for _, p := range candidates {
		score := GomokuMoveScore(b, p, player)
		if score <= illegalScore {
			continue
		}
		ordered = append(ordered, scoredPoint{point: p, score: score})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].score > ordered[j].score
	})
	return ordered
}

// gomokuNegamax is a fixed-depth alpha-beta search over the beam of top
// statically scored candidates. last is the move that produced b; if it won
// the game, the position is terminal for the side now to move.
func gomokuNegamax(b Board, toMove Player, depth int, alpha, beta float64, last Point) float64 {
	if IsGomokuWin(b, last) {
		// Prefer faster wins and slower losses.
		return -(gomokuFive + float64(depth))
	}
	if depth == 0 {
		return EvaluateGomokuBoard(b, toMove)
	}

	candidates := Candidates(b, DefaultCandidateRadius)
	if len(candidates) == 0 {
		return 0 // full board, draw
	}
	ordered := orderGomokuCandidates(b, candidates, toMove)
	if len(ordered) == 0 {
		return 0
	}
	beam := searchBeamWidth
	if beam > len(ordered) {
		beam = len(ordered)
	}

	cell := CellFromPlayer(toMove)
	best := -winInfinity
	for _, c := range ordered[:beam] {
		probe := b.Clone()
		probe.Set(c.point.X, c.point.Y, cell)
		value := -gomokuNegamax(probe, toMove.Opponent(), depth-1, -beta, -alpha, c.point)
		if value > best {
			best = value
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// searchBeamWidth bounds branching below the root; the root beam comes from
// the difficulty config.
const searchBeamWidth = 8
