package engine

import "errors"

// Illegal moves are ordinary results, not exceptional control flow. Callers
// match on these to decide how to surface the rejection.
var (
	ErrOutOfBounds  = errors.New("move out of bounds")
	ErrOccupied     = errors.New("cell already occupied")
	ErrSuicide      = errors.New("suicide move")
	ErrKoRepetition = errors.New("ko: board repeats previous position")
)

// MoveResult is the outcome of a legal move: the successor board and how many
// opposing stones the move removed.
type MoveResult struct {
	Board    Board
	Captured int
}

// ApplyMove validates and executes a move, returning a new board. The input
// board is never mutated.
//
// prevHash is the hash of the board as it stood immediately before the
// opponent's last move; a resulting position equal to it is rejected as a ko
// repetition. This is deliberately a one-ply lookback, not full superko. Pass
// zero to skip the check.
func ApplyMove(b Board, x, y int, player Player, gameType GameType, prevHash uint64) (MoveResult, error) {
	if !b.InBounds(x, y) {
		return MoveResult{}, ErrOutOfBounds
	}
	if b.At(x, y) != CellEmpty {
		return MoveResult{}, ErrOccupied
	}

	next := b.Clone()
	next.Set(x, y, CellFromPlayer(player))

	// Gomoku has no captures and no suicide rule.
	if gameType == GameTypeGomoku {
		return MoveResult{Board: next}, nil
	}

	// Opposing groups left without liberties die first, then the mover's own
	// group is inspected. The ordering is what makes snapback captures legal.
	opponent := CellFromPlayer(player.Opponent())
	captured := 0
	for _, d := range neighborOffsets {
		nx, ny := x+d[0], y+d[1]
		if !next.InBounds(nx, ny) || next.At(nx, ny) != opponent {
			continue
		}
		group, ok := GroupAt(next, nx, ny)
		if !ok || group.Liberties > 0 {
			continue
		}
		for _, stone := range group.Stones {
			next.Remove(stone.X, stone.Y)
		}
		captured += len(group.Stones)
	}

	own, _ := GroupAt(next, x, y)
	if own.Liberties == 0 && captured == 0 {
		return MoveResult{}, ErrSuicide
	}

	if prevHash != 0 && BoardHash(next) == prevHash {
		return MoveResult{}, ErrKoRepetition
	}

	return MoveResult{Board: next, Captured: captured}, nil
}

// IsLegal reports whether a move would be accepted, without keeping the
// resulting board.
func IsLegal(b Board, x, y int, player Player, gameType GameType, prevHash uint64) bool {
	_, err := ApplyMove(b, x, y, player, gameType, prevHash)
	return err == nil
}
