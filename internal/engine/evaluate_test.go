package engine

import (
	"math/rand"
	"testing"
)

func TestEvaluateGoMovePrefersCapture(t *testing.T) {
	b := NewBoard(9)
	// White stone at (4,4) in atari; (4,5) captures it.
	b.Set(4, 4, CellWhite)
	b.Set(3, 4, CellBlack)
	b.Set(5, 4, CellBlack)
	b.Set(4, 3, CellBlack)

	capture := EvaluateGoMove(b, Point{X: 4, Y: 5}, PlayerBlack, 0, false, nil)
	quiet := EvaluateGoMove(b, Point{X: 6, Y: 6}, PlayerBlack, 0, false, nil)
	if capture <= quiet {
		t.Fatalf("capture (%v) should outrank quiet move (%v)", capture, quiet)
	}
}

func TestEvaluateGoMoveRejectsIllegalPoints(t *testing.T) {
	b := NewBoard(9)
	b.Set(4, 4, CellBlack)
	if score := EvaluateGoMove(b, Point{X: 4, Y: 4}, PlayerWhite, 0, false, nil); score > illegalScore {
		t.Fatalf("occupied point scored %v", score)
	}
}

func TestEvaluateGoMovePenalizesSelfAtari(t *testing.T) {
	b := NewBoard(9)
	b.Set(1, 0, CellWhite)

	selfAtari := EvaluateGoMove(b, Point{X: 0, Y: 0}, PlayerBlack, 0, false, nil)
	safe := EvaluateGoMove(b, Point{X: 4, Y: 4}, PlayerBlack, 0, false, nil)
	if selfAtari >= safe {
		t.Fatalf("self-atari (%v) should score below a safe point (%v)", selfAtari, safe)
	}
}

func TestEvaluateGoMoveRewardsAtari(t *testing.T) {
	b := NewBoard(9)
	// White stone at (4,4) with two liberties left.
	b.Set(4, 4, CellWhite)
	b.Set(3, 4, CellBlack)
	b.Set(4, 3, CellBlack)

	atari := EvaluateGoMove(b, Point{X: 5, Y: 4}, PlayerBlack, 0, false, nil)
	elsewhere := EvaluateGoMove(b, Point{X: 5, Y: 6}, PlayerBlack, 0, false, nil)
	if atari <= elsewhere {
		t.Fatalf("atari move (%v) should outrank a non-forcing one (%v)", atari, elsewhere)
	}
}

func TestEvaluateGoMoveLookaheadDiscountsAnswerableMoves(t *testing.T) {
	b := NewBoard(9)
	b.Set(4, 4, CellBlack)

	static := EvaluateGoMove(b, Point{X: 4, Y: 5}, PlayerWhite, 0, false, nil)
	deepened := EvaluateGoMove(b, Point{X: 4, Y: 5}, PlayerWhite, 0, true, nil)
	if deepened >= static {
		t.Fatalf("one-ply reply should lower the score: static %v, deepened %v", static, deepened)
	}
}

func TestEvaluateGoMoveJitterIsSeedDeterministic(t *testing.T) {
	b := NewBoard(9)
	b.Set(4, 4, CellWhite)
	p := Point{X: 3, Y: 3}

	a := EvaluateGoMove(b, p, PlayerBlack, 25, false, rand.New(rand.NewSource(42)))
	c := EvaluateGoMove(b, p, PlayerBlack, 25, false, rand.New(rand.NewSource(42)))
	if a != c {
		t.Fatalf("same seed produced different scores: %v vs %v", a, c)
	}
	if plain := EvaluateGoMove(b, p, PlayerBlack, 0, false, nil); plain == a {
		t.Fatalf("jitter had no effect")
	}
}

func TestShouldResignRequiresLateLopsidedGame(t *testing.T) {
	b := NewBoard(9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 7; x++ {
			b.Set(x, y, CellWhite)
		}
	}
	b.Set(8, 0, CellBlack)

	if ShouldResign(b, PlayerBlack, 5) {
		t.Fatalf("early game should never trigger resignation")
	}
	if !ShouldResign(b, PlayerBlack, 80) {
		t.Fatalf("hopeless late position should trigger resignation")
	}
	if ShouldResign(b, PlayerWhite, 80) {
		t.Fatalf("the winning side resigned")
	}

	sparse := NewBoard(9)
	sparse.Set(0, 0, CellWhite)
	if ShouldResign(sparse, PlayerBlack, 80) {
		t.Fatalf("mostly empty board should not trigger resignation")
	}
}
