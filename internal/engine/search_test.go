package engine

import (
	"math/rand"
	"testing"
)

func TestAIMoveGomokuTakesImmediateWin(t *testing.T) {
	b := NewBoard(11)
	placeRun(&b, Point{X: 3, Y: 5}, 1, 0, 4, CellBlack)
	b.Set(3, 7, CellWhite)
	b.Set(4, 7, CellWhite)
	b.Set(5, 7, CellWhite)

	decision := AIMove(b, PlayerBlack, GameTypeGomoku, DifficultyHard, 0, 7, nil)
	if decision.Kind != DecisionPlay {
		t.Fatalf("expected a played move, got kind %d", decision.Kind)
	}
	probe := b.Clone()
	probe.Set(decision.Point.X, decision.Point.Y, CellBlack)
	if !IsGomokuWin(probe, decision.Point) {
		t.Fatalf("an immediate win exists but engine played %v", decision.Point)
	}
}

func TestAIMoveGomokuWinOutranksDoubleThreatBlock(t *testing.T) {
	// Black can win on the spot; white has two four-runs sharing the
	// extension point (7,5), which scores at the five tier as a block but
	// wins nothing. The engine must take its own five.
	b := NewBoard(15)
	placeRun(&b, Point{X: 1, Y: 1}, 1, 0, 4, CellBlack)
	placeRun(&b, Point{X: 3, Y: 5}, 1, 0, 4, CellWhite)
	placeRun(&b, Point{X: 7, Y: 6}, 0, 1, 4, CellWhite)

	decision := AIMove(b, PlayerBlack, GameTypeGomoku, DifficultyHard, 0, 12, nil)
	if decision.Kind != DecisionPlay {
		t.Fatalf("expected a played move, got kind %d", decision.Kind)
	}
	probe := b.Clone()
	probe.Set(decision.Point.X, decision.Point.Y, CellBlack)
	if !IsGomokuWin(probe, decision.Point) {
		t.Fatalf("immediate win at (0,1)/(5,1) exists but engine played %v", decision.Point)
	}
}

func TestAIMoveGomokuBlocksForcedFive(t *testing.T) {
	b := NewBoard(11)
	// White has four in a row closed on the left; the only losing square
	// to leave open is (7,5).
	b.Set(2, 5, CellBlack)
	placeRun(&b, Point{X: 3, Y: 5}, 1, 0, 4, CellWhite)
	b.Set(3, 2, CellBlack)

	decision := AIMove(b, PlayerBlack, GameTypeGomoku, DifficultyHard, 0, 6, nil)
	if decision.Kind != DecisionPlay {
		t.Fatalf("expected a played move, got kind %d", decision.Kind)
	}
	if decision.Point != (Point{X: 7, Y: 5}) {
		t.Fatalf("expected block at (7,5), got %v", decision.Point)
	}
}

func TestAIMoveGomokuOpeningIsCenter(t *testing.T) {
	b := NewBoard(9)
	decision := AIMove(b, PlayerBlack, GameTypeGomoku, DifficultyEasy, 0, 0, nil)
	if decision.Kind != DecisionPlay || decision.Point != (Point{X: 4, Y: 4}) {
		t.Fatalf("expected center opening, got %+v", decision)
	}
}

func TestAIMoveGoReturnsLegalMove(t *testing.T) {
	b := NewBoard(9)
	b.Set(4, 4, CellBlack)
	b.Set(3, 4, CellWhite)

	rng := rand.New(rand.NewSource(1))
	for _, level := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		decision := AIMove(b, PlayerWhite, GameTypeGo, level, 0, 2, rng)
		if decision.Kind != DecisionPlay {
			t.Fatalf("level %v: expected a move on a near-empty board, got kind %d", level, decision.Kind)
		}
		if !IsLegal(b, decision.Point.X, decision.Point.Y, PlayerWhite, GameTypeGo, 0) {
			t.Fatalf("level %v returned illegal move %v", level, decision.Point)
		}
	}
}

func TestAIMoveGoPassesWhenNothingPlayable(t *testing.T) {
	// Black owns the whole 4x4 board except two separate eyes; filling
	// either one captures nothing and leaves the white stone without a
	// liberty, so white can only pass.
	b := NewBoard(4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			b.Set(x, y, CellBlack)
		}
	}
	b.Remove(1, 1)
	b.Remove(2, 2)

	decision := AIMove(b, PlayerWhite, GameTypeGo, DifficultyMedium, 0, 2, nil)
	if decision.Kind != DecisionPass {
		t.Fatalf("expected a pass, got %+v", decision)
	}
}

func TestAIMoveGoResignsLopsidedLateGame(t *testing.T) {
	b := NewBoard(9)
	for y := 0; y < 9; y++ {
		for x := 0; x < 7; x++ {
			b.Set(x, y, CellWhite)
		}
	}
	b.Remove(1, 1)
	b.Remove(5, 5)
	b.Set(8, 0, CellBlack)

	decision := AIMove(b, PlayerBlack, GameTypeGo, DifficultyHard, 0, 80, nil)
	if decision.Kind != DecisionResign {
		t.Fatalf("expected resignation, got %+v", decision)
	}
}

func TestDifficultyConfigsTightenWithStrength(t *testing.T) {
	easy := DifficultyEasy.Config()
	hard := DifficultyHard.Config()
	if easy.Jitter <= hard.Jitter {
		t.Fatalf("easy jitter (%v) should exceed hard jitter (%v)", easy.Jitter, hard.Jitter)
	}
	if easy.UseJoseki || !hard.UseJoseki {
		t.Fatalf("joseki lookup should be reserved for stronger tiers")
	}
	if hard.Depth != 4 || hard.BeamWidth != 8 {
		t.Fatalf("hard tier search bounds changed: depth %d beam %d", hard.Depth, hard.BeamWidth)
	}
	if !DifficultyExpert.Config().UseSuggester {
		t.Fatalf("expert tier must defer to the external suggester")
	}
}
