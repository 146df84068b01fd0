package engine

import "testing"

func TestBoardHashMatchesEqualPositions(t *testing.T) {
	a := NewBoard(9)
	b := NewBoard(9)
	a.Set(3, 3, CellBlack)
	a.Set(5, 5, CellWhite)
	b.Set(5, 5, CellWhite)
	b.Set(3, 3, CellBlack)

	if BoardHash(a) != BoardHash(b) {
		t.Fatalf("identical positions hash differently")
	}
}

func TestBoardHashDistinguishesColorAndPosition(t *testing.T) {
	base := NewBoard(9)
	base.Set(3, 3, CellBlack)

	moved := NewBoard(9)
	moved.Set(3, 4, CellBlack)

	recolored := NewBoard(9)
	recolored.Set(3, 3, CellWhite)

	if BoardHash(base) == BoardHash(moved) {
		t.Fatalf("different positions share a hash")
	}
	if BoardHash(base) == BoardHash(recolored) {
		t.Fatalf("different colors share a hash")
	}
	if BoardHash(NewBoard(9)) != 0 {
		t.Fatalf("empty board should hash to zero")
	}
}

func TestBoardHashStableAcrossTableReuse(t *testing.T) {
	a := NewBoard(13)
	a.Set(6, 6, CellBlack)
	first := BoardHash(a)
	second := BoardHash(a)
	if first != second {
		t.Fatalf("hash not deterministic: %d vs %d", first, second)
	}
}
