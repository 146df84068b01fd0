package engine

import "testing"

func TestGroupAtCountsDistinctLiberties(t *testing.T) {
	b := NewBoard(9)
	// An L of three black stones; shared empty neighbors must be counted
	// once.
	b.Set(2, 2, CellBlack)
	b.Set(2, 3, CellBlack)
	b.Set(3, 3, CellBlack)

	group, ok := GroupAt(b, 2, 2)
	if !ok {
		t.Fatalf("expected a group at (2,2)")
	}
	if len(group.Stones) != 3 {
		t.Fatalf("expected 3 stones, got %d", len(group.Stones))
	}
	if group.Liberties != 7 {
		t.Fatalf("expected 7 liberties, got %d", group.Liberties)
	}
}

func TestGroupAtCornerAndEdge(t *testing.T) {
	b := NewBoard(4)
	b.Set(0, 0, CellWhite)
	group, ok := GroupAt(b, 0, 0)
	if !ok || group.Liberties != 2 {
		t.Fatalf("corner stone should have 2 liberties, got %d (ok=%v)", group.Liberties, ok)
	}

	b.Set(1, 0, CellBlack)
	group, _ = GroupAt(b, 0, 0)
	if group.Liberties != 1 {
		t.Fatalf("blocked corner stone should have 1 liberty, got %d", group.Liberties)
	}
}

func TestGroupAtEmptyCellReturnsFalse(t *testing.T) {
	b := NewBoard(5)
	if _, ok := GroupAt(b, 2, 2); ok {
		t.Fatalf("empty cell must not yield a group")
	}
	if _, ok := GroupAt(b, 9, 9); ok {
		t.Fatalf("out-of-bounds cell must not yield a group")
	}
}

func TestAllGroupsPartitionsEveryStone(t *testing.T) {
	b := NewBoard(6)
	b.Set(0, 0, CellBlack)
	b.Set(1, 0, CellBlack)
	b.Set(3, 0, CellBlack)
	b.Set(0, 2, CellWhite)
	b.Set(5, 5, CellWhite)
	b.Set(4, 5, CellWhite)
	b.Set(4, 4, CellWhite)

	groups := AllGroups(b)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	seen := map[Point]int{}
	total := 0
	for _, g := range groups {
		for _, s := range g.Stones {
			seen[s]++
			total++
		}
	}
	if total != b.CountStones() {
		t.Fatalf("groups cover %d stones, board has %d", total, b.CountStones())
	}
	for p, n := range seen {
		if n != 1 {
			t.Fatalf("stone %v assigned to %d groups", p, n)
		}
	}
}
