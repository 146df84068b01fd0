package engine

import "sync"

// BoardHash is used only to compare positions (the simple-ko check), so the
// hash covers stone placement alone, not the side to move.
func BoardHash(b Board) uint64 {
	z := getZobrist(b.Size())
	var hash uint64
	size := b.Size()
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := b.At(x, y)
			if cell == CellEmpty {
				continue
			}
			hash ^= z.stone(x, y, cell)
		}
	}
	return hash
}

type zobristTable struct {
	size  int
	cells []uint64
}

type zobristStore struct {
	mu     sync.Mutex
	tables map[int]*zobristTable
}

var zobristTables = &zobristStore{tables: make(map[int]*zobristTable)}

func getZobrist(size int) *zobristTable {
	zobristTables.mu.Lock()
	defer zobristTables.mu.Unlock()
	if table, ok := zobristTables.tables[size]; ok {
		return table
	}
	rng := splitmix64{state: uint64(0x9e3779b97f4a7c15) ^ uint64(size)}
	table := &zobristTable{size: size, cells: make([]uint64, size*size*2)}
	for i := range table.cells {
		table.cells[i] = rng.next()
	}
	zobristTables.tables[size] = table
	return table
}

func (z *zobristTable) stone(x, y int, cell Cell) uint64 {
	idx := (y*z.size + x) * 2
	if cell == CellWhite {
		idx++
	}
	return z.cells[idx]
}

type splitmix64 struct {
	state uint64
}

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
