package engine

import (
	"fmt"
	"strings"
)

// Board sizes the engine accepts. Anything else is a caller bug.
const (
	MinBoardSize = 4
	MaxBoardSize = 19
)

type Cell int8

const (
	CellEmpty Cell = iota
	CellBlack
	CellWhite
)

type Player int8

const (
	PlayerBlack Player = iota
	PlayerWhite
)

type GameType int8

const (
	GameTypeGo GameType = iota
	GameTypeGomoku
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Board is a flat cell array plus its edge length, so Clone is a single
// buffer copy. The engine never keeps a Board between calls; callers own it.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) Board {
	if size < MinBoardSize || size > MaxBoardSize {
		panic(fmt.Sprintf("engine: board size %d outside [%d, %d]", size, MinBoardSize, MaxBoardSize))
	}
	return Board{size: size, cells: make([]Cell, size*size)}
}

func (b Board) Size() int {
	return b.size
}

func (b Board) At(x, y int) Cell {
	return b.cells[b.index(x, y)]
}

func (b *Board) Set(x, y int, value Cell) {
	b.cells[b.index(x, y)] = value
}

func (b *Board) Remove(x, y int) {
	b.cells[b.index(x, y)] = CellEmpty
}

func (b Board) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.size && y < b.size
}

func (b Board) IsEmpty(x, y int) bool {
	return b.InBounds(x, y) && b.At(x, y) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) CountStones() int {
	return b.size*b.size - b.CountEmpty()
}

func (b Board) Clone() Board {
	clone := Board{size: b.size, cells: make([]Cell, len(b.cells))}
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) Equals(other Board) bool {
	if b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (b Board) index(x, y int) int {
	return y*b.size + x
}

func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			switch b.At(x, y) {
			case CellBlack:
				sb.WriteByte('X')
			case CellWhite:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		if y < b.size-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func CellFromPlayer(p Player) Cell {
	if p == PlayerBlack {
		return CellBlack
	}
	return CellWhite
}

func (p Player) Opponent() Player {
	if p == PlayerBlack {
		return PlayerWhite
	}
	return PlayerBlack
}

func (p Player) String() string {
	if p == PlayerBlack {
		return "black"
	}
	return "white"
}

func (c Cell) String() string {
	switch c {
	case CellBlack:
		return "black"
	case CellWhite:
		return "white"
	default:
		return "empty"
	}
}

// neighborOffsets lists the four orthogonal directions.
var neighborOffsets = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// diagonalOffsets lists the four diagonal directions.
var diagonalOffsets = [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
