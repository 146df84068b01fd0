package game

import (
	"fmt"

	"goban/internal/engine"
	"goban/internal/errors"
)

// Move is one half-move in record form. Color is the SGF property letter,
// Coordinates the two-letter SGF point; PropPass marks a pass, PropResign a
// resignation.
type Move struct {
	Color       string `json:"color" bson:"color"`
	Coordinates string `json:"coordinates" bson:"coordinates"`
}

const (
	ColorBlack = "B"
	ColorWhite = "W"

	PropPass   = ""
	PropResign = "resign"
)

func ColorOf(p engine.Player) string {
	if p == engine.PlayerBlack {
		return ColorBlack
	}
	return ColorWhite
}

func PlayerOf(color string) (engine.Player, error) {
	switch color {
	case ColorBlack:
		return engine.PlayerBlack, nil
	case ColorWhite:
		return engine.PlayerWhite, nil
	}
	return 0, errors.ErrInvalidRecord
}

func (m Move) IsPass() bool {
	return m.Coordinates == PropPass
}

func (m Move) IsResign() bool {
	return m.Coordinates == PropResign
}

// CoordsFromPoint renders a point in SGF letters: "aa" is the top-left corner.
func CoordsFromPoint(p engine.Point) string {
	return string([]byte{byte('a' + p.X), byte('a' + p.Y)})
}

// PointFromCoords parses SGF letters back into a point, bounds-checked
// against the board size.
func PointFromCoords(coords string, size int) (engine.Point, error) {
	if len(coords) != 2 {
		return engine.Point{}, errors.ErrInvalidCoordinate
	}
	x := int(coords[0] - 'a')
	y := int(coords[1] - 'a')
	if x < 0 || y < 0 || x >= size || y >= size {
		return engine.Point{}, errors.ErrInvalidCoordinate
	}
	return engine.Point{X: x, Y: y}, nil
}

// vertexColumns are the GTP column letters; "I" is skipped by convention.
const vertexColumns = "ABCDEFGHJKLMNOPQRST"

// Vertex renders a point as a GTP vertex ("D4"): columns skip I, rows count
// from the bottom edge.
func Vertex(p engine.Point, size int) string {
	return fmt.Sprintf("%c%d", vertexColumns[p.X], size-p.Y)
}

// PointFromVertex parses a GTP vertex back into board coordinates.
func PointFromVertex(v string, size int) (engine.Point, error) {
	if len(v) < 2 {
		return engine.Point{}, errors.ErrInvalidCoordinate
	}
	x := -1
	for i := 0; i < len(vertexColumns); i++ {
		if vertexColumns[i] == v[0] {
			x = i
			break
		}
	}
	if x < 0 || x >= size {
		return engine.Point{}, errors.ErrInvalidCoordinate
	}
	row := 0
	for _, c := range v[1:] {
		if c < '0' || c > '9' {
			return engine.Point{}, errors.ErrInvalidCoordinate
		}
		row = row*10 + int(c-'0')
	}
	if row < 1 || row > size {
		return engine.Point{}, errors.ErrInvalidCoordinate
	}
	return engine.Point{X: x, Y: size - row}, nil
}
