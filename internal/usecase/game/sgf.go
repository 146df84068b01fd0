package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"goban/internal/domain/game"
	sgf "goban/internal/domain/sgf"
	"goban/internal/engine"
	"goban/internal/errors"
)

// SGF game-type numbers: 1 is go, 4 is gomoku.
const (
	sgfGameGo     = "1"
	sgfGameGomoku = "4"
)

// PrepareSgf builds the root node of a fresh record from the game header.
func PrepareSgf(gameData game.Game) sgf.SGF {
	gm := sgfGameGo
	if gameData.GameType == "gomoku" {
		gm = sgfGameGomoku
	}
	return sgf.SGF{
		Root: &sgf.GameTree{
			Nodes: []sgf.Node{
				{
					Properties: map[string][]string{
						"FF": {"4"},
						"GM": {gm},
						"SZ": {strconv.Itoa(gameData.BoardSize)},
						"KM": {strconv.FormatFloat(gameData.Komi, 'f', 1, 64)},
						"DT": {gameData.CreatedAt.Format(time.DateOnly)},
						"RU": {"Chinese"},
						"RE": {""},
					},
				},
			},
		},
	}
}

func SerializeSGF(s *sgf.SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	serializeGameTree(&builder, s.Root)
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *sgf.GameTree) {
	// Header properties first, in a fixed order, then whatever else a node
	// carries.
	orderedKeys := []string{"FF", "GM", "SZ", "KM", "DT", "RU", "RE", "B", "W"}
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}
		for key, values := range node.Properties {
			if !used[key] {
				for _, v := range values {
					builder.WriteString(fmt.Sprintf("%s[%s]", key, v))
				}
			}
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

// AppendMoveToSgf tacks one move node onto a serialized record without
// reparsing it.
func AppendMoveToSgf(sgfText string, move game.Move) string {
	if strings.HasSuffix(sgfText, ")") {
		sgfText = sgfText[:len(sgfText)-1]
	}
	return sgfText + fmt.Sprintf(";%s[%s])", move.Color, move.Coordinates)
}

// ParseSGF reads a record back into the tree form. Malformed input returns
// ErrInvalidRecord.
func ParseSGF(text string) (*sgf.SGF, error) {
	p := &sgfParser{input: text}
	p.skipSpace()
	if !p.consume('(') {
		return nil, errors.ErrInvalidRecord
	}
	root, err := p.parseTree()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, errors.ErrInvalidRecord
	}
	return &sgf.SGF{Root: root}, nil
}

type sgfParser struct {
	input string
	pos   int
}

func (p *sgfParser) parseTree() (*sgf.GameTree, error) {
	tree := &sgf.GameTree{}
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, errors.ErrInvalidRecord
		}
		switch p.input[p.pos] {
		case ';':
			p.pos++
			node, err := p.parseNode()
			if err != nil {
				return nil, err
			}
			tree.Nodes = append(tree.Nodes, node)
		case '(':
			p.pos++
			child, err := p.parseTree()
			if err != nil {
				return nil, err
			}
			tree.Children = append(tree.Children, child)
		case ')':
			p.pos++
			if len(tree.Nodes) == 0 {
				return nil, errors.ErrInvalidRecord
			}
			return tree, nil
		default:
			return nil, errors.ErrInvalidRecord
		}
	}
}

func (p *sgfParser) parseNode() (sgf.Node, error) {
	node := sgf.Node{Properties: map[string][]string{}}
	for {
		p.skipSpace()
		ident := p.readIdent()
		if ident == "" {
			return node, nil
		}
		p.skipSpace()
		if p.pos >= len(p.input) || p.input[p.pos] != '[' {
			return sgf.Node{}, errors.ErrInvalidRecord
		}
		for p.pos < len(p.input) && p.input[p.pos] == '[' {
			value, err := p.readValue()
			if err != nil {
				return sgf.Node{}, err
			}
			node.Properties[ident] = append(node.Properties[ident], value)
			p.skipSpace()
		}
	}
}

func (p *sgfParser) readIdent() string {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= 'A' && p.input[p.pos] <= 'Z' {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *sgfParser) readValue() (string, error) {
	p.pos++ // consume '['
	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.input) {
				return "", errors.ErrInvalidRecord
			}
			sb.WriteByte(p.input[p.pos+1])
			p.pos += 2
		case ']':
			p.pos++
			return sb.String(), nil
		default:
			sb.WriteByte(c)
			p.pos++
		}
	}
	return "", errors.ErrInvalidRecord
}

func (p *sgfParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *sgfParser) consume(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

// ReplayState is a live position reconstructed from a record.
type ReplayState struct {
	Board      engine.Board
	GameType   engine.GameType
	Komi       float64
	NextPlayer engine.Player
	// KoHash is the position hash the next move may not recreate; zero
	// disables the check (fresh game, or the last move was a pass).
	KoHash    uint64
	MoveCount int
	Passes    int
	LastMove  *engine.Point
}

// Replay runs a record through the move executor and returns the resulting
// position. A record whose moves do not form a legal game fails with
// ErrInvalidRecord and produces nothing.
func Replay(sgfText string) (ReplayState, error) {
	parsed, err := ParseSGF(sgfText)
	if err != nil {
		return ReplayState{}, err
	}
	if len(parsed.Root.Nodes) == 0 {
		return ReplayState{}, errors.ErrInvalidRecord
	}
	header := parsed.Root.Nodes[0].Properties

	size, err := strconv.Atoi(firstProp(header, "SZ"))
	if err != nil || size < engine.MinBoardSize || size > engine.MaxBoardSize {
		return ReplayState{}, errors.ErrInvalidRecord
	}
	gameType := engine.GameTypeGo
	if firstProp(header, "GM") == sgfGameGomoku {
		gameType = engine.GameTypeGomoku
	}
	komi := engine.DefaultKomi
	if km := firstProp(header, "KM"); km != "" {
		if parsedKomi, kmErr := strconv.ParseFloat(km, 64); kmErr == nil {
			komi = parsedKomi
		}
	}

	state := ReplayState{
		Board:      engine.NewBoard(size),
		GameType:   gameType,
		Komi:       komi,
		NextPlayer: engine.PlayerBlack,
	}

	var hashBeforeLast uint64
	for i, node := range parsed.Root.Nodes {
		color, coords, ok := moveProp(node)
		if !ok {
			if i == 0 {
				continue // header node
			}
			return ReplayState{}, errors.ErrInvalidRecord
		}
		player, err := game.PlayerOf(color)
		if err != nil {
			return ReplayState{}, err
		}
		if player != state.NextPlayer {
			return ReplayState{}, errors.ErrInvalidRecord
		}

		if coords == game.PropPass {
			state.Passes++
			hashBeforeLast = 0
			state.LastMove = nil
		} else {
			point, err := game.PointFromCoords(coords, size)
			if err != nil {
				return ReplayState{}, errors.ErrInvalidRecord
			}
			res, err := engine.ApplyMove(state.Board, point.X, point.Y, player, gameType, hashBeforeLast)
			if err != nil {
				return ReplayState{}, errors.ErrInvalidRecord
			}
			hashBeforeLast = engine.BoardHash(state.Board)
			state.Board = res.Board
			state.Passes = 0
			last := point
			state.LastMove = &last
		}
		state.MoveCount++
		state.NextPlayer = state.NextPlayer.Opponent()
	}

	state.KoHash = hashBeforeLast
	return state, nil
}

func firstProp(props map[string][]string, key string) string {
	if values, ok := props[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func moveProp(node sgf.Node) (color, coords string, ok bool) {
	if values, found := node.Properties["B"]; found && len(values) > 0 {
		return game.ColorBlack, values[0], true
	}
	if values, found := node.Properties["W"]; found && len(values) > 0 {
		return game.ColorWhite, values[0], true
	}
	// A bare B[] or W[] pass serializes as an empty value list entry; the
	// parser stores it as [""], handled above. Anything else is not a move.
	return "", "", false
}
