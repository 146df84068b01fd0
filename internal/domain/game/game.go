package game

import (
	"time"

	"goban/internal/engine"
	"goban/internal/errors"
)

// Game is one human-vs-engine session. The secret key addresses the live
// record in redis; the short public key is what the client holds.
type Game struct {
	GameKeySecret string     `json:"-" bson:"game_key_secret"`
	GameKeyPublic string     `json:"game_key" bson:"game_key_public"`
	GameType      string     `json:"game_type" bson:"game_type"`
	Difficulty    string     `json:"difficulty" bson:"difficulty"`
	BoardSize     int        `json:"board_size" bson:"board_size"`
	Komi          float64    `json:"komi" bson:"komi"`
	HumanColor    string     `json:"human_color" bson:"human_color"`
	Status        string     `json:"status" bson:"status"`
	Result        string     `json:"result,omitempty" bson:"result,omitempty"`
	Moves         []Move     `json:"moves" bson:"moves"`
	PassCount     int        `json:"pass_count" bson:"pass_count"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	Sgf           string     `json:"sgf,omitempty" bson:"sgf,omitempty"`
}

type CreateGameRequest struct {
	BoardSize  int     `json:"board_size"`
	GameType   string  `json:"game_type"`
	Difficulty string  `json:"difficulty"`
	Komi       float64 `json:"komi"`
	HumanColor string  `json:"human_color"`
}

type MoveRequest struct {
	GameKey     string `json:"game_key"`
	Coordinates string `json:"coordinates"`
	Pass        bool   `json:"pass,omitempty"`
	Resign      bool   `json:"resign,omitempty"`
}

// GameStateResponse is sent after every accepted move, over HTTP and over the
// play socket alike.
type GameStateResponse struct {
	HumanMove  *Move        `json:"human_move,omitempty"`
	EngineMove *Move        `json:"engine_move,omitempty"`
	Captured   int          `json:"captured"`
	Status     string       `json:"status"`
	Result     string       `json:"result,omitempty"`
	Sgf        string       `json:"sgf"`
	Score      *ScoreReport `json:"score,omitempty"`
}

type ScoreReport struct {
	Black          float64 `json:"black"`
	White          float64 `json:"white"`
	BlackTerritory int     `json:"black_territory"`
	WhiteTerritory int     `json:"white_territory"`
	Dame           int     `json:"dame"`
}

func (g Game) EngineGameType() (engine.GameType, error) {
	switch g.GameType {
	case "go":
		return engine.GameTypeGo, nil
	case "gomoku":
		return engine.GameTypeGomoku, nil
	}
	return 0, errors.ErrInvalidRecord
}

func (g Game) EngineDifficulty() (engine.Difficulty, error) {
	switch g.Difficulty {
	case "easy":
		return engine.DifficultyEasy, nil
	case "medium":
		return engine.DifficultyMedium, nil
	case "hard":
		return engine.DifficultyHard, nil
	case "expert":
		return engine.DifficultyExpert, nil
	}
	return 0, errors.ErrInvalidRecord
}

func (g Game) HumanPlayer() engine.Player {
	if g.HumanColor == "white" {
		return engine.PlayerWhite
	}
	return engine.PlayerBlack
}

func (g Game) EnginePlayer() engine.Player {
	return g.HumanPlayer().Opponent()
}
