package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/engine"
	"goban/internal/errors"
	"goban/internal/statuses"
)

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string)
	CreateGame(ctx context.Context, gameData game.Game) error
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	UpdateGame(ctx context.Context, gameData game.Game) error
	ArchiveGame(ctx context.Context, gameData game.Game, sgfText string) error
	SaveSGF(ctx context.Context, key string, sgfText string) error
	LoadSGF(ctx context.Context, key string) (string, error)
}

// MoveSuggester is the external neural collaborator used by the top tier.
// Moves are GTP vertices in play order, "pass" included.
type MoveSuggester interface {
	SuggestMove(ctx context.Context, boardSize int, moves []string, komi float64) (string, error)
}

type GameUseCase struct {
	store     GameStore
	worker    *engine.Worker
	suggester MoveSuggester
	log       *zap.SugaredLogger
}

func NewGameUseCase(store GameStore, worker *engine.Worker, suggester MoveSuggester, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, worker: worker, suggester: suggester, log: log}
}

func (u *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest) (game.Game, error) {
	if req.BoardSize < engine.MinBoardSize || req.BoardSize > engine.MaxBoardSize {
		return game.Game{}, fmt.Errorf("%w: board size %d", errors.ErrCreateGameFailed, req.BoardSize)
	}
	if req.GameType != "go" && req.GameType != "gomoku" {
		return game.Game{}, fmt.Errorf("%w: unknown game type %q", errors.ErrCreateGameFailed, req.GameType)
	}
	if req.HumanColor == "" {
		req.HumanColor = "black"
	}
	if req.HumanColor != "black" && req.HumanColor != "white" {
		return game.Game{}, fmt.Errorf("%w: unknown color %q", errors.ErrCreateGameFailed, req.HumanColor)
	}
	if req.Komi == 0 {
		req.Komi = engine.DefaultKomi
	}

	gameKeySecret, gameKeyPublic := u.store.GenerateGameKeys(ctx)
	newGame := game.Game{
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		GameType:      req.GameType,
		Difficulty:    req.Difficulty,
		BoardSize:     req.BoardSize,
		Komi:          req.Komi,
		HumanColor:    req.HumanColor,
		Status:        statuses.StatusInProgress,
		CreatedAt:     time.Now(),
	}
	if _, err := newGame.EngineDifficulty(); err != nil {
		return game.Game{}, fmt.Errorf("%w: unknown difficulty %q", errors.ErrCreateGameFailed, req.Difficulty)
	}

	record := PrepareSgf(newGame)
	sgfText := SerializeSGF(&record)

	if err := u.store.CreateGame(ctx, newGame); err != nil {
		return game.Game{}, err
	}
	if err := u.store.SaveSGF(ctx, gameKeySecret, sgfText); err != nil {
		return game.Game{}, err
	}

	// The engine opens when the human took white.
	if newGame.EnginePlayer() == engine.PlayerBlack {
		state, rerr := Replay(sgfText)
		if rerr != nil {
			return game.Game{}, rerr
		}
		var resp game.GameStateResponse
		opened, _, rerr := u.engineReply(ctx, &newGame, &state, sgfText, &resp)
		if rerr != nil {
			return game.Game{}, rerr
		}
		sgfText = opened
		if _, rerr = u.persist(ctx, &newGame, sgfText, &resp, nil); rerr != nil {
			return game.Game{}, rerr
		}
	}

	newGame.Sgf = sgfText
	return newGame, nil
}

func (u *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	found, err := u.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}
	if found.Status != statuses.StatusFinished {
		if sgfText, sgfErr := u.store.LoadSGF(ctx, found.GameKeySecret); sgfErr == nil {
			found.Sgf = sgfText
		}
	}
	return found, nil
}

// ScoreGame scores the current position under area rules.
func (u *GameUseCase) ScoreGame(ctx context.Context, gameKeyPublic string) (game.ScoreReport, error) {
	found, err := u.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.ScoreReport{}, err
	}
	state, err := Replay(found.Sgf)
	if err != nil {
		return game.ScoreReport{}, err
	}
	return scoreReport(engine.Score(state.Board, state.Komi)), nil
}

// SuggestMove returns a hint for the side to move without touching the game.
func (u *GameUseCase) SuggestMove(ctx context.Context, gameKeyPublic string) (game.Move, error) {
	found, err := u.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Move{}, err
	}
	if found.Status == statuses.StatusFinished {
		return game.Move{}, errors.ErrGameFinished
	}
	state, err := Replay(found.Sgf)
	if err != nil {
		return game.Move{}, err
	}
	decision, err := u.decide(ctx, &found, &state, state.NextPlayer)
	if err != nil {
		return game.Move{}, err
	}
	move := game.Move{Color: game.ColorOf(state.NextPlayer)}
	switch decision.Kind {
	case engine.DecisionPlay:
		move.Coordinates = game.CoordsFromPoint(decision.Point)
	case engine.DecisionResign:
		move.Coordinates = game.PropResign
	}
	return move, nil
}

// ApplyHumanMove validates and applies one human half-move, answers with the
// engine's reply, and persists the updated record. It drives the whole pass /
// resign / scoring flow.
func (u *GameUseCase) ApplyHumanMove(ctx context.Context, gameKeyPublic string, req game.MoveRequest) (game.GameStateResponse, error) {
	g, err := u.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if g.Status == statuses.StatusFinished {
		return game.GameStateResponse{}, errors.ErrGameFinished
	}

	sgfText, err := u.store.LoadSGF(ctx, g.GameKeySecret)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	state, err := Replay(sgfText)
	if err != nil {
		return game.GameStateResponse{}, err
	}

	human := g.HumanPlayer()
	if state.NextPlayer != human {
		return game.GameStateResponse{}, errors.ErrNotYourTurn
	}

	gameType, err := g.EngineGameType()
	if err != nil {
		return game.GameStateResponse{}, err
	}

	var resp game.GameStateResponse

	if req.Resign {
		humanMove := game.Move{Color: game.ColorOf(human), Coordinates: game.PropResign}
		resp.HumanMove = &humanMove
		u.finish(&g, game.ColorOf(g.EnginePlayer())+"+R")
		return u.persist(ctx, &g, sgfText, &resp, nil)
	}

	humanMove := game.Move{Color: game.ColorOf(human), Coordinates: req.Coordinates}
	if req.Pass {
		humanMove.Coordinates = game.PropPass
		state.Passes++
		state.KoHash = 0
	} else {
		point, perr := game.PointFromCoords(req.Coordinates, g.BoardSize)
		if perr != nil {
			return game.GameStateResponse{}, perr
		}
		res, aerr := engine.ApplyMove(state.Board, point.X, point.Y, human, gameType, state.KoHash)
		if aerr != nil {
			return game.GameStateResponse{}, aerr
		}
		state.KoHash = engine.BoardHash(state.Board)
		state.Board = res.Board
		state.Passes = 0
		resp.Captured = res.Captured

		if gameType == engine.GameTypeGomoku && engine.IsGomokuWin(state.Board, point) {
			u.finish(&g, game.ColorOf(human)+"+5")
		}
	}
	state.MoveCount++
	state.NextPlayer = state.NextPlayer.Opponent()
	sgfText = AppendMoveToSgf(sgfText, humanMove)
	g.Moves = append(g.Moves, humanMove)
	g.PassCount = state.Passes
	resp.HumanMove = &humanMove

	var score *game.ScoreReport
	if state.Passes >= 2 {
		score = u.scoreAndFinish(&g, state)
	}

	if g.Status != statuses.StatusFinished {
		sgfText, score, err = u.engineReply(ctx, &g, &state, sgfText, &resp)
		if err != nil {
			return game.GameStateResponse{}, err
		}
	}

	return u.persist(ctx, &g, sgfText, &resp, score)
}

// engineReply computes and applies the engine's answer to the position in
// state. It may end the game by win, pass-out or resignation.
func (u *GameUseCase) engineReply(ctx context.Context, g *game.Game, state *ReplayState, sgfText string, resp *game.GameStateResponse) (string, *game.ScoreReport, error) {
	enginePlayer := g.EnginePlayer()
	decision, err := u.decide(ctx, g, state, enginePlayer)
	if err != nil {
		return "", nil, err
	}

	engineMove := game.Move{Color: game.ColorOf(enginePlayer)}
	var score *game.ScoreReport

	switch decision.Kind {
	case engine.DecisionResign:
		engineMove.Coordinates = game.PropResign
		resp.EngineMove = &engineMove
		u.finish(g, game.ColorOf(g.HumanPlayer())+"+R")
		return sgfText, nil, nil

	case engine.DecisionPass:
		engineMove.Coordinates = game.PropPass
		state.Passes++
		state.KoHash = 0

	case engine.DecisionPlay:
		point := decision.Point
		res, aerr := engine.ApplyMove(state.Board, point.X, point.Y, enginePlayer, state.GameType, state.KoHash)
		if aerr != nil {
			// The search re-checks legality, so this is a bug; pass rather
			// than corrupt the record.
			u.log.Errorw("engine produced illegal move", "game", g.GameKeyPublic, "point", point, "error", aerr)
			engineMove.Coordinates = game.PropPass
			state.Passes++
			break
		}
		state.KoHash = engine.BoardHash(state.Board)
		state.Board = res.Board
		state.Passes = 0
		engineMove.Coordinates = game.CoordsFromPoint(point)

		if state.GameType == engine.GameTypeGomoku && engine.IsGomokuWin(state.Board, point) {
			u.finish(g, game.ColorOf(enginePlayer)+"+5")
		}
	}

	if engineMove.IsPass() && state.Passes >= 2 {
		score = u.scoreAndFinish(g, *state)
	}

	state.MoveCount++
	state.NextPlayer = state.NextPlayer.Opponent()
	sgfText = AppendMoveToSgf(sgfText, engineMove)
	g.Moves = append(g.Moves, engineMove)
	g.PassCount = state.Passes
	resp.EngineMove = &engineMove
	return sgfText, score, nil
}

// decide asks the suggester on the top tier and falls back to the in-process
// search on any failure.
func (u *GameUseCase) decide(ctx context.Context, g *game.Game, state *ReplayState, player engine.Player) (engine.Decision, error) {
	level, err := g.EngineDifficulty()
	if err != nil {
		return engine.Decision{}, err
	}

	if level.Config().UseSuggester && state.GameType == engine.GameTypeGo && u.suggester != nil {
		if decision, ok := u.askSuggester(ctx, g, state, player); ok {
			return decision, nil
		}
	}

	return u.worker.Submit(ctx, engine.Request{
		Board:     state.Board,
		Player:    player,
		GameType:  state.GameType,
		Level:     level,
		PrevHash:  state.KoHash,
		MoveCount: state.MoveCount,
	})
}

func (u *GameUseCase) askSuggester(ctx context.Context, g *game.Game, state *ReplayState, player engine.Player) (engine.Decision, bool) {
	vertices := make([]string, 0, len(g.Moves))
	for _, m := range g.Moves {
		if m.IsResign() {
			continue
		}
		if m.IsPass() {
			vertices = append(vertices, "pass")
			continue
		}
		point, err := game.PointFromCoords(m.Coordinates, g.BoardSize)
		if err != nil {
			return engine.Decision{}, false
		}
		vertices = append(vertices, game.Vertex(point, g.BoardSize))
	}

	suggested, err := u.suggester.SuggestMove(ctx, g.BoardSize, vertices, g.Komi)
	if err != nil {
		u.log.Warnw("suggester unavailable, falling back to heuristics",
			"game", g.GameKeyPublic, "error", err)
		return engine.Decision{}, false
	}
	if suggested == "pass" {
		return engine.Decision{Kind: engine.DecisionPass}, true
	}
	point, err := game.PointFromVertex(suggested, g.BoardSize)
	if err != nil {
		u.log.Warnw("suggester returned unparseable move", "move", suggested)
		return engine.Decision{}, false
	}
	if !engine.IsLegal(state.Board, point.X, point.Y, player, state.GameType, state.KoHash) {
		u.log.Warnw("suggester returned illegal move", "move", suggested)
		return engine.Decision{}, false
	}
	return engine.Decision{Kind: engine.DecisionPlay, Point: point}, true
}

func (u *GameUseCase) finish(g *game.Game, result string) {
	now := time.Now()
	g.Status = statuses.StatusFinished
	g.Result = result
	g.FinishedAt = &now
}

func (u *GameUseCase) scoreAndFinish(g *game.Game, state ReplayState) *game.ScoreReport {
	result := engine.Score(state.Board, state.Komi)
	report := scoreReport(result)
	u.finish(g, resultString(result))
	return &report
}

// persist writes the record and the game document, archiving on completion,
// and fills the response envelope.
func (u *GameUseCase) persist(ctx context.Context, g *game.Game, sgfText string, resp *game.GameStateResponse, score *game.ScoreReport) (game.GameStateResponse, error) {
	if g.Status == statuses.StatusFinished {
		if err := u.store.ArchiveGame(ctx, *g, sgfText); err != nil {
			return game.GameStateResponse{}, err
		}
	} else {
		if err := u.store.SaveSGF(ctx, g.GameKeySecret, sgfText); err != nil {
			return game.GameStateResponse{}, err
		}
		if err := u.store.UpdateGame(ctx, *g); err != nil {
			return game.GameStateResponse{}, err
		}
	}
	resp.Status = g.Status
	resp.Result = g.Result
	resp.Sgf = sgfText
	resp.Score = score
	return *resp, nil
}

func scoreReport(result engine.ScoreResult) game.ScoreReport {
	return game.ScoreReport{
		Black:          result.Black,
		White:          result.White,
		BlackTerritory: result.BlackTerritory,
		WhiteTerritory: result.WhiteTerritory,
		Dame:           result.Dame,
	}
}

func resultString(result engine.ScoreResult) string {
	diff := result.Black - result.White
	switch {
	case diff > 0:
		return fmt.Sprintf("B+%.1f", diff)
	case diff < 0:
		return fmt.Sprintf("W+%.1f", -diff)
	default:
		return "Draw"
	}
}
