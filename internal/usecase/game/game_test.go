package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"goban/internal/domain/game"
	"goban/internal/engine"
	ownErrors "goban/internal/errors"
	"goban/internal/statuses"
)

type fakeStore struct {
	counter  int
	games    map[string]game.Game
	sgf      map[string]string
	archived map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		games:    map[string]game.Game{},
		sgf:      map[string]string{},
		archived: map[string]string{},
	}
}

func (f *fakeStore) GenerateGameKeys(_ context.Context) (string, string) {
	f.counter++
	return fmt.Sprintf("secret-%d", f.counter), fmt.Sprintf("%05d", f.counter)
}

func (f *fakeStore) CreateGame(_ context.Context, g game.Game) error {
	f.games[g.GameKeyPublic] = g
	return nil
}

func (f *fakeStore) GetGameByPublicKey(_ context.Context, key string) (game.Game, error) {
	g, ok := f.games[key]
	if !ok {
		return game.Game{}, ownErrors.ErrGameNotFound
	}
	return g, nil
}

func (f *fakeStore) UpdateGame(_ context.Context, g game.Game) error {
	f.games[g.GameKeyPublic] = g
	return nil
}

func (f *fakeStore) ArchiveGame(_ context.Context, g game.Game, sgfText string) error {
	g.Sgf = sgfText
	f.games[g.GameKeyPublic] = g
	f.archived[g.GameKeySecret] = sgfText
	delete(f.sgf, g.GameKeySecret)
	return nil
}

func (f *fakeStore) SaveSGF(_ context.Context, key, sgfText string) error {
	f.sgf[key] = sgfText
	return nil
}

func (f *fakeStore) LoadSGF(_ context.Context, key string) (string, error) {
	text, ok := f.sgf[key]
	if !ok {
		return "", ownErrors.ErrGameNotFound
	}
	return text, nil
}

func newTestUseCase(t *testing.T) (*GameUseCase, *fakeStore) {
	t.Helper()
	worker := engine.NewWorker(zap.NewNop().Sugar(), 4)
	ctx, cancel := context.WithCancel(context.Background())
	worker.Start(ctx)
	t.Cleanup(func() {
		worker.Shutdown()
		cancel()
	})
	store := newFakeStore()
	return NewGameUseCase(store, worker, nil, zap.NewNop().Sugar()), store
}

func (f *fakeStore) seed(g game.Game, sgfText string) {
	f.games[g.GameKeyPublic] = g
	f.sgf[g.GameKeySecret] = sgfText
}

func seededGame(gameType string) game.Game {
	return game.Game{
		GameKeySecret: "secret-seeded",
		GameKeyPublic: "99999",
		GameType:      gameType,
		Difficulty:    "easy",
		BoardSize:     9,
		Komi:          7.5,
		HumanColor:    "black",
		Status:        statuses.StatusInProgress,
	}
}

func TestCreateGameValidatesRequest(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	cases := []game.CreateGameRequest{
		{BoardSize: 3, GameType: "go", Difficulty: "easy"},
		{BoardSize: 9, GameType: "chess", Difficulty: "easy"},
		{BoardSize: 9, GameType: "go", Difficulty: "impossible"},
		{BoardSize: 9, GameType: "go", Difficulty: "easy", HumanColor: "green"},
	}
	for _, req := range cases {
		if _, err := uc.CreateGame(ctx, req); err == nil {
			t.Fatalf("request %+v accepted", req)
		}
	}
}

func TestCreateGameAppliesDefaultsAndStoresRecord(t *testing.T) {
	uc, store := newTestUseCase(t)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
		BoardSize: 9, GameType: "go", Difficulty: "medium",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Komi != engine.DefaultKomi || created.HumanColor != "black" {
		t.Fatalf("defaults not applied: komi %v color %s", created.Komi, created.HumanColor)
	}
	if created.Status != statuses.StatusInProgress {
		t.Fatalf("unexpected status %s", created.Status)
	}
	if _, ok := store.sgf[created.GameKeySecret]; !ok {
		t.Fatalf("record not stored")
	}
}

func TestCreateGameEngineOpensForWhiteHuman(t *testing.T) {
	uc, _ := newTestUseCase(t)

	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
		BoardSize: 9, GameType: "gomoku", Difficulty: "easy", HumanColor: "white",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if len(created.Moves) != 1 || created.Moves[0].Color != game.ColorBlack {
		t.Fatalf("engine did not open as black: %+v", created.Moves)
	}
	if !strings.Contains(created.Sgf, ";B[") {
		t.Fatalf("opening move missing from record: %s", created.Sgf)
	}
}

func TestApplyHumanMoveFullExchange(t *testing.T) {
	uc, store := newTestUseCase(t)
	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
		BoardSize: 9, GameType: "gomoku", Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resp, err := uc.ApplyHumanMove(context.Background(), created.GameKeyPublic, game.MoveRequest{Coordinates: "ee"})
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if resp.HumanMove == nil || resp.HumanMove.Coordinates != "ee" {
		t.Fatalf("human move missing from response: %+v", resp)
	}
	if resp.EngineMove == nil || resp.EngineMove.Color != game.ColorWhite {
		t.Fatalf("engine reply missing: %+v", resp)
	}
	if resp.Status != statuses.StatusInProgress {
		t.Fatalf("unexpected status %s", resp.Status)
	}
	if !strings.Contains(resp.Sgf, ";B[ee];W[") {
		t.Fatalf("record missing the exchange: %s", resp.Sgf)
	}

	stored := store.games[created.GameKeyPublic]
	if len(stored.Moves) != 2 {
		t.Fatalf("expected 2 stored moves, got %d", len(stored.Moves))
	}
}

func TestApplyHumanMoveRejectsOutOfTurn(t *testing.T) {
	uc, store := newTestUseCase(t)
	g := seededGame("gomoku")
	store.seed(g, "(;GM[4]SZ[9]KM[7.5];B[ee])")

	if _, err := uc.ApplyHumanMove(context.Background(), g.GameKeyPublic, game.MoveRequest{Coordinates: "dd"}); !errors.Is(err, ownErrors.ErrNotYourTurn) {
		t.Fatalf("expected ErrNotYourTurn, got %v", err)
	}
}

func TestApplyHumanMoveRejectsOccupiedPoint(t *testing.T) {
	uc, store := newTestUseCase(t)
	g := seededGame("gomoku")
	store.seed(g, "(;GM[4]SZ[9]KM[7.5];B[ee];W[dd])")

	if _, err := uc.ApplyHumanMove(context.Background(), g.GameKeyPublic, game.MoveRequest{Coordinates: "dd"}); !errors.Is(err, engine.ErrOccupied) {
		t.Fatalf("expected ErrOccupied, got %v", err)
	}
}

func TestHumanResignEndsAndArchivesGame(t *testing.T) {
	uc, store := newTestUseCase(t)
	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
		BoardSize: 9, GameType: "go", Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	resp, err := uc.ApplyHumanMove(context.Background(), created.GameKeyPublic, game.MoveRequest{Resign: true})
	if err != nil {
		t.Fatalf("resign failed: %v", err)
	}
	if resp.Status != statuses.StatusFinished || resp.Result != "W+R" {
		t.Fatalf("unexpected outcome: status %s result %s", resp.Status, resp.Result)
	}
	if _, ok := store.archived[created.GameKeySecret]; !ok {
		t.Fatalf("finished game not archived")
	}
	if _, ok := store.sgf[created.GameKeySecret]; ok {
		t.Fatalf("live record not cleaned up after archiving")
	}

	if _, err := uc.ApplyHumanMove(context.Background(), created.GameKeyPublic, game.MoveRequest{Coordinates: "ee"}); !errors.Is(err, ownErrors.ErrGameFinished) {
		t.Fatalf("move on finished game: expected ErrGameFinished, got %v", err)
	}
}

func TestGomokuWinningMoveEndsGame(t *testing.T) {
	uc, store := newTestUseCase(t)
	g := seededGame("gomoku")
	store.seed(g, "(;GM[4]SZ[9]KM[7.5];B[aa];W[ai];B[ba];W[bi];B[ca];W[ci];B[da];W[di])")

	resp, err := uc.ApplyHumanMove(context.Background(), g.GameKeyPublic, game.MoveRequest{Coordinates: "ea"})
	if err != nil {
		t.Fatalf("winning move failed: %v", err)
	}
	if resp.Status != statuses.StatusFinished || resp.Result != "B+5" {
		t.Fatalf("unexpected outcome: status %s result %s", resp.Status, resp.Result)
	}
	if resp.EngineMove != nil {
		t.Fatalf("engine replied to a finished game")
	}
	if _, ok := store.archived[g.GameKeySecret]; !ok {
		t.Fatalf("finished game not archived")
	}
}

func TestArchivedGameRemainsReadable(t *testing.T) {
	uc, store := newTestUseCase(t)
	g := seededGame("gomoku")
	store.seed(g, "(;GM[4]SZ[9]KM[7.5];B[aa];W[ai];B[ba];W[bi];B[ca];W[ci];B[da];W[di])")

	if _, err := uc.ApplyHumanMove(context.Background(), g.GameKeyPublic, game.MoveRequest{Coordinates: "ea"}); err != nil {
		t.Fatalf("winning move failed: %v", err)
	}

	found, err := uc.GetGameByPublicKey(context.Background(), g.GameKeyPublic)
	if err != nil {
		t.Fatalf("fetch of archived game failed: %v", err)
	}
	if found.Status != statuses.StatusFinished {
		t.Fatalf("unexpected status %s", found.Status)
	}
	if !strings.Contains(found.Sgf, ";B[ea]") {
		t.Fatalf("archived record lost: %q", found.Sgf)
	}

	report, err := uc.ScoreGame(context.Background(), g.GameKeyPublic)
	if err != nil {
		t.Fatalf("score of archived game failed: %v", err)
	}
	if report.Black != 5 {
		t.Fatalf("expected 5 black stones in the archived position, got %v", report.Black)
	}
}

func TestScoreGameReportsCurrentPosition(t *testing.T) {
	uc, _ := newTestUseCase(t)
	created, err := uc.CreateGame(context.Background(), game.CreateGameRequest{
		BoardSize: 9, GameType: "go", Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	report, err := uc.ScoreGame(context.Background(), created.GameKeyPublic)
	if err != nil {
		t.Fatalf("score failed: %v", err)
	}
	if report.Black != 0 || report.White != 7.5 {
		t.Fatalf("empty board score wrong: %+v", report)
	}
}

func TestSuggestMoveReturnsHintWithoutMutating(t *testing.T) {
	uc, store := newTestUseCase(t)
	g := seededGame("gomoku")
	record := "(;GM[4]SZ[9]KM[7.5];B[ee];W[dd])"
	store.seed(g, record)

	hint, err := uc.SuggestMove(context.Background(), g.GameKeyPublic)
	if err != nil {
		t.Fatalf("suggest failed: %v", err)
	}
	if hint.Color != game.ColorBlack || hint.Coordinates == "" {
		t.Fatalf("unexpected hint: %+v", hint)
	}
	if store.sgf[g.GameKeySecret] != record {
		t.Fatalf("hint mutated the record")
	}
}
