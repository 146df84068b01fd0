package game

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	"goban/internal/engine"
	ownErrors "goban/internal/errors"
	"goban/internal/httpresponse"
	repo "goban/internal/repository"
	"goban/internal/statuses"
	gameuc "goban/internal/usecase/game"
	"goban/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	mongoAdapter *adapters.AdapterMongo,
	redisAdapter *adapters.AdapterRedis,
	worker *engine.Worker,
	suggester gameuc.MoveSuggester,
) *GameHandler {
	store := repo.NewGameRepository(cfg, log, redisAdapter.GetClient(), mongoAdapter.Database)
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameuc.NewGameUseCase(store, worker, suggester, log),
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	created, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForError(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}

	g.log.Infof("new %s game %s created", created.GameType, created.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, created)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	if req.GameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	resp, err := g.gameUC.ApplyHumanMove(r.Context(), req.GameKey, req)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForError(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleSuggestMove(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	hint, err := g.gameUC.SuggestMove(r.Context(), gameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForError(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, hint)
}

func (g *GameHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	report, err := g.gameUC.ScoreGame(r.Context(), gameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForError(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, report)
}

func (g *GameHandler) GetGameById(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	found, err := g.gameUC.GetGameByPublicKey(r.Context(), gameKey)
	if err != nil {
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, statusForError(err), httpresponse.ErrorResponse{ErrorDescription: err.Error()})
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

type wsError struct {
	Error string `json:"error"`
}

// HandlePlay runs the live loop: a human move comes in, the validated state
// with the engine's reply goes out. The socket closes when the game ends.
func (g *GameHandler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, httpresponse.ErrorResponse{ErrorDescription: "game_key is required"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Warn("play socket closed: ", err)
			}
			return
		}

		resp, err := g.gameUC.ApplyHumanMove(ctx, gameKey, req)
		if err != nil {
			if writeErr := conn.WriteJSON(wsError{Error: err.Error()}); writeErr != nil {
				return
			}
			// Fatal errors end the session, rule violations do not.
			if errors.Is(err, ownErrors.ErrGameNotFound) || errors.Is(err, ownErrors.ErrGameFinished) {
				return
			}
			continue
		}

		if err := conn.WriteJSON(resp); err != nil {
			return
		}
		if resp.Status == statuses.StatusFinished {
			return
		}
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ownErrors.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, ownErrors.ErrGameFinished),
		errors.Is(err, ownErrors.ErrNotYourTurn),
		errors.Is(err, ownErrors.ErrCreateGameFailed),
		errors.Is(err, ownErrors.ErrInvalidCoordinate),
		errors.Is(err, ownErrors.ErrInvalidRecord),
		errors.Is(err, engine.ErrOccupied),
		errors.Is(err, engine.ErrOutOfBounds),
		errors.Is(err, engine.ErrSuicide),
		errors.Is(err, engine.ErrKoRepetition):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
