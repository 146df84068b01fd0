package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"goban/internal/adapters"
	"goban/internal/bootstrap"
	gameDelivery "goban/internal/delivery/game"
	"goban/internal/engine"
	ownMiddleware "goban/internal/middleware"
	repo "goban/internal/repository"
	gameuc "goban/internal/usecase/game"
)

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Error("Failed to setup configuration", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	databaseAdapters := initDatabaseAdapters(ctx, logger, cfg)
	defer databaseAdapters.mongoAdapter.Close(ctx)
	defer databaseAdapters.redisAdapter.Close(ctx)

	worker := engine.NewWorker(logger, cfg.EngineQueueSize)
	worker.Start(ctx)
	defer worker.Shutdown()

	var suggester gameuc.MoveSuggester
	if cfg.SuggesterUrl != "" {
		suggester = repo.NewSuggesterRepository(cfg, logger)
	}

	gameHandler := gameDelivery.NewGameHandler(*cfg, logger, databaseAdapters.mongoAdapter, databaseAdapters.redisAdapter, worker, suggester)

	r := chi.NewRouter()
	router(r, gameHandler, cfg.IsLocalCors)

	addr := ":" + cfg.ServerPort
	logger.Infof("Server is running on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func router(r *chi.Mux, game *gameDelivery.GameHandler, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)

	r.Post("/NewGame", game.HandleNewGame)
	r.Post("/Move", game.HandleMove)
	r.Get("/AIMove", game.HandleSuggestMove)
	r.Get("/Score", game.HandleScore)
	r.Get("/GameById", game.GetGameById)
	r.Get("/Play", game.HandlePlay)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config) *dataBaseAdapters {
	mongoAdapter := adapters.NewAdapterMongo(cfg)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize MongoDB", zap.Error(err))
	}

	redisAdapter := adapters.NewAdapterRedis(cfg)
	if err := redisAdapter.Init(ctx); err != nil {
		log.Fatal("Failed to initialize Redis", zap.Error(err))
	}

	log.Info("Database adapters initialized")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second)
}
