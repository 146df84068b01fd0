package repo

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"goban/internal/bootstrap"
	"goban/internal/domain/game"
	ownErrors "goban/internal/errors"
)

const gamesCollection = "games"

// liveRecordTTL bounds how long an abandoned game keeps its redis record.
const liveRecordTTL = 7 * 24 * time.Hour

type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redisClient *redis.Client, mongoDB *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redisClient,
		mongo: mongoDB,
	}
}

// GenerateGameKeys makes a uuid secret key and derives a short public key
// from it, retrying until the public key is unused.
func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)
		if g.checkPublicKeyIsUniq(ctx, gameKeyPublic) {
			return gameKeySecret, gameKeyPublic
		}
	}
}

func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	return fmt.Sprintf("%05d", number%100000)
}

func (g *GameRepository) checkPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err := g.mongo.Collection(gamesCollection).
		FindOne(ctx, bson.M{"game_key_public": gameKeyPublic}).Err()
	return errors.Is(err, mongo.ErrNoDocuments)
}

func (g *GameRepository) CreateGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, gameData); err != nil {
		g.log.Errorf("failed to insert game: %v", err)
		return fmt.Errorf("%w: %v", ownErrors.ErrCreateGameFailed, err)
	}
	g.log.Infof("game created with public key %s", gameData.GameKeyPublic)
	return nil
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var found game.Game
	err := g.mongo.Collection(gamesCollection).
		FindOne(ctx, bson.M{"game_key_public": gameKeyPublic}).Decode(&found)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, ownErrors.ErrGameNotFound
	}
	if err != nil {
		return game.Game{}, fmt.Errorf("failed to load game %s: %w", gameKeyPublic, err)
	}
	return found, nil
}

func (g *GameRepository) UpdateGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"game_key_public": gameData.GameKeyPublic}
	res, err := g.mongo.Collection(gamesCollection).ReplaceOne(ctx, filter, gameData)
	if err != nil {
		return fmt.Errorf("failed to update game %s: %w", gameData.GameKeyPublic, err)
	}
	if res.MatchedCount == 0 {
		return ownErrors.ErrGameNotFound
	}
	return nil
}

// ArchiveGame freezes a finished game in mongo, final record included, and
// drops the live redis entry.
func (g *GameRepository) ArchiveGame(ctx context.Context, gameData game.Game, sgfText string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"game_key_public": gameData.GameKeyPublic}
	update := bson.M{
		"$set": bson.M{
			"status":      gameData.Status,
			"result":      gameData.Result,
			"moves":       gameData.Moves,
			"pass_count":  gameData.PassCount,
			"finished_at": gameData.FinishedAt,
			"sgf":         sgfText,
		},
	}
	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to archive game %s: %w", gameData.GameKeyPublic, err)
	}
	if res.MatchedCount == 0 {
		return ownErrors.ErrGameNotFound
	}

	if err := g.redis.Del(ctx, sgfKey(gameData.GameKeySecret)).Err(); err != nil {
		// Non-fatal: the TTL cleans it up eventually.
		g.log.Warnf("failed to drop live record for %s: %v", gameData.GameKeyPublic, err)
	}
	g.log.Infof("game %s archived with result %s", gameData.GameKeyPublic, gameData.Result)
	return nil
}

func (g *GameRepository) SaveSGF(ctx context.Context, key string, sgfText string) error {
	if err := g.redis.Set(ctx, sgfKey(key), sgfText, liveRecordTTL).Err(); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

func (g *GameRepository) LoadSGF(ctx context.Context, key string) (string, error) {
	text, err := g.redis.Get(ctx, sgfKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ownErrors.ErrGameNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load record: %w", err)
	}
	return text, nil
}

func sgfKey(secret string) string {
	return "sgf:" + secret
}
